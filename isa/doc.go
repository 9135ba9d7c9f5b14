// Package isa describes the SmplCore instruction set.
//
// The machine has sixteen 16-bit register slots. Four are reserved (rinfo,
// rip, rflags and rsp), the remaining twelve are the general purpose word
// registers r0-r11, whose low bytes are also addressable as rb0-rb11.
//
// Instructions are two to four bytes long: an opcode byte, a register
// selector byte carrying a source register in the high nibble and a
// destination register in the low nibble, and an optional little-endian
// 8-bit or 16-bit immediate. The width of every register operand is implied
// by the opcode.
package isa
