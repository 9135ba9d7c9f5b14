// Package cpu implements the SmplCore processor.
//
// The CPU has sixteen 16-bit register slots: rinfo, rip, rflags, rsp and
// twelve general purpose registers r0-r11, whose low bytes are also
// addressable as rb0-rb11. Memory is a 64KiB address space routed to RAM,
// the character display and a two byte ROM holding the reset vector.
//
// Instructions are decoded from memory at rip by Decode, and executed by
// Step. Decode may also be used on a Bytes image for disassembly.
package cpu
