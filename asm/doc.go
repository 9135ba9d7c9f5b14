// Package asm implements the SmplCore assembler and disassembler.
//
// The assembler is single pass, with label references patched once the
// whole input has been read. Each line holds an optional label, and an
// instruction or directive:
//
//	loop:   mov 0x8000, r0      ; constants, registers, labels
//	        mov 'A', rb1        ; character literals
//	        mov rb1, [r0]       ; memory operands are word registers
//	        add $(COUNT*2), r0  ; compile time Starlark expressions
//	        ajmp r2
//
// Directives:
//
//	.equ NAME VALUE     Define an equate.
//	.org ADDR           Set the assembly address.
//	.db BYTE...         Emit bytes.
//	.dw WORD...         Emit little-endian words, or label addresses.
//	.macro NAME ARG...  Begin a macro; '@' in the body is unique per use.
//	.endm               End a macro.
package asm
