// Package debugger implements the interactive SmplCore debugger.
//
// Commands (an empty line repeats the previous command):
//
//	s, step                 Execute one instruction.
//	c, cont, continue       Execute until a breakpoint.
//	g, get <addr>           Print the byte at addr.
//	g, get <reg>            Print a register.
//	s, set <addr> <value>   Write a byte to memory.
//	s, set <reg> <value>    Write a register.
//
// Numbers are decimal, or prefixed with 0x, 0o or 0b.
package debugger
