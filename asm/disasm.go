package asm

import (
	"fmt"
	"io"
	"strings"

	"github.com/ezrec/smplvm/cpu"
)

// Disassemble writes a listing of count instructions decoded from mem,
// starting at addr. Undecodable bytes are listed as .db directives.
// Each line is valid assembler source; the address and encoding follow
// as a comment.
func Disassemble(w io.Writer, mem cpu.Memory, addr uint16, count int) (err error) {
	for range count {
		inst, size, derr := cpu.Decode(mem, addr)

		var hex []string
		for n := range size {
			hex = append(hex, fmt.Sprintf("%02X", mem.GetMem(addr+n)))
		}

		var text, note string
		if derr != nil {
			text = fmt.Sprintf(".db 0x%s, 0x%s", hex[0], hex[1])
			note = fmt.Sprintf(" %v", derr)
		} else {
			text = inst.String()
		}

		_, err = fmt.Fprintf(w, "%-22s ; %04X: %s%s\n", text, addr, strings.Join(hex, " "), note)
		if err != nil {
			return
		}

		addr += size
	}

	return
}
