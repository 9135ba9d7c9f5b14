package asm

import (
	"iter"
)

// Link is a pending label reference, patched as a little-endian word.
type Link struct {
	Offset int    // Offset of the word in Opcode.Bytes.
	Label  string // Label to resolve.
}

// Opcode is the output of a single line of assembly.
type Opcode struct {
	LineNo int      // Source line number.
	Addr   int      // Address of the first byte.
	Words  []string // Source words, after expansion.
	Bytes  []byte   // Encoded bytes.
	Links  []Link   // Label references, resolved after parsing.
}

// Program is an assembled program listing.
type Program struct {
	Opcodes []Opcode
}

// Debug locates the opcode covering an address.
type Debug struct {
	*Opcode
	Index int // Byte index of the address within the opcode.
}

// Debug returns the opcode containing addr. The Opcode is nil if no opcode
// covers it.
func (prog *Program) Debug(addr uint16) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if int(addr) >= op.Addr && int(addr) < op.Addr+len(op.Bytes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  int(addr) - op.Addr,
			}
			break
		}
	}

	return
}

// LineNo returns the source line of addr, or 0 if it is not in the program.
func (prog *Program) LineNo(addr uint16) int {
	dbg := prog.Debug(addr)
	if dbg.Opcode == nil {
		return 0
	}
	return dbg.LineNo
}

// Bytes iterates over every assembled byte with its address.
func (prog *Program) Bytes() iter.Seq2[uint16, byte] {
	return func(yield func(addr uint16, value byte) bool) {
		for _, op := range prog.Opcodes {
			for n, value := range op.Bytes {
				if !yield(uint16(op.Addr+n), value) {
					return
				}
			}
		}
	}
}

// Binary returns the memory image of the program, from address 0 to the
// last assembled byte. Gaps are zero filled.
func (prog *Program) Binary() (bin []byte) {
	var size int
	for _, op := range prog.Opcodes {
		size = max(size, op.Addr+len(op.Bytes))
	}

	bin = make([]byte, size)
	for addr, value := range prog.Bytes() {
		bin[addr] = value
	}

	return
}
