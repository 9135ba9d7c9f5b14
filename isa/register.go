package isa

import (
	"fmt"
	"strings"
)

// Width is the operand width of a register or value.
type Width int

//go:generate go tool stringer -linecomment -type=Width
const (
	WIDTH_BYTE = Width(0) // byte
	WIDTH_WORD = Width(1) // word
)

// Bytes returns the number of bytes occupied by the width.
func (w Width) Bytes() uint16 {
	if w == WIDTH_BYTE {
		return 1
	}
	return 2
}

// Register slot indices.
const (
	INDEX_RINFO  = 0  // Machine information.
	INDEX_RIP    = 1  // Instruction pointer.
	INDEX_RFLAGS = 2  // Flags.
	INDEX_RSP    = 3  // Stack pointer.
	INDEX_R0     = 4  // First general purpose register.
	COUNT_GP     = 12 // Number of general purpose registers.

	REGISTER_COUNT = 16 // Number of register slots.
)

// Flag bits of the rflags register.
const (
	FLAG_ZERO     = uint16(1 << 0)
	FLAG_NEGATIVE = uint16(1 << 1)
	FLAG_OVERFLOW = uint16(1 << 2)
)

// Register is a reference to a register slot at a given width.
type Register struct {
	index uint8
	width Width
}

var (
	RINFO  = Register{INDEX_RINFO, WIDTH_WORD}
	RIP    = Register{INDEX_RIP, WIDTH_WORD}
	RFLAGS = Register{INDEX_RFLAGS, WIDTH_WORD}
	RSP    = Register{INDEX_RSP, WIDTH_WORD}
)

// R returns the general purpose word register rN.
func R(n int) Register {
	if n < 0 || n >= COUNT_GP {
		panic(fmt.Sprintf("isa: no register r%d", n))
	}
	return Register{uint8(INDEX_R0 + n), WIDTH_WORD}
}

// RB returns the general purpose byte register rbN.
func RB(n int) Register {
	if n < 0 || n >= COUNT_GP {
		panic(fmt.Sprintf("isa: no register rb%d", n))
	}
	return Register{uint8(INDEX_R0 + n), WIDTH_BYTE}
}

// Index returns the register slot index, as encoded in a selector nibble.
func (reg Register) Index() uint8 {
	return reg.index
}

// Width returns the access width of the register.
func (reg Register) Width() Width {
	return reg.width
}

// WithWidth returns the same slot accessed at width w.
func (reg Register) WithWidth(w Width) Register {
	return Register{reg.index, w}
}

// String returns the assembler name of the register.
func (reg Register) String() string {
	switch reg.index {
	case INDEX_RINFO:
		return "rinfo" + reg.byteSuffix()
	case INDEX_RIP:
		return "rip" + reg.byteSuffix()
	case INDEX_RFLAGS:
		return "rflags" + reg.byteSuffix()
	case INDEX_RSP:
		return "rsp" + reg.byteSuffix()
	}

	n := int(reg.index) - INDEX_R0
	if reg.width == WIDTH_BYTE {
		return fmt.Sprintf("rb%d", n)
	}
	return fmt.Sprintf("r%d", n)
}

// Special registers read at byte width carry a .b suffix.
func (reg Register) byteSuffix() string {
	if reg.width == WIDTH_BYTE {
		return ".b"
	}
	return ""
}

// FromSrc decodes the source register (high nibble) of a selector byte.
func FromSrc(selector uint8, width Width) Register {
	return Register{selector >> 4, width}
}

// FromDest decodes the destination register (low nibble) of a selector byte.
func FromDest(selector uint8, width Width) Register {
	return Register{selector & 0xf, width}
}

// Selector encodes a source and destination register into a selector byte.
func Selector(src, dest Register) uint8 {
	return (src.index&0xf)<<4 | (dest.index & 0xf)
}

// RegisterSet resolves register names.
type RegisterSet interface {
	Lookup(name string) (reg Register, ok bool)
}

type registerTable map[string]Register

// Lookup resolves a register name, ignoring case.
func (rt registerTable) Lookup(name string) (reg Register, ok bool) {
	reg, ok = rt[strings.ToLower(name)]
	return
}

// Registers is the SmplCore register name table.
var Registers RegisterSet = newRegisterTable()

func newRegisterTable() registerTable {
	rt := registerTable{}
	for _, reg := range []Register{RINFO, RIP, RFLAGS, RSP} {
		rt[reg.String()] = reg
		rt[reg.WithWidth(WIDTH_BYTE).String()] = reg.WithWidth(WIDTH_BYTE)
	}
	for n := range COUNT_GP {
		rt[R(n).String()] = R(n)
		rt[RB(n).String()] = RB(n)
	}
	return rt
}

// ParseRegister resolves name against the SmplCore register table.
func ParseRegister(name string) (reg Register, err error) {
	reg, ok := Registers.Lookup(name)
	if !ok {
		err = ErrRegisterInvalid(name)
	}
	return
}
