package isa

import (
	"fmt"
)

// Value is an immediate or register content of a known width.
type Value struct {
	width Width
	data  uint16
}

// Byte makes a byte-wide value.
func Byte(v uint8) Value {
	return Value{WIDTH_BYTE, uint16(v)}
}

// Word makes a word-wide value.
func Word(v uint16) Value {
	return Value{WIDTH_WORD, v}
}

// ValueOf makes a value of width w, truncating v to fit.
func ValueOf(w Width, v uint16) Value {
	if w == WIDTH_BYTE {
		return Byte(uint8(v))
	}
	return Word(v)
}

// Width returns the width of the value.
func (v Value) Width() Width {
	return v.width
}

// AsByte returns the low byte of the value.
func (v Value) AsByte() uint8 {
	return uint8(v.data)
}

// AsWord returns the value zero-extended to a word.
func (v Value) AsWord() uint16 {
	if v.width == WIDTH_BYTE {
		return v.data & 0xff
	}
	return v.data
}

// Sign returns true if the most significant bit of the value is set.
func (v Value) Sign() bool {
	if v.width == WIDTH_BYTE {
		return v.data&0x80 != 0
	}
	return v.data&0x8000 != 0
}

// Encode returns the little-endian encoding of the value.
func (v Value) Encode() []byte {
	if v.width == WIDTH_BYTE {
		return []byte{v.AsByte()}
	}
	return []byte{uint8(v.data), uint8(v.data >> 8)}
}

func (v Value) String() string {
	if v.width == WIDTH_BYTE {
		return fmt.Sprintf("0x%02X", v.AsByte())
	}
	return fmt.Sprintf("0x%04X", v.AsWord())
}
