package cpu

import (
	"errors"

	"github.com/ezrec/smplvm/translate"
)

var f = translate.From

var (
	// Instruction decode errors
	ErrDecode = errors.New(f("decode"))
)

// ErrInvalidOpcode is returned when the byte at the instruction pointer is
// not an opcode. Next is the byte that follows it, for diagnostics.
type ErrInvalidOpcode struct {
	Opcode uint8
	Next   uint8
}

func (err ErrInvalidOpcode) Error() string {
	return f("found invalid opcode 0x%02x (with operands 0x%02x)", err.Opcode, err.Next)
}

func (err ErrInvalidOpcode) Is(target error) (ok bool) {
	if target == ErrDecode {
		return true
	}
	_, ok = target.(ErrInvalidOpcode)
	return
}
