package emulator

import (
	"github.com/ezrec/smplvm/translate"
)

var f = translate.From

// ExternalOp names a collaborator operation.
type ExternalOp string

const (
	OP_READ     = ExternalOp("read")
	OP_ASSEMBLE = ExternalOp("assemble")
	OP_LOAD     = ExternalOp("load")
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Addr   uint16
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("0x%04X: %v", err.Addr, err.Err)
	}
	return f("0x%04X: line %d %v", err.Addr, err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrExternal wraps a failure outside of the machine itself.
type ErrExternal struct {
	Op  ExternalOp
	Err error
}

func (err *ErrExternal) Error() string {
	return f("%v: %v", string(err.Op), err.Err)
}

func (err *ErrExternal) Unwrap() error {
	return err.Err
}

type ErrImageSize int

func (err ErrImageSize) Error() string {
	return f("image of %v bytes exceeds the address space", int(err))
}
