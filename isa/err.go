package isa

import (
	"github.com/ezrec/smplvm/translate"
)

var f = translate.From

type ErrRegisterInvalid string

func (err ErrRegisterInvalid) Error() string {
	return f("'%v' is not a register", string(err))
}
