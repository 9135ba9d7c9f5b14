package debugger

import (
	"errors"

	"github.com/ezrec/smplvm/translate"
)

var f = translate.From

var (
	// Command parse errors
	ErrEmpty      = errors.New(f("empty command, and no previous command"))
	ErrIncomplete = errors.New(f("incomplete command"))
	ErrSyntax     = errors.New(f("unrecognized command"))

	// Session errors
	ErrPrompt = errors.New(f("prompt failed"))
	ErrPolicy = errors.New(f("unknown error policy"))
)

// ErrCommand adds the offending input line to a parse error.
type ErrCommand struct {
	Line string
	Err  error
}

func (err *ErrCommand) Error() string {
	return f("%q: %v", err.Line, err.Err)
}

func (err *ErrCommand) Unwrap() error {
	return err.Err
}

// ErrPolicyName is an unrecognized policy name.
type ErrPolicyName string

func (err ErrPolicyName) Error() string {
	return f("%q", string(err))
}
