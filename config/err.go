package config

import (
	"errors"
	"os"

	"github.com/ezrec/smplvm/translate"
)

var f = translate.From

var (
	ErrDecode = errors.New(f("configuration syntax"))
	ErrRead   = errors.New(f("configuration unreadable"))
)

type ErrKeyUnknown string

func (err ErrKeyUnknown) Error() string {
	return f("unknown configuration keys: %v", string(err))
}

type ErrMemoryLen int

func (err ErrMemoryLen) Error() string {
	return f("memory_len %v out of range", int(err))
}

type ErrReps int

func (err ErrReps) Error() string {
	return f("reps %v is negative", int(err))
}

type ErrBreakpoint string

func (err ErrBreakpoint) Error() string {
	return f("'%v' is not a breakpoint address", string(err))
}

// ErrConfig adds the configuration file path to an error.
type ErrConfig struct {
	Path string
	Err  error
}

func (err *ErrConfig) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}

func readFile(path string) (text string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.Join(ErrRead, err)
		return
	}
	text = string(data)
	return
}
