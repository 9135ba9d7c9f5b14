package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/smplvm/debugger"
)

func TestConfigDefault(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	assert.False(cfg.Compile)
	assert.False(cfg.Debug)
	assert.True(cfg.Display)
	assert.Equal(0x8000, cfg.MemoryLen)
	assert.Equal(0, len(cfg.Breakpoints))
	assert.Equal(debugger.POLICY_STOP, cfg.Policy)
	assert.NoError(cfg.Validate())
}

func TestConfigDecode(t *testing.T) {
	assert := assert.New(t)

	cfg, err := Decode(`
in_path = "hello.asm"
compile = true
debug = true
display = false
breakpoints = [ 0x10, 2, 8 ]
policy = "report"
`, "/base")
	assert.NoError(err)

	assert.Equal(filepath.Join("/base", "hello.asm"), cfg.InPath)
	assert.Equal("/base", cfg.RootDir)
	assert.True(cfg.Compile)
	assert.True(cfg.Debug)
	assert.False(cfg.Display)
	assert.Equal(0x8000, cfg.MemoryLen)
	assert.Equal([]uint16{2, 8, 0x10}, cfg.Breakpoints)
	assert.Equal(debugger.POLICY_REPORT, cfg.Policy)

	cfg, err = Decode(`
in_path = "hello.bin"
root_dir = "/other"
memory_len = 0x100
`, "/base")
	assert.NoError(err)
	assert.Equal(filepath.Join("/other", "hello.bin"), cfg.InPath)
	assert.Equal(0x100, cfg.MemoryLen)

	cfg, err = Decode(`in_path = "/abs/hello.bin"`, "/base")
	assert.NoError(err)
	assert.Equal("/abs/hello.bin", cfg.InPath)
}

func TestConfigDecodeErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text string
		err  error
	}){
		{`compile = `, ErrDecode},
		{`compile = "yes"`, ErrDecode},
		{`bogus = 1`, ErrKeyUnknown("bogus")},
		{`memory_len = 0x10000`, ErrMemoryLen(0x10000)},
		{`reps = -1`, ErrReps(-1)},
		{`policy = "ignore"`, ErrDecode},
	}

	for _, entry := range table {
		_, err := Decode(entry.text, "")
		assert.ErrorIs(err, entry.err, entry.text)
	}
}

func TestConfigLoad(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "smplvm.toml")
	assert.NoError(os.WriteFile(path, []byte(`in_path = "prog.asm"`), 0o644))

	cfg, err := Load(path)
	assert.NoError(err)
	assert.Equal(filepath.Join(dir, "prog.asm"), cfg.InPath)
	assert.Equal(dir, cfg.RootDir)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(err, ErrRead)
	assert.ErrorIs(err, os.ErrNotExist)

	assert.NoError(os.WriteFile(path, []byte(`unknown = true`), 0o644))
	_, err = Load(path)
	var cfgErr *ErrConfig
	if assert.True(errors.As(err, &cfgErr)) {
		assert.Equal(path, cfgErr.Path)
	}
	assert.ErrorIs(err, ErrKeyUnknown("unknown"))
}

func TestConfigApply(t *testing.T) {
	assert := assert.New(t)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fl := &Flags{}
	fl.Register(fs)

	err := fs.Parse([]string{"-d", "-b", "0x20", "-b", "4,0x10", "-policy", "report", "-no-display", "prog.bin"})
	assert.NoError(err)
	assert.Equal([]string{"prog.bin"}, fs.Args())

	cfg := Default()
	cfg.Compile = true
	cfg.Breakpoints = []uint16{8}
	cfg.Reps = 100

	assert.NoError(cfg.Apply(fs, fl))

	assert.True(cfg.Compile)
	assert.True(cfg.Debug)
	assert.False(cfg.Display)
	assert.Equal(100, cfg.Reps)
	assert.Equal(0x8000, cfg.MemoryLen)
	assert.Equal(debugger.POLICY_REPORT, cfg.Policy)
	assert.Equal([]uint16{4, 8, 0x10, 0x20}, cfg.Breakpoints)
	assert.Equal("0x0020,0x0004,0x0010", fl.Breakpoints.String())
}

func TestConfigFlagErrors(t *testing.T) {
	assert := assert.New(t)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fl := &Flags{}
	fl.Register(fs)

	assert.Error(fs.Parse([]string{"-b", "nowhere"}))
	assert.Error(fs.Parse([]string{"-policy", "ignore"}))

	fs = flag.NewFlagSet("test", flag.ContinueOnError)
	fl = &Flags{}
	fl.Register(fs)
	assert.NoError(fs.Parse([]string{"-reps", "-5"}))
	cfg := Default()
	assert.ErrorIs(cfg.Apply(fs, fl), ErrReps(-5))
}
