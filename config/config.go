// Package config loads the VM run configuration from a TOML file and the
// command line.
package config

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/smplvm/debugger"
	"github.com/ezrec/smplvm/internal"
)

const (
	MEMORY_LEN_DEFAULT = 0x8000 // Bytes of RAM.
)

// Config is a resolved run configuration.
type Config struct {
	InPath      string          `toml:"in_path"`      // Program to run.
	Compile     bool            `toml:"compile"`      // Assemble InPath before running.
	MemoryLen   int             `toml:"memory_len"`   // Bytes of RAM.
	Display     bool            `toml:"display"`      // Open the display window.
	Debug       bool            `toml:"debug"`        // Run under the debugger.
	Breakpoints []uint16        `toml:"breakpoints"`  // Sorted breakpoint addresses.
	RootDir     string          `toml:"root_dir"`     // Base for relative paths.
	FirstPrompt bool            `toml:"first_prompt"` // Prompt before the first instruction.
	Reps        int             `toml:"reps"`         // Instructions to execute; 0 is unlimited.
	Policy      debugger.Policy `toml:"policy"`       // Debugger error policy.
	Verbose     bool            `toml:"verbose"`      // Verbose logging.
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		MemoryLen: MEMORY_LEN_DEFAULT,
		Display:   true,
	}
}

// Decode parses a TOML configuration over the defaults.
// Relative paths are resolved against the root_dir key, or dir if it is
// not set.
func Decode(text string, dir string) (cfg Config, err error) {
	cfg = Default()

	md, err := toml.Decode(text, &cfg)
	if err != nil {
		err = errors.Join(ErrDecode, err)
		return
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		var keys []string
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		err = ErrKeyUnknown(strings.Join(keys, ", "))
		return
	}

	if len(cfg.RootDir) == 0 {
		cfg.RootDir = dir
	}
	if len(cfg.InPath) > 0 && !filepath.IsAbs(cfg.InPath) {
		cfg.InPath = filepath.Join(cfg.RootDir, cfg.InPath)
	}
	slices.Sort(cfg.Breakpoints)

	err = cfg.Validate()

	return
}

// Load reads a TOML configuration file.
// The default root_dir is the directory holding the file.
func Load(path string) (cfg Config, err error) {
	text, err := readFile(path)
	if err != nil {
		return
	}

	cfg, err = Decode(text, filepath.Dir(path))
	if err != nil {
		err = &ErrConfig{Path: path, Err: err}
	}

	return
}

// Validate checks the configuration values.
func (cfg *Config) Validate() (err error) {
	if cfg.MemoryLen < 0 || cfg.MemoryLen > MEMORY_LEN_DEFAULT {
		err = ErrMemoryLen(cfg.MemoryLen)
		return
	}
	if cfg.Reps < 0 {
		err = ErrReps(cfg.Reps)
		return
	}
	return
}

// Breakpoint is a flag.Value collecting repeated breakpoint addresses.
type Breakpoint []uint16

func (bp *Breakpoint) String() string {
	var text []string
	for _, addr := range *bp {
		text = append(text, fmt.Sprintf("0x%04x", addr))
	}
	return strings.Join(text, ",")
}

func (bp *Breakpoint) Set(text string) (err error) {
	for _, word := range strings.Split(text, ",") {
		var addr uint64
		addr, err = strconv.ParseUint(strings.TrimSpace(word), 0, 16)
		if err != nil {
			err = ErrBreakpoint(word)
			return
		}
		*bp = append(*bp, uint16(addr))
	}
	return
}

// Flags are the command line settings.
type Flags struct {
	ConfigPath  string
	Compile     bool
	Debug       bool
	Breakpoints Breakpoint
	FirstPrompt bool
	Reps        int
	MemoryLen   int
	NoDisplay   bool
	Policy      debugger.Policy
	Verbose     bool
}

// Register binds the flags to fs.
func (fl *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&fl.ConfigPath, "config", "", f("TOML configuration file"))
	fs.BoolVar(&fl.Compile, "c", false, f("assemble the input file before running"))
	fs.BoolVar(&fl.Debug, "d", false, f("run under the debugger"))
	fs.Var(&fl.Breakpoints, "b", f("breakpoint address (repeatable)"))
	fs.BoolVar(&fl.FirstPrompt, "first-prompt", false, f("prompt before the first instruction"))
	fs.IntVar(&fl.Reps, "reps", 0, f("number of instructions to execute (0 is unlimited)"))
	fs.IntVar(&fl.MemoryLen, "memory", MEMORY_LEN_DEFAULT, f("bytes of RAM"))
	fs.BoolVar(&fl.NoDisplay, "no-display", false, f("do not open the display window"))
	fs.TextVar(&fl.Policy, "policy", debugger.POLICY_STOP, f("debugger error policy (stop, report)"))
	fs.BoolVar(&fl.Verbose, "v", false, f("verbose logging"))
}

// Apply merges the flags explicitly set on fs over the configuration.
// Breakpoints from the command line are added to those from the file.
func (cfg *Config) Apply(fs *flag.FlagSet, fl *Flags) (err error) {
	fs.Visit(func(flg *flag.Flag) {
		switch flg.Name {
		case "c":
			cfg.Compile = fl.Compile
		case "d":
			cfg.Debug = fl.Debug
		case "first-prompt":
			cfg.FirstPrompt = fl.FirstPrompt
		case "reps":
			cfg.Reps = fl.Reps
		case "memory":
			cfg.MemoryLen = fl.MemoryLen
		case "no-display":
			cfg.Display = !fl.NoDisplay
		case "policy":
			cfg.Policy = fl.Policy
		case "v":
			cfg.Verbose = fl.Verbose
		}
	})

	cfg.Breakpoints = internal.SortedConcat(slices.Values(cfg.Breakpoints), slices.Values(fl.Breakpoints))

	err = cfg.Validate()

	return
}
