package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"slices"

	"github.com/ezrec/smplvm/asm"
	"github.com/ezrec/smplvm/config"
	"github.com/ezrec/smplvm/debugger"
	"github.com/ezrec/smplvm/emulator"
	"github.com/ezrec/smplvm/screen"
)

func main() {
	var disasm int

	flags := &config.Flags{}
	flags.Register(flag.CommandLine)
	flag.IntVar(&disasm, "disasm", 0, "Disassemble instructions from the reset vector, do not execute")

	flag.Parse()

	cfg := config.Default()
	if len(flags.ConfigPath) != 0 {
		var err error
		cfg, err = config.Load(flags.ConfigPath)
		if err != nil {
			log.Fatalf("%v: %v", os.Args[0], err)
		}
	}

	switch flag.NArg() {
	case 0:
	case 1:
		cfg.InPath = flag.Arg(0)
	default:
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args()[1:])
	}

	err := cfg.Apply(flag.CommandLine, flags)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if len(cfg.InPath) == 0 {
		log.Fatalf("%v: No input program", os.Args[0])
	}

	emu := emulator.NewEmulator(cfg.MemoryLen)
	emu.Verbose = cfg.Verbose

	err = emu.Open(cfg.InPath, cfg.Compile)
	if err != nil {
		log.Fatalf("%v: %v", cfg.InPath, err)
	}
	emu.Reset()

	if disasm > 0 {
		err = asm.Disassemble(os.Stdout, emu, emu.Ip(), disasm)
		if err != nil {
			log.Fatalf("%v: %v", cfg.InPath, err)
		}
		return
	}

	run := func() error {
		if !cfg.Debug {
			return emu.Run(cfg.Reps)
		}

		reader := debugger.NewLineReader(os.Stdin, os.Stdout)
		prompter := debugger.NewCmdPrompter(reader, os.Stdout)
		bps := debugger.NewBreakpoints(slices.Values(cfg.Breakpoints))

		dbg := emu.Debugger(bps, prompter, os.Stdout)
		dbg.FirstPrompt = cfg.FirstPrompt
		dbg.Policy = cfg.Policy

		return dbg.Run()
	}

	if !cfg.Display {
		err = run()
		if err != nil {
			log.Fatalf("%v: %v", cfg.InPath, err)
		}
		return
	}

	// The window stays open after the program ends, until closed.
	// Ending a debugger session closes it.
	scr := screen.NewScreen(emu.Screen)
	scr.Verbose = cfg.Verbose

	result := make(chan error, 1)
	go func() {
		err := run()
		if err != nil {
			log.Printf("%v: %v", cfg.InPath, err)
		}
		result <- err
		if cfg.Debug {
			scr.Close()
		}
	}()

	err = scr.Run("smplvm: " + filepath.Base(cfg.InPath))
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	select {
	case err = <-result:
		if err != nil {
			os.Exit(1)
		}
	default:
	}
}
