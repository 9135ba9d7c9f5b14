// Package emulator ties the SmplCore CPU, its display and the program
// listing together.
package emulator

import (
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"os"

	"github.com/ezrec/smplvm/asm"
	"github.com/ezrec/smplvm/cpu"
	"github.com/ezrec/smplvm/debugger"
	"github.com/ezrec/smplvm/display"
	"github.com/ezrec/smplvm/internal"
)

const (
	IMAGE_SIZE = 0x10000 // Largest loadable image.
)

// Emulator state. CPU + display + program listing.
type Emulator struct {
	Verbose  bool            // If set, enables verbose logging.
	*cpu.Cpu                 // Reference to the CPU simulation.
	Program  *asm.Program    // Listing of the loaded program.
	Screen   *display.Buffer // Display memory shared with the renderer.

	defines map[string]string
}

var _ debugger.Machine = (*Emulator)(nil)

// NewEmulator creates a new emulator with memoryLen bytes of RAM.
func NewEmulator(memoryLen int) (emu *Emulator) {
	screen := display.NewBuffer()

	emu = &Emulator{
		Cpu:     cpu.NewCpu(memoryLen, [cpu.ROM_SIZE]byte{}, screen),
		Program: &asm.Program{},
		Screen:  screen,
	}

	emu.defines = map[string]string{
		"MEMORY_LEN": fmt.Sprintf("0x%04x", len(emu.Cpu.Ram)),
	}

	return
}

// Defines returns an iterator over all of the defines.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.Concat2(maps.All(emu.defines),
		emu.Cpu.Defines(),
		emu.Screen.Defines(),
	)
}

// Assemble a program source, and load its binary image.
func (emu *Emulator) Assemble(input io.Reader) (err error) {
	as := &asm.Assembler{Verbose: emu.Verbose}
	for name, value := range emu.Defines() {
		as.Predefine(name, value)
	}

	prog, err := as.Parse(input)
	if err != nil {
		err = &ErrExternal{Op: OP_ASSEMBLE, Err: err}
		return
	}

	err = emu.load(prog.Binary())
	if err != nil {
		return
	}

	emu.Program = prog

	return
}

// Load a binary image at address 0. The listing and the display are
// cleared.
func (emu *Emulator) Load(image []byte) (err error) {
	err = emu.load(image)
	if err != nil {
		return
	}

	emu.Program = &asm.Program{}

	return
}

func (emu *Emulator) load(image []byte) (err error) {
	if len(image) > IMAGE_SIZE {
		err = &ErrExternal{Op: OP_LOAD, Err: ErrImageSize(len(image))}
		return
	}

	emu.Screen.Clear()
	emu.Cpu.Load(image)

	if emu.Verbose {
		log.Printf("emulator: loaded %d bytes", len(image))
	}

	return
}

// Open reads a program file, assembling it if compile is set.
func (emu *Emulator) Open(path string, compile bool) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		err = &ErrExternal{Op: OP_READ, Err: err}
		return
	}
	defer inf.Close()

	if compile {
		err = emu.Assemble(inf)
		return
	}

	image, err := io.ReadAll(io.LimitReader(inf, IMAGE_SIZE+1))
	if err != nil {
		err = &ErrExternal{Op: OP_READ, Err: err}
		return
	}

	err = emu.Load(image)

	return
}

// Reset the CPU to the ROM reset vector.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
}

// Ticks returns the total instructions executed since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// LineNo returns the source line of the instruction at the instruction
// pointer, or 0 if there is no listing for it.
func (emu *Emulator) LineNo() int {
	return emu.Program.LineNo(emu.Ip())
}

// Step executes a single instruction.
// Errors are wrapped with the instruction's address and source line.
func (emu *Emulator) Step() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	addr := emu.Ip()
	err = emu.Cpu.Step()
	if err != nil {
		err = &ErrRuntime{Addr: addr, LineNo: emu.Program.LineNo(addr), Err: err}
	}

	return
}

// Run executes reps instructions, or until an error if reps is 0.
// Errors are wrapped with the instruction's address and source line.
func (emu *Emulator) Run(reps int) (err error) {
	emu.Cpu.Verbose = emu.Verbose

	addr, err := emu.Cpu.Run(reps)
	if err != nil {
		err = &ErrRuntime{Addr: addr, LineNo: emu.Program.LineNo(addr), Err: err}
	}

	return
}

// Debugger returns a debugger session over the emulator.
func (emu *Emulator) Debugger(bps debugger.Breakpoints, prompter debugger.Prompter, out io.Writer) (dbg *debugger.Debugger) {
	dbg = debugger.NewDebugger(emu, bps, prompter, out)
	dbg.Verbose = emu.Verbose
	return
}
