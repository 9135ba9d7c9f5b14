package emulator

import (
	"bytes"
	"errors"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/smplvm/asm"
	"github.com/ezrec/smplvm/cpu"
	"github.com/ezrec/smplvm/debugger"
	"github.com/ezrec/smplvm/isa"
)

var helloProgram = []string{
	".org 0x10",                // 1
	"start:",                   // 2
	"    mov DISPLAY_BASE, r0", // 3: 0x10
	"    mov 'H', rb1",         // 4: 0x14
	"    mov rb1, [r0]",        // 5: 0x17
	"    add 1, r0",            // 6: 0x19
	"    mov 0x1f, rb1",        // 7: 0x1d
	"    mov rb1, [r0]",        // 8: 0x20
	"    mov halt, r2",         // 9: 0x22
	"halt: ajmp r2",            // 10: 0x26
	".org ROM_BASE",            // 11
	"    .dw start",            // 12
}

func newHello(t *testing.T) (emu *Emulator) {
	emu = NewEmulator(cpu.RAM_SIZE)
	err := emu.Assemble(strings.NewReader(strings.Join(helloProgram, "\n")))
	assert.NoError(t, err)
	if err != nil {
		t.FailNow()
	}
	emu.Reset()
	return
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(0x100)

	assert.False(emu.Verbose)
	assert.Equal(0x100, len(emu.Cpu.Ram))
	assert.NotNil(emu.Screen)
	assert.Same(emu.Screen, emu.Cpu.Display)
	assert.Equal(0, emu.LineNo())

	defines := maps.Collect(emu.Defines())
	assert.Equal("0x0100", defines["MEMORY_LEN"])
	assert.Equal("0x8000", defines["DISPLAY_BASE"])
	assert.Equal("0xfffe", defines["ROM_BASE"])
	assert.Equal("64", defines["DISPLAY_COLUMNS"])
}

func TestEmulatorRun(t *testing.T) {
	assert := assert.New(t)

	emu := newHello(t)
	assert.Equal(uint16(0x10), emu.Ip())
	assert.Equal(3, emu.LineNo())

	assert.NoError(emu.Run(7))
	assert.Equal(uint16(0x26), emu.Ip())
	assert.Equal(10, emu.LineNo())
	assert.Equal(7, emu.Ticks())

	assert.Equal(byte('H'), emu.Screen.Get(0))
	assert.Equal(byte(0x1f), emu.Screen.Get(1))
	assert.Equal(uint16(0x8001), emu.GetReg(isa.R(0)).AsWord())

	// Spins on the halt loop.
	assert.NoError(emu.Run(10))
	assert.Equal(uint16(0x26), emu.Ip())
	assert.Equal(17, emu.Ticks())
}

func TestEmulatorStepError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(0x100)
	err := emu.Assemble(strings.NewReader("nop\n.db 0xff, 0x00"))
	assert.NoError(err)
	emu.Reset()

	assert.NoError(emu.Step())

	err = emu.Step()
	assert.ErrorIs(err, cpu.ErrDecode)

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(uint16(2), runtime.Addr)
		assert.Equal(2, runtime.LineNo)
	}
	assert.Equal("0x0002: line 2 found invalid opcode 0xff (with operands 0x00)", err.Error())

	// Run until error.
	assert.NoError(emu.Load([]byte{0, 0, 0, 0, 0xff, 0}))
	emu.Reset()
	err = emu.Run(0)
	assert.ErrorIs(err, cpu.ErrDecode)
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(uint16(4), runtime.Addr)
		assert.Equal(0, runtime.LineNo)
	}
	assert.Equal(2, emu.Ticks())
}

func TestEmulatorExternal(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator(0x100)

	err := emu.Assemble(strings.NewReader("bogus r0"))
	assert.ErrorIs(err, asm.ErrInstructionInvalid)
	var external *ErrExternal
	if assert.True(errors.As(err, &external)) {
		assert.Equal(OP_ASSEMBLE, external.Op)
	}

	err = emu.Load(make([]byte, IMAGE_SIZE+1))
	assert.ErrorIs(err, ErrImageSize(IMAGE_SIZE+1))

	dir := t.TempDir()
	err = emu.Open(filepath.Join(dir, "missing.bin"), false)
	assert.ErrorIs(err, os.ErrNotExist)
	if assert.True(errors.As(err, &external)) {
		assert.Equal(OP_READ, external.Op)
	}
}

func TestEmulatorOpen(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()

	source := filepath.Join(dir, "hello.asm")
	assert.NoError(os.WriteFile(source, []byte(strings.Join(helloProgram, "\n")), 0o644))

	emu := NewEmulator(cpu.RAM_SIZE)
	assert.NoError(emu.Open(source, true))
	emu.Reset()
	assert.Equal(uint16(0x10), emu.Ip())
	assert.Equal(3, emu.LineNo())

	binary := filepath.Join(dir, "hello.bin")
	assert.NoError(os.WriteFile(binary, emu.Program.Binary(), 0o644))

	emu = NewEmulator(cpu.RAM_SIZE)
	assert.NoError(emu.Open(binary, false))
	emu.Reset()
	assert.Equal(uint16(0x10), emu.Ip())
	assert.Equal(0, emu.LineNo())
	assert.NoError(emu.Run(3))
	assert.Equal(byte('H'), emu.Screen.Get(0))

	// Reloading drops the stale display contents.
	assert.NoError(emu.Open(binary, false))
	assert.Equal(byte(0), emu.Screen.Get(0))
}

func TestEmulatorDebugger(t *testing.T) {
	assert := assert.New(t)

	emu := newHello(t)

	input := strings.NewReader("get r0\ns\nget 0x8000\n\n")
	out := &bytes.Buffer{}
	prompter := debugger.NewCmdPrompter(debugger.NewScanReader(input, nil), out)

	dbg := emu.Debugger(debugger.Breakpoints{0x19}, prompter, out)
	assert.NoError(dbg.Run())

	assert.Equal(strings.Join([]string{
		"Breakpoint at: 0x0019",
		"r0: 0x8000",
		"0x8000: 0x48",
		"0x8000: 0x48",
		"",
	}, "\n"), out.String())

	assert.Equal(uint16(0x1d), emu.Ip())
	assert.Equal(4, emu.Ticks())
}
