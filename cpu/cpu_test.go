package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/smplvm/display"
	"github.com/ezrec/smplvm/isa"
)

// assemble encodes a list of instructions into a flat image.
func assemble(insts ...isa.Instruction) (image []byte) {
	for _, inst := range insts {
		image = append(image, inst.Encode()...)
	}
	return
}

func newTestCpu(insts ...isa.Instruction) (cpu *Cpu) {
	cpu = NewCpu(RAM_SIZE, [ROM_SIZE]byte{}, display.NewBuffer())
	cpu.Load(assemble(insts...))
	cpu.Reset()
	return
}

func TestNewCpu(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(0x10000, [ROM_SIZE]byte{}, nil)
	assert.Equal(RAM_SIZE, len(cpu.Ram))

	cpu = NewCpu(-1, [ROM_SIZE]byte{}, nil)
	assert.Equal(0, len(cpu.Ram))
}

func TestReset(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(0x100, [ROM_SIZE]byte{0x37, 0xf3}, nil)
	cpu.Register[isa.INDEX_RFLAGS] = 0x7
	cpu.Register[isa.INDEX_R0] = 0x1234
	cpu.Reset()

	assert.Equal(uint16(0xf337), cpu.Ip())
	assert.Equal(uint16(0), cpu.Flags())
	assert.Equal(uint16(0x1234), cpu.Register[isa.INDEX_R0])
}

func TestRegisterAliasing(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(0, [ROM_SIZE]byte{}, nil)

	cpu.SetReg(isa.R(0), isa.Word(0x1234))
	assert.Equal(isa.Byte(0x34), cpu.GetReg(isa.RB(0)))

	cpu.SetReg(isa.RB(0), isa.Byte(0xab))
	assert.Equal(isa.Word(0x12ab), cpu.GetReg(isa.R(0)))

	// Word values are truncated on byte writes.
	cpu.SetReg(isa.RB(0), isa.Word(0xffcd))
	assert.Equal(isa.Word(0x12cd), cpu.GetReg(isa.R(0)))

	// Byte values are zero extended on word writes.
	cpu.SetReg(isa.R(1), isa.Word(0xffff))
	cpu.SetReg(isa.R(1), isa.Byte(0x80))
	assert.Equal(isa.Word(0x0080), cpu.GetReg(isa.R(1)))
}

func TestMov(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(
		isa.MovC2R{Value: isa.Word(0xf337), Dest: isa.R(0)},
		isa.MovR2R{Src: isa.R(0), Dest: isa.R(1)},
		isa.MovC2R{Value: isa.Byte(0x42), Dest: isa.RB(2)},
	)

	_, err := cpu.Run(3)
	assert.NoError(err)
	assert.Equal(uint16(0xf337), cpu.Register[4])
	assert.Equal(uint16(0xf337), cpu.Register[5])
	assert.Equal(uint16(0x0042), cpu.Register[6])
	assert.Equal(3, cpu.Ticks)
	assert.Equal(uint16(4+2+3), cpu.Ip())
}

func TestMovMemory(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(
		isa.MovC2R{Value: isa.Word(0x1000), Dest: isa.R(0)},
		isa.MovC2R{Value: isa.Byte(0x5a), Dest: isa.RB(1)},
		isa.MovR2M{Src: isa.RB(1), Addr: isa.R(0)},
		isa.MovM2R{Addr: isa.R(0), Dest: isa.RB(2)},
		isa.MovC2R{Value: isa.Word(DISPLAY_BASE), Dest: isa.R(3)},
		isa.MovR2M{Src: isa.RB(1), Addr: isa.R(3)},
	)

	_, err := cpu.Run(6)
	assert.NoError(err)
	assert.Equal(uint8(0x5a), cpu.Ram[0x1000])
	assert.Equal(isa.Byte(0x5a), cpu.GetReg(isa.RB(2)))
	assert.Equal(byte(0x5a), cpu.Display.Get(0))
}

func TestMemoryMap(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		addr   uint16
		region MemRegion
	}){
		{0x0000, REGION_RAM},
		{0x7fff, REGION_RAM},
		{0x8000, REGION_DISPLAY},
		{0x8fff, REGION_DISPLAY},
		{0x9000, REGION_UNMAPPED},
		{0xfffd, REGION_UNMAPPED},
		{0xfffe, REGION_ROM},
		{0xffff, REGION_ROM},
	}

	for _, entry := range table {
		assert.Equal(entry.region, Region(entry.addr), "0x%04x", entry.addr)
	}

	cpu := NewCpu(0x100, [ROM_SIZE]byte{0x11, 0x22}, display.NewBuffer())

	// RAM round trip, and past the configured length.
	cpu.SetMem(0x00ff, 0xaa)
	assert.Equal(uint8(0xaa), cpu.GetMem(0x00ff))
	cpu.SetMem(0x0100, 0xbb)
	assert.Equal(uint8(0), cpu.GetMem(0x0100))

	// Unmapped writes are dropped.
	cpu.SetMem(0xa000, 0xcc)
	assert.Equal(uint8(0), cpu.GetMem(0xa000))

	// ROM is read only.
	cpu.SetMem(0xfffe, 0xdd)
	assert.Equal(uint8(0x11), cpu.GetMem(0xfffe))
	assert.Equal(uint8(0x22), cpu.GetMem(0xffff))

	// Load programs the ROM.
	image := make([]byte, 0x10000)
	image[0xfffe] = 0x34
	image[0xffff] = 0x12
	cpu.Load(image)
	cpu.Reset()
	assert.Equal(uint16(0x1234), cpu.Ip())
}

func TestAddSubFlags(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		init  uint16
		inst  isa.Instruction
		value uint16
		flags uint16
	}){
		{"add_byte_carry", 0x00ff, isa.AddC2R{Value: isa.Byte(0x01), Dest: isa.RB(0)}, 0x0000, isa.FLAG_ZERO | isa.FLAG_OVERFLOW},
		{"add_byte_keeps_high", 0x12ff, isa.AddC2R{Value: isa.Byte(0x01), Dest: isa.RB(0)}, 0x1200, isa.FLAG_ZERO | isa.FLAG_OVERFLOW},
		{"add_byte_negative", 0x007f, isa.AddC2R{Value: isa.Byte(0x01), Dest: isa.RB(0)}, 0x0080, isa.FLAG_NEGATIVE},
		{"add_word", 0x1000, isa.AddC2R{Value: isa.Word(0x0234), Dest: isa.R(0)}, 0x1234, 0},
		{"add_word_carry", 0xffff, isa.AddC2R{Value: isa.Word(0x0002), Dest: isa.R(0)}, 0x0001, isa.FLAG_OVERFLOW},
		{"sub_word_zero", 0x1234, isa.SubC2R{Value: isa.Word(0x1234), Dest: isa.R(0)}, 0x0000, isa.FLAG_ZERO},
		{"sub_word_borrow", 0x0000, isa.SubC2R{Value: isa.Word(0x0001), Dest: isa.R(0)}, 0xffff, isa.FLAG_NEGATIVE | isa.FLAG_OVERFLOW},
		{"sub_byte_borrow", 0x5500, isa.SubC2R{Value: isa.Byte(0x01), Dest: isa.RB(0)}, 0x55ff, isa.FLAG_NEGATIVE | isa.FLAG_OVERFLOW},
	}

	for _, entry := range table {
		cpu := newTestCpu(entry.inst)
		cpu.Register[isa.INDEX_R0] = entry.init
		cpu.Register[isa.INDEX_RFLAGS] = 0xffff

		assert.NoError(cpu.Step(), entry.name)
		assert.Equal(entry.value, cpu.Register[isa.INDEX_R0], entry.name)
		assert.Equal(entry.flags, cpu.Flags(), entry.name)
	}
}

func TestAddR2R(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(
		isa.AddR2R{Src: isa.R(1), Dest: isa.R(0)},
		isa.SubR2R{Src: isa.RB(1), Dest: isa.RB(0)},
	)
	cpu.Register[isa.INDEX_R0] = 0x0100
	cpu.Register[isa.INDEX_R0+1] = 0x0010

	assert.NoError(cpu.Step())
	assert.Equal(uint16(0x0110), cpu.Register[isa.INDEX_R0])

	assert.NoError(cpu.Step())
	assert.Equal(uint16(0x0100), cpu.Register[isa.INDEX_R0])
	assert.Equal(isa.FLAG_ZERO, cpu.Flags())
}

func TestJumps(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(
		isa.MovC2R{Value: isa.Word(0x0100), Dest: isa.R(0)},
		isa.AJmp{Target: isa.R(0)},
	)
	_, err := cpu.Run(2)
	assert.NoError(err)
	assert.Equal(uint16(0x0100), cpu.Ip())

	// Absolute jumps leave the flags alone.
	cpu = newTestCpu(
		isa.MovC2R{Value: isa.Word(0xf337), Dest: isa.R(0)},
		isa.AJmp{Target: isa.R(0)},
	)
	cpu.Register[isa.INDEX_RFLAGS] = isa.FLAG_OVERFLOW
	_, err = cpu.Run(2)
	assert.NoError(err)
	assert.Equal(uint16(0xf337), cpu.Ip())
	assert.Equal(uint16(0xf337), cpu.GetReg(isa.R(0)).AsWord())
	assert.Equal(isa.FLAG_OVERFLOW, cpu.Flags())

	// Relative jump from the address after the jmp.
	cpu = newTestCpu(
		isa.MovC2R{Value: isa.Word(0x0010), Dest: isa.R(0)},
		isa.Jmp{Target: isa.R(0)},
	)
	_, err = cpu.Run(2)
	assert.NoError(err)
	assert.Equal(uint16(4+2+0x10), cpu.Ip())
	assert.Equal(uint16(0), cpu.Flags())

	// Backwards, via two's complement wrap. The carry out sets overflow.
	cpu = newTestCpu(
		isa.MovC2R{Value: isa.Word(0xfffe), Dest: isa.R(0)},
		isa.Jmp{Target: isa.R(0)},
	)
	_, err = cpu.Run(2)
	assert.NoError(err)
	assert.Equal(uint16(4), cpu.Ip())
	assert.Equal(isa.FLAG_OVERFLOW, cpu.Flags())
}

func TestAddWithoutFlags(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu()
	cpu.Register[isa.INDEX_RFLAGS] = isa.FLAG_NEGATIVE
	cpu.SetReg(isa.R(0), isa.Word(0xffff))

	cpu.add(isa.Word(1), isa.R(0), false)
	assert.Equal(uint16(0), cpu.GetReg(isa.R(0)).AsWord())
	assert.Equal(isa.FLAG_NEGATIVE, cpu.Flags())

	cpu.add(isa.Word(1), isa.R(0), true)
	assert.Equal(uint16(1), cpu.GetReg(isa.R(0)).AsWord())
	assert.Equal(uint16(0), cpu.Flags())
}

func TestInvalidOpcode(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(0x100, [ROM_SIZE]byte{}, nil)
	cpu.Load([]byte{0xee, 0x12, uint8(isa.OP_NOP), 0})
	cpu.Reset()

	err := cpu.Step()
	assert.Equal(ErrInvalidOpcode{Opcode: 0xee, Next: 0x12}, err)
	assert.True(errors.Is(err, ErrDecode))
	assert.Equal(uint16(INVALID_SIZE), cpu.Ip())
	assert.Equal(0, cpu.Ticks)

	assert.NoError(cpu.Step())
	assert.Equal(uint16(4), cpu.Ip())
}

func TestRun(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(
		isa.Nop{},
		isa.Nop{},
	)
	cpu.Ram[4] = 0xff

	addr, err := cpu.Run(5)
	assert.ErrorIs(err, ErrDecode)
	assert.Equal(uint16(4), addr)
	assert.Equal(2, cpu.Ticks)
	assert.Equal(uint16(6), cpu.Ip())

	// Until error.
	cpu.Reset()
	addr, err = cpu.Run(0)
	assert.ErrorIs(err, ErrDecode)
	assert.Equal(uint16(4), addr)
	assert.Equal(2, cpu.Ticks)
}

func TestIpWraps(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(RAM_SIZE, [ROM_SIZE]byte{0xfd, 0xff}, nil)
	cpu.Reset()

	// 0xfffd is unmapped and reads as a nop.
	assert.NoError(cpu.Step())
	assert.Equal(uint16(0xffff), cpu.Ip())
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(0, [ROM_SIZE]byte{}, nil)
	defs := map[string]string{}
	for k, v := range cpu.Defines() {
		defs[k] = v
	}
	assert.Equal("0x8000", defs["DISPLAY_BASE"])
	assert.Equal("0xfffe", defs["RESET_VECTOR"])
}
