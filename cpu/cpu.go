package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/smplvm/display"
	"github.com/ezrec/smplvm/isa"
)

var _cpu_defines = map[string]string{
	"RAM_BASE":     fmt.Sprintf("0x%04x", RAM_BASE),
	"RAM_SIZE":     fmt.Sprintf("0x%04x", RAM_SIZE),
	"DISPLAY_BASE": fmt.Sprintf("0x%04x", DISPLAY_BASE),
	"ROM_BASE":     fmt.Sprintf("0x%04x", ROM_BASE),
	"RESET_VECTOR": fmt.Sprintf("0x%04x", RESET_VECTOR),
	"FLAG_ZERO":    fmt.Sprintf("0x%x", isa.FLAG_ZERO),
	"FLAG_NEG":     fmt.Sprintf("0x%x", isa.FLAG_NEGATIVE),
	"FLAG_OVF":     fmt.Sprintf("0x%x", isa.FLAG_OVERFLOW),
}

// Cpu is the SmplCore simulation context.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Register [isa.REGISTER_COUNT]uint16 // Register file.
	Ram      []byte                     // Main memory.
	Rom      [ROM_SIZE]byte             // Reset vector.
	Display  *display.Buffer            // Memory mapped display, may be nil.

	Ticks int // Executed instruction counter.
}

var _ Memory = (*Cpu)(nil)

// NewCpu creates a new CPU with ramLen bytes of RAM, capped at RAM_SIZE.
func NewCpu(ramLen int, rom [ROM_SIZE]byte, screen *display.Buffer) (cpu *Cpu) {
	ramLen = max(0, min(ramLen, RAM_SIZE))

	cpu = &Cpu{
		Ram:     make([]byte, ramLen),
		Rom:     rom,
		Display: screen,
	}

	return
}

// Defines returns an iterator of the memory layout equates.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// GetReg reads a register at its width.
func (cpu *Cpu) GetReg(reg isa.Register) isa.Value {
	return isa.ValueOf(reg.Width(), cpu.Register[reg.Index()&0xf])
}

// SetReg writes a register. A byte register only replaces the low byte of
// its slot.
func (cpu *Cpu) SetReg(reg isa.Register, value isa.Value) {
	slot := &cpu.Register[reg.Index()&0xf]
	if reg.Width() == isa.WIDTH_BYTE {
		*slot = uint16(value.AsByte()) | *slot&0xff00
		return
	}
	*slot = value.AsWord()
}

// Ip returns the instruction pointer.
func (cpu *Cpu) Ip() uint16 {
	return cpu.Register[isa.INDEX_RIP]
}

// Flags returns the flags register.
func (cpu *Cpu) Flags() uint16 {
	return cpu.Register[isa.INDEX_RFLAGS]
}

// Reset the CPU state.
//   - Loads the instruction pointer from the ROM reset vector.
//   - Clears the flags.
//   - Zeros the tick counter.
//
// Other registers and memory are left as they are.
func (cpu *Cpu) Reset() {
	cpu.Register[isa.INDEX_RIP] = uint16(cpu.Rom[0]) | uint16(cpu.Rom[1])<<8
	cpu.Register[isa.INDEX_RFLAGS] = 0
	cpu.Ticks = 0

	if cpu.Verbose {
		log.Printf("cpu: reset to 0x%04x", cpu.Ip())
	}
}

// Step decodes and executes the instruction at the instruction pointer.
//
// The instruction pointer is advanced past the instruction before it is
// executed, so jumps observe the address of the next instruction. A decode
// error is returned with the pointer already advanced.
func (cpu *Cpu) Step() (err error) {
	ip := cpu.Ip()

	inst, size, err := Decode(cpu, ip)
	cpu.Register[isa.INDEX_RIP] = ip + size
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("%04x: %v", ip, inst)
	}

	err = cpu.Execute(inst)
	cpu.Ticks++

	return
}

// Run executes n steps, or steps until an error if n is 0.
// On error, addr is the address of the failing instruction.
func (cpu *Cpu) Run(n int) (addr uint16, err error) {
	for count := 0; n == 0 || count < n; count++ {
		addr = cpu.Ip()
		err = cpu.Step()
		if err != nil {
			return
		}
	}
	return
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(inst isa.Instruction) (err error) {
	switch in := inst.(type) {
	case isa.Nop:
		// pass
	case isa.MovC2R:
		cpu.SetReg(in.Dest, in.Value)
	case isa.MovR2R:
		cpu.SetReg(in.Dest, cpu.GetReg(in.Src))
	case isa.MovM2R:
		addr := cpu.GetReg(in.Addr).AsWord()
		cpu.SetReg(in.Dest, isa.Byte(cpu.GetMem(addr)))
	case isa.MovR2M:
		addr := cpu.GetReg(in.Addr).AsWord()
		cpu.SetMem(addr, cpu.GetReg(in.Src).AsByte())
	case isa.AddC2R:
		cpu.add(in.Value, in.Dest, true)
	case isa.AddR2R:
		cpu.add(cpu.GetReg(in.Src), in.Dest, true)
	case isa.SubC2R:
		cpu.sub(in.Value, in.Dest)
	case isa.SubR2R:
		cpu.sub(cpu.GetReg(in.Src), in.Dest)
	case isa.AJmp:
		cpu.SetReg(isa.RIP, isa.Word(cpu.GetReg(in.Target).AsWord()))
	case isa.Jmp:
		cpu.add(cpu.GetReg(in.Target), isa.RIP, true)
	default:
		err = ErrInvalidOpcode{Opcode: uint8(inst.Opcode())}
	}

	return
}

// String returns the register file as text.
func (cpu *Cpu) String() (text string) {
	regs := []isa.Register{isa.RINFO, isa.RIP, isa.RFLAGS, isa.RSP}
	for n := range isa.COUNT_GP {
		regs = append(regs, isa.R(n))
	}

	for _, reg := range regs {
		text += fmt.Sprintf("% 6s: %v\n", reg, cpu.GetReg(reg))
	}

	return
}
