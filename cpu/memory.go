package cpu

// Memory is a byte-addressable view of the 64KiB address space.
type Memory interface {
	GetMem(addr uint16) uint8
}

// Address map.
const (
	RAM_BASE     = 0x0000
	RAM_SIZE     = 0x8000
	DISPLAY_BASE = 0x8000
	DISPLAY_SIZE = 0x1000
	ROM_BASE     = 0xfffe
	ROM_SIZE     = 2

	RESET_VECTOR = ROM_BASE // Little-endian reset address.
)

// MemRegion identifies the device an address is routed to.
type MemRegion int

//go:generate go tool stringer -linecomment -type=MemRegion
const (
	REGION_UNMAPPED = MemRegion(0) // unmapped
	REGION_RAM      = MemRegion(1) // ram
	REGION_DISPLAY  = MemRegion(2) // display
	REGION_ROM      = MemRegion(3) // rom
)

// Region returns the region addr belongs to.
func Region(addr uint16) MemRegion {
	switch {
	case addr < RAM_BASE+RAM_SIZE:
		return REGION_RAM
	case addr >= DISPLAY_BASE && addr < DISPLAY_BASE+DISPLAY_SIZE:
		return REGION_DISPLAY
	case addr >= ROM_BASE:
		return REGION_ROM
	}
	return REGION_UNMAPPED
}

// Bytes is a flat memory image. Reads past the end return 0.
type Bytes []byte

var _ Memory = Bytes(nil)

func (mem Bytes) GetMem(addr uint16) (value uint8) {
	if int(addr) < len(mem) {
		value = mem[addr]
	}
	return
}

// GetMem reads a byte through the address map.
// Unmapped addresses, and RAM past the configured length, read as 0.
// This is a weak guarantee rather than a contract: programs should not
// depend on it.
func (cpu *Cpu) GetMem(addr uint16) (value uint8) {
	switch Region(addr) {
	case REGION_RAM:
		offset := int(addr - RAM_BASE)
		if offset < len(cpu.Ram) {
			value = cpu.Ram[offset]
		}
	case REGION_DISPLAY:
		if cpu.Display != nil {
			value = cpu.Display.Get(int(addr - DISPLAY_BASE))
		}
	case REGION_ROM:
		value = cpu.Rom[addr-ROM_BASE]
	}

	return
}

// SetMem writes a byte through the address map.
// Writes to ROM, unmapped addresses and RAM past the configured length are
// dropped.
func (cpu *Cpu) SetMem(addr uint16, value uint8) {
	switch Region(addr) {
	case REGION_RAM:
		offset := int(addr - RAM_BASE)
		if offset < len(cpu.Ram) {
			cpu.Ram[offset] = value
		}
	case REGION_DISPLAY:
		if cpu.Display != nil {
			cpu.Display.Set(int(addr-DISPLAY_BASE), value)
		}
	}
}

// Load copies an image into the address space, starting at address 0.
// Unlike SetMem, Load also programs the ROM.
func (cpu *Cpu) Load(image []byte) {
	for n, value := range image {
		if n > 0xffff {
			break
		}
		addr := uint16(n)
		if Region(addr) == REGION_ROM {
			cpu.Rom[addr-ROM_BASE] = value
			continue
		}
		cpu.SetMem(addr, value)
	}
}
