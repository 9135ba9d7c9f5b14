package cpu

import (
	"github.com/ezrec/smplvm/isa"
)

// add adds value to dest, computing in the width of value.
// If flags is set, rflags is rewritten from the result, and the carry out
// of that width sets the overflow flag.
func (cpu *Cpu) add(value isa.Value, dest isa.Register, flags bool) {
	w := value.Width()
	prior := cpu.GetReg(dest.WithWidth(w))

	sum := uint32(prior.AsWord()) + uint32(value.AsWord())
	result := isa.ValueOf(w, uint16(sum))
	carry := sum>>(8*w.Bytes()) != 0

	cpu.SetReg(dest, result)
	if flags {
		cpu.setFlags(result, carry)
	}
}

// sub subtracts value from dest, computing in the width of value.
// A borrow sets the overflow flag.
func (cpu *Cpu) sub(value isa.Value, dest isa.Register) {
	w := value.Width()
	prior := cpu.GetReg(dest.WithWidth(w))

	result := isa.ValueOf(w, prior.AsWord()-value.AsWord())
	borrow := value.AsWord() > prior.AsWord()

	cpu.SetReg(dest, result)
	cpu.setFlags(result, borrow)
}

// setFlags rewrites all of rflags from an arithmetic result.
func (cpu *Cpu) setFlags(result isa.Value, overflow bool) {
	var flags uint16
	if result.AsWord() == 0 {
		flags |= isa.FLAG_ZERO
	}
	if result.Sign() {
		flags |= isa.FLAG_NEGATIVE
	}
	if overflow {
		flags |= isa.FLAG_OVERFLOW
	}
	cpu.Register[isa.INDEX_RFLAGS] = flags
}
