package isa

import (
	"fmt"
)

// Instruction is a decoded SmplCore instruction.
type Instruction interface {
	// Opcode returns the opcode byte of the instruction.
	Opcode() Opcode
	// Len returns the encoded size of the instruction in bytes.
	Len() uint16
	// Encode returns the binary encoding of the instruction.
	Encode() []byte
	// String returns the assembler form of the instruction.
	String() string
}

// Nop does nothing.
type Nop struct{}

// MovC2R moves an immediate into a register.
type MovC2R struct {
	Value Value
	Dest  Register
}

// MovR2R copies a register into another register of the same width.
type MovR2R struct {
	Src  Register
	Dest Register
}

// MovM2R loads the memory byte addressed by Addr into Dest.
type MovM2R struct {
	Addr Register
	Dest Register
}

// MovR2M stores the byte register Src at the memory byte addressed by Addr.
type MovR2M struct {
	Src  Register
	Addr Register
}

// AddC2R adds an immediate to a register.
type AddC2R struct {
	Value Value
	Dest  Register
}

// AddR2R adds a register to a register.
type AddR2R struct {
	Src  Register
	Dest Register
}

// SubC2R subtracts an immediate from a register.
type SubC2R struct {
	Value Value
	Dest  Register
}

// SubR2R subtracts a register from a register.
type SubR2R struct {
	Src  Register
	Dest Register
}

// AJmp jumps to the address held in Target, leaving the flags alone.
type AJmp struct {
	Target Register
}

// Jmp adds Target to the instruction pointer and updates the flags.
type Jmp struct {
	Target Register
}

var (
	_ Instruction = Nop{}
	_ Instruction = MovC2R{}
	_ Instruction = MovR2R{}
	_ Instruction = MovM2R{}
	_ Instruction = MovR2M{}
	_ Instruction = AddC2R{}
	_ Instruction = AddR2R{}
	_ Instruction = SubC2R{}
	_ Instruction = SubR2R{}
	_ Instruction = AJmp{}
	_ Instruction = Jmp{}
)

func encodeC2R(op Opcode, value Value, dest Register) []byte {
	code := []byte{uint8(op), Selector(Register{}, dest)}
	return append(code, value.Encode()...)
}

func encodeR2R(op Opcode, src, dest Register) []byte {
	return []byte{uint8(op), Selector(src, dest)}
}

func (Nop) Opcode() Opcode { return OP_NOP }
func (Nop) Len() uint16 { return 2 }
func (Nop) Encode() []byte { return []byte{uint8(OP_NOP), 0} }
func (Nop) String() string { return "nop" }

func (in MovC2R) Opcode() Opcode { return widthOp(OP_MOV_C2R_BYTE, in.Value.Width()) }
func (in MovC2R) Len() uint16 { return 2 + in.Value.Width().Bytes() }
func (in MovC2R) Encode() []byte { return encodeC2R(in.Opcode(), in.Value, in.Dest) }
func (in MovC2R) String() string { return fmt.Sprintf("mov %v, %v", in.Value, in.Dest) }

func (in MovR2R) Opcode() Opcode { return widthOp(OP_MOV_R2R_BYTE, in.Src.Width()) }
func (in MovR2R) Len() uint16 { return 2 }
func (in MovR2R) Encode() []byte { return encodeR2R(in.Opcode(), in.Src, in.Dest) }
func (in MovR2R) String() string { return fmt.Sprintf("mov %v, %v", in.Src, in.Dest) }

func (in MovM2R) Opcode() Opcode { return OP_MOV_M2R }
func (in MovM2R) Len() uint16 { return 2 }
func (in MovM2R) Encode() []byte { return encodeR2R(OP_MOV_M2R, in.Addr, in.Dest) }
func (in MovM2R) String() string { return fmt.Sprintf("mov [%v], %v", in.Addr, in.Dest) }

func (in MovR2M) Opcode() Opcode { return OP_MOV_R2M }
func (in MovR2M) Len() uint16 { return 2 }
func (in MovR2M) Encode() []byte { return encodeR2R(OP_MOV_R2M, in.Src, in.Addr) }
func (in MovR2M) String() string { return fmt.Sprintf("mov %v, [%v]", in.Src, in.Addr) }

func (in AddC2R) Opcode() Opcode { return widthOp(OP_ADD_C2R_BYTE, in.Value.Width()) }
func (in AddC2R) Len() uint16 { return 2 + in.Value.Width().Bytes() }
func (in AddC2R) Encode() []byte { return encodeC2R(in.Opcode(), in.Value, in.Dest) }
func (in AddC2R) String() string { return fmt.Sprintf("add %v, %v", in.Value, in.Dest) }

func (in AddR2R) Opcode() Opcode { return widthOp(OP_ADD_R2R_BYTE, in.Src.Width()) }
func (in AddR2R) Len() uint16 { return 2 }
func (in AddR2R) Encode() []byte { return encodeR2R(in.Opcode(), in.Src, in.Dest) }
func (in AddR2R) String() string { return fmt.Sprintf("add %v, %v", in.Src, in.Dest) }

func (in SubC2R) Opcode() Opcode { return widthOp(OP_SUB_C2R_BYTE, in.Value.Width()) }
func (in SubC2R) Len() uint16 { return 2 + in.Value.Width().Bytes() }
func (in SubC2R) Encode() []byte { return encodeC2R(in.Opcode(), in.Value, in.Dest) }
func (in SubC2R) String() string { return fmt.Sprintf("sub %v, %v", in.Value, in.Dest) }

func (in SubR2R) Opcode() Opcode { return widthOp(OP_SUB_R2R_BYTE, in.Src.Width()) }
func (in SubR2R) Len() uint16 { return 2 }
func (in SubR2R) Encode() []byte { return encodeR2R(in.Opcode(), in.Src, in.Dest) }
func (in SubR2R) String() string { return fmt.Sprintf("sub %v, %v", in.Src, in.Dest) }

func (in AJmp) Opcode() Opcode { return OP_AJMP }
func (in AJmp) Len() uint16 { return 2 }
func (in AJmp) Encode() []byte { return encodeR2R(OP_AJMP, in.Target, Register{}) }
func (in AJmp) String() string { return fmt.Sprintf("ajmp %v", in.Target) }

func (in Jmp) Opcode() Opcode { return OP_JMP }
func (in Jmp) Len() uint16 { return 2 }
func (in Jmp) Encode() []byte { return encodeR2R(OP_JMP, in.Target, Register{}) }
func (in Jmp) String() string { return fmt.Sprintf("jmp %v", in.Target) }
