package cpu

import (
	"github.com/ezrec/smplvm/isa"
)

// INVALID_SIZE is the number of bytes skipped over an invalid opcode.
const INVALID_SIZE = 2

// operands fetches the operand bytes that follow an opcode.
type operands struct {
	mem  Memory
	addr uint16
}

// at returns operand byte n (1 is the byte after the opcode).
func (op operands) at(n uint16) uint8 {
	return op.mem.GetMem(op.addr + n)
}

// selector returns the register selector byte.
func (op operands) selector() uint8 {
	return op.at(1)
}

// value returns the immediate of width w that follows the selector.
func (op operands) value(w isa.Width) isa.Value {
	if w == isa.WIDTH_BYTE {
		return isa.Byte(op.at(2))
	}
	return isa.Word(uint16(op.at(2)) | uint16(op.at(3))<<8)
}

func (op operands) src(w isa.Width) isa.Register {
	return isa.FromSrc(op.selector(), w)
}

func (op operands) dest(w isa.Width) isa.Register {
	return isa.FromDest(op.selector(), w)
}

type decodeFunc func(op operands) isa.Instruction

// decodeTable maps each opcode to the shape of its operands.
var decodeTable = [isa.OP_COUNT]decodeFunc{
	isa.OP_NOP: func(op operands) isa.Instruction {
		return isa.Nop{}
	},
	isa.OP_MOV_C2R_BYTE: func(op operands) isa.Instruction {
		return isa.MovC2R{Value: op.value(isa.WIDTH_BYTE), Dest: op.dest(isa.WIDTH_BYTE)}
	},
	isa.OP_MOV_C2R_WORD: func(op operands) isa.Instruction {
		return isa.MovC2R{Value: op.value(isa.WIDTH_WORD), Dest: op.dest(isa.WIDTH_WORD)}
	},
	isa.OP_MOV_R2R_BYTE: func(op operands) isa.Instruction {
		return isa.MovR2R{Src: op.src(isa.WIDTH_BYTE), Dest: op.dest(isa.WIDTH_BYTE)}
	},
	isa.OP_MOV_R2R_WORD: func(op operands) isa.Instruction {
		return isa.MovR2R{Src: op.src(isa.WIDTH_WORD), Dest: op.dest(isa.WIDTH_WORD)}
	},
	isa.OP_MOV_M2R: func(op operands) isa.Instruction {
		return isa.MovM2R{Addr: op.src(isa.WIDTH_WORD), Dest: op.dest(isa.WIDTH_BYTE)}
	},
	isa.OP_MOV_R2M: func(op operands) isa.Instruction {
		return isa.MovR2M{Src: op.src(isa.WIDTH_BYTE), Addr: op.dest(isa.WIDTH_WORD)}
	},
	isa.OP_ADD_C2R_BYTE: func(op operands) isa.Instruction {
		return isa.AddC2R{Value: op.value(isa.WIDTH_BYTE), Dest: op.dest(isa.WIDTH_BYTE)}
	},
	isa.OP_ADD_C2R_WORD: func(op operands) isa.Instruction {
		return isa.AddC2R{Value: op.value(isa.WIDTH_WORD), Dest: op.dest(isa.WIDTH_WORD)}
	},
	isa.OP_ADD_R2R_BYTE: func(op operands) isa.Instruction {
		return isa.AddR2R{Src: op.src(isa.WIDTH_BYTE), Dest: op.dest(isa.WIDTH_BYTE)}
	},
	isa.OP_ADD_R2R_WORD: func(op operands) isa.Instruction {
		return isa.AddR2R{Src: op.src(isa.WIDTH_WORD), Dest: op.dest(isa.WIDTH_WORD)}
	},
	isa.OP_SUB_C2R_BYTE: func(op operands) isa.Instruction {
		return isa.SubC2R{Value: op.value(isa.WIDTH_BYTE), Dest: op.dest(isa.WIDTH_BYTE)}
	},
	isa.OP_SUB_C2R_WORD: func(op operands) isa.Instruction {
		return isa.SubC2R{Value: op.value(isa.WIDTH_WORD), Dest: op.dest(isa.WIDTH_WORD)}
	},
	isa.OP_SUB_R2R_BYTE: func(op operands) isa.Instruction {
		return isa.SubR2R{Src: op.src(isa.WIDTH_BYTE), Dest: op.dest(isa.WIDTH_BYTE)}
	},
	isa.OP_SUB_R2R_WORD: func(op operands) isa.Instruction {
		return isa.SubR2R{Src: op.src(isa.WIDTH_WORD), Dest: op.dest(isa.WIDTH_WORD)}
	},
	isa.OP_AJMP: func(op operands) isa.Instruction {
		return isa.AJmp{Target: op.src(isa.WIDTH_WORD)}
	},
	isa.OP_JMP: func(op operands) isa.Instruction {
		return isa.Jmp{Target: op.src(isa.WIDTH_WORD)}
	},
}

// Decode decodes the instruction at addr.
//
// On success size is the canonical length of the instruction. An unknown
// opcode returns ErrInvalidOpcode and a size of INVALID_SIZE so that the
// caller can skip over it.
func Decode(mem Memory, addr uint16) (inst isa.Instruction, size uint16, err error) {
	opcode := isa.Opcode(mem.GetMem(addr))
	if !opcode.Valid() {
		err = ErrInvalidOpcode{Opcode: uint8(opcode), Next: mem.GetMem(addr + 1)}
		size = INVALID_SIZE
		return
	}

	inst = decodeTable[opcode](operands{mem: mem, addr: addr})
	size = inst.Len()

	return
}
