package isa

// Opcode is the first byte of an encoded instruction.
type Opcode uint8

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_NOP          = Opcode(0x00) // nop
	OP_MOV_C2R_BYTE = Opcode(0x01) // mov.c2r.b
	OP_MOV_C2R_WORD = Opcode(0x02) // mov.c2r.w
	OP_MOV_R2R_BYTE = Opcode(0x03) // mov.r2r.b
	OP_MOV_R2R_WORD = Opcode(0x04) // mov.r2r.w
	OP_MOV_M2R      = Opcode(0x05) // mov.m2r
	OP_MOV_R2M      = Opcode(0x06) // mov.r2m
	OP_ADD_C2R_BYTE = Opcode(0x07) // add.c2r.b
	OP_ADD_C2R_WORD = Opcode(0x08) // add.c2r.w
	OP_ADD_R2R_BYTE = Opcode(0x09) // add.r2r.b
	OP_ADD_R2R_WORD = Opcode(0x0a) // add.r2r.w
	OP_SUB_C2R_BYTE = Opcode(0x0b) // sub.c2r.b
	OP_SUB_C2R_WORD = Opcode(0x0c) // sub.c2r.w
	OP_SUB_R2R_BYTE = Opcode(0x0d) // sub.r2r.b
	OP_SUB_R2R_WORD = Opcode(0x0e) // sub.r2r.w
	OP_AJMP         = Opcode(0x0f) // ajmp
	OP_JMP          = Opcode(0x10) // jmp
	OP_COUNT        = 0x11         // Number of defined opcodes.
)

// Valid returns true if the opcode is part of the instruction set.
func (op Opcode) Valid() bool {
	return op < OP_COUNT
}

// widthOp picks the byte or word form of an opcode pair.
func widthOp(byteOp Opcode, w Width) Opcode {
	if w == WIDTH_BYTE {
		return byteOp
	}
	return byteOp + 1
}
