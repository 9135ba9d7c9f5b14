package debugger

import (
	"fmt"

	"github.com/ezrec/smplvm/isa"
)

// CmdKind is the kind of a debugger command.
type CmdKind int

//go:generate go tool stringer -linecomment -type=CmdKind
const (
	CMD_STEP     = CmdKind(0) // step
	CMD_CONTINUE = CmdKind(1) // continue
	CMD_GET_ADDR = CmdKind(2) // get-addr
	CMD_SET_ADDR = CmdKind(3) // set-addr
	CMD_GET_REG  = CmdKind(4) // get-reg
	CMD_SET_REG  = CmdKind(5) // set-reg
)

// Cmd is a parsed debugger command.
type Cmd struct {
	Kind  CmdKind
	Addr  uint16       // CMD_GET_ADDR, CMD_SET_ADDR
	Reg   isa.Register // CMD_GET_REG, CMD_SET_REG
	Value uint16       // CMD_SET_ADDR (low byte only), CMD_SET_REG
}

var (
	CmdStep     = Cmd{Kind: CMD_STEP}
	CmdContinue = Cmd{Kind: CMD_CONTINUE}
)

// CmdGetAddr reads the byte at addr.
func CmdGetAddr(addr uint16) Cmd {
	return Cmd{Kind: CMD_GET_ADDR, Addr: addr}
}

// CmdSetAddr writes value to addr.
func CmdSetAddr(addr uint16, value uint8) Cmd {
	return Cmd{Kind: CMD_SET_ADDR, Addr: addr, Value: uint16(value)}
}

// CmdGetReg reads a register.
func CmdGetReg(reg isa.Register) Cmd {
	return Cmd{Kind: CMD_GET_REG, Reg: reg}
}

// CmdSetReg writes value to a register.
func CmdSetReg(reg isa.Register, value uint16) Cmd {
	return Cmd{Kind: CMD_SET_REG, Reg: reg, Value: value}
}

func (cmd Cmd) String() string {
	switch cmd.Kind {
	case CMD_GET_ADDR:
		return fmt.Sprintf("get 0x%04X", cmd.Addr)
	case CMD_SET_ADDR:
		return fmt.Sprintf("set 0x%04X 0x%02X", cmd.Addr, uint8(cmd.Value))
	case CMD_GET_REG:
		return fmt.Sprintf("get %v", cmd.Reg)
	case CMD_SET_REG:
		return fmt.Sprintf("set %v 0x%04X", cmd.Reg, cmd.Value)
	}
	return cmd.Kind.String()
}
