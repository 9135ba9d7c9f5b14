package debugger

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/ezrec/smplvm/isa"
)

// Machine is the VM state the debugger drives.
type Machine interface {
	Step() error
	Ip() uint16
	GetReg(reg isa.Register) isa.Value
	SetReg(reg isa.Register, value isa.Value)
	GetMem(addr uint16) uint8
	SetMem(addr uint16, value uint8)
}

// Policy selects what happens when the machine reports an error.
// POLICY_STOP ends the session with the error; POLICY_REPORT prints it and
// prompts again.
type Policy int

//go:generate go tool stringer -linecomment -type=Policy
const (
	POLICY_STOP   = Policy(0) // stop
	POLICY_REPORT = Policy(1) // report
)

func (policy Policy) MarshalText() (text []byte, err error) {
	text = []byte(policy.String())
	return
}

func (policy *Policy) UnmarshalText(text []byte) (err error) {
	switch strings.ToLower(string(text)) {
	case "stop":
		*policy = POLICY_STOP
	case "report":
		*policy = POLICY_REPORT
	default:
		err = errors.Join(ErrPolicy, ErrPolicyName(text))
	}
	return
}

// Break is the outcome of a debugger action.
type Break struct {
	Hit  bool   // Set if execution halted at a breakpoint.
	Addr uint16 // Address of the breakpoint.
}

// Debugger runs a machine under interactive control.
type Debugger struct {
	Verbose bool // Set to enable verbose logging.

	Machine     Machine
	Breakpoints Breakpoints
	FirstPrompt bool // Prompt before executing anything.
	Policy      Policy
	Prompter    Prompter
	Output      io.Writer

	resuming bool   // Set after a breakpoint hit.
	resumeAt uint16 // Address that may execute despite its breakpoint.
}

// NewDebugger creates a debugger for mach.
func NewDebugger(mach Machine, bps Breakpoints, prompter Prompter, out io.Writer) (dbg *Debugger) {
	dbg = &Debugger{
		Machine:     mach,
		Breakpoints: bps,
		Prompter:    prompter,
		Output:      out,
	}
	return
}

// step executes one instruction, unless a breakpoint stops it.
//
// A breakpoint hit does not execute, and arms the debugger to let the next
// step at the same address through.
func (dbg *Debugger) step() (brk Break, err error) {
	ip := dbg.Machine.Ip()

	if dbg.Breakpoints.Contains(ip) && !(dbg.resuming && dbg.resumeAt == ip) {
		dbg.resuming = true
		dbg.resumeAt = ip
		brk = Break{Hit: true, Addr: ip}
		return
	}

	dbg.resuming = false
	err = dbg.Machine.Step()

	return
}

// Action performs one command.
// Memory and register commands act on the live state and do not consult
// the breakpoints.
func (dbg *Debugger) Action(cmd Cmd) (brk Break, err error) {
	if dbg.Verbose {
		log.Printf("debugger: %v", cmd)
	}

	mach := dbg.Machine

	switch cmd.Kind {
	case CMD_STEP:
		brk, err = dbg.step()
	case CMD_CONTINUE:
		for {
			brk, err = dbg.step()
			if err != nil || brk.Hit {
				break
			}
		}
	case CMD_GET_ADDR:
		dbg.printf("0x%04X: 0x%02X\n", cmd.Addr, mach.GetMem(cmd.Addr))
	case CMD_SET_ADDR:
		mach.SetMem(cmd.Addr, uint8(cmd.Value))
	case CMD_GET_REG:
		dbg.printf("%v: 0x%04X\n", cmd.Reg, mach.GetReg(cmd.Reg).AsWord())
	case CMD_SET_REG:
		mach.SetReg(cmd.Reg, isa.Word(cmd.Value))
	}

	return
}

func (dbg *Debugger) printf(format string, args ...any) {
	if dbg.Output != nil {
		fmt.Fprintf(dbg.Output, format, args...)
	}
}

// prompt asks for the next command. io.EOF is passed through unwrapped.
func (dbg *Debugger) prompt(last Cmd) (cmd Cmd, err error) {
	cmd, err = dbg.Prompter.Prompt(&last)
	if err != nil && !errors.Is(err, io.EOF) {
		err = errors.Join(ErrPrompt, err)
	}
	return
}

// Run is the debugger session loop.
//
// The first command is Continue, or is prompted for if FirstPrompt is set.
// After each action the user is prompted for the next command, with the
// command just executed repeated on empty input. The session ends without
// error when the prompter reports io.EOF.
func (dbg *Debugger) Run() (err error) {
	defer func() {
		if errors.Is(err, io.EOF) {
			err = nil
		}
	}()

	cmd := CmdContinue
	if dbg.FirstPrompt {
		cmd, err = dbg.prompt(cmd)
		if err != nil {
			return
		}
	}

	for {
		var brk Break
		brk, err = dbg.Action(cmd)
		if err != nil {
			if dbg.Policy == POLICY_STOP {
				return
			}
			dbg.printf("%v\n", err)
			err = nil
		}

		if brk.Hit {
			dbg.printf("Breakpoint at: 0x%04X\n", brk.Addr)
		}

		cmd, err = dbg.prompt(cmd)
		if err != nil {
			return
		}
	}
}
