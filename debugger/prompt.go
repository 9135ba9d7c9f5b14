package debugger

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/ezrec/smplvm/isa"
	"github.com/ezrec/smplvm/translate"
)

const (
	PROMPT          = "> "   // Command prompt.
	PROMPT_CONTINUE = "... " // Prompt for the rest of an incomplete command.
)

// Prompter supplies debugger commands.
type Prompter interface {
	// Prompt blocks for the next command. last is repeated on empty input.
	// io.EOF ends the session.
	Prompt(last *Cmd) (cmd Cmd, err error)
}

// LineReader reads one line of user input.
type LineReader interface {
	ReadLine(prompt string) (line string, err error)
}

// ScanReader reads lines from any reader, echoing prompts to Output.
type ScanReader struct {
	Output  io.Writer
	scanner *bufio.Scanner
}

var _ LineReader = (*ScanReader)(nil)

// NewScanReader creates a line reader over r.
func NewScanReader(r io.Reader, w io.Writer) *ScanReader {
	return &ScanReader{Output: w, scanner: bufio.NewScanner(r)}
}

func (sr *ScanReader) ReadLine(prompt string) (line string, err error) {
	if sr.Output != nil {
		fmt.Fprint(sr.Output, prompt)
	}

	if !sr.scanner.Scan() {
		err = sr.scanner.Err()
		if err == nil {
			err = io.EOF
		}
		return
	}

	line = sr.scanner.Text()
	return
}

// TermReader is an interactive line editor with history.
// The terminal is only in raw mode while a line is being read, so that
// program output between prompts is not mangled.
type TermReader struct {
	fd       int
	terminal *term.Terminal
}

var _ LineReader = (*TermReader)(nil)

// NewTermReader creates a line editor on the terminal in, writing to out.
func NewTermReader(in *os.File, out io.Writer) *TermReader {
	rw := struct {
		io.Reader
		io.Writer
	}{in, out}

	return &TermReader{
		fd:       int(in.Fd()),
		terminal: term.NewTerminal(rw, PROMPT),
	}
}

func (tr *TermReader) ReadLine(prompt string) (line string, err error) {
	state, err := term.MakeRaw(tr.fd)
	if err != nil {
		return
	}
	defer term.Restore(tr.fd, state)

	tr.terminal.SetPrompt(prompt)
	line, err = tr.terminal.ReadLine()

	return
}

// NewLineReader returns a TermReader if in is a terminal, otherwise a
// ScanReader.
func NewLineReader(in *os.File, out io.Writer) LineReader {
	if term.IsTerminal(int(in.Fd())) {
		return NewTermReader(in, out)
	}
	return NewScanReader(in, out)
}

// CmdPrompter parses commands from a LineReader.
//
// Lines that form a valid but incomplete command are joined with the
// following lines until the command is complete. Rejected lines are
// reported to Output and the user is prompted again.
type CmdPrompter struct {
	Reader    LineReader
	Registers isa.RegisterSet
	Output    io.Writer
}

var _ Prompter = (*CmdPrompter)(nil)

// NewCmdPrompter creates a prompter using the SmplCore register names.
func NewCmdPrompter(reader LineReader, out io.Writer) *CmdPrompter {
	return &CmdPrompter{
		Reader:    reader,
		Registers: isa.Registers,
		Output:    out,
	}
}

func (cp *CmdPrompter) Prompt(last *Cmd) (cmd Cmd, err error) {
	var pending string
	prompt := PROMPT

	for {
		var line string
		line, err = cp.Reader.ReadLine(prompt)
		if err != nil {
			return
		}

		if len(pending) > 0 {
			line = pending + " " + line
		}

		cmd, err = Parse(line, last, cp.Registers)
		if err == nil {
			return
		}

		if errors.Is(err, ErrIncomplete) {
			pending = line
			prompt = PROMPT_CONTINUE
			continue
		}

		if cp.Output != nil {
			translate.Fprintln(cp.Output, "%v", err)
		}
		pending = ""
		prompt = PROMPT
	}
}
