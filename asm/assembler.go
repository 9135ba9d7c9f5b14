package asm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/smplvm/isa"
)

// ADDRESS_SPACE is the size of the assembled address space.
const ADDRESS_SPACE = 0x10000

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the first line of the macro body.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

var (
	reCharacter = regexp.MustCompile(`'\\?[^']'`)
	reParen     = regexp.MustCompile(`\$\([^\$]*\)`)
	reLabel     = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)
)

// Assembler is a single pass macro assembler for SmplCore.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]int      // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	addr int // Address of the next opcode.
}

// Predefine defines a new equate, or redefines an existing one, for all
// subsequent calls to Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{}
	}
	asm.predefine[equ] = value
}

// valueOf returns the value of a numeric word.
// Negative values down to -0x8000 are accepted and returned as is.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	invert := false
	if word[0] == '~' {
		invert = true
		word = word[1:]
		if len(word) == 0 {
			err = ErrParseNumber("~")
			return
		}
	}
	if word[0] == '\'' {
		// Character literals are expanded by parseLine()
		err = ErrParseCharacter(strings.Trim(word, "'"))
		return
	}

	value, err = strconv.ParseInt(word, 0, 32)
	if err != nil || value < -0x8000 || value > 0xffff {
		err = ErrParseNumber(word)
		return
	}

	if invert {
		value = int64(^uint16(value))
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v, err := asm.valueOf(str)
		if err != nil {
			// Non-numeric equates, such as register aliases, are not
			// visible to expressions.
			continue
		}
		pred[key] = starlark.MakeInt64(v)
	}
	for key, addr := range asm.Label {
		if _, ok := pred[key]; !ok {
			pred[key] = starlark.MakeInt(addr)
		}
	}

	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", "rc="+expr+"\n", pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}

	rc, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = rc.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return
}

// character expands a character literal to its decimal value.
func character(quoted string) string {
	str := quoted[1 : len(quoted)-1]
	if str[0] == '\\' {
		switch str[1:] {
		case "\\":
			str = "\\"
		case "n":
			str = "\n"
		case "r":
			str = "\r"
		case "t":
			str = "\t"
		case "0":
			str = "\000"
		case "e":
			str = "\033"
		default:
			return quoted
		}
	} else if len(str) != 1 {
		return quoted
	}
	return strconv.Itoa(int(str[0]))
}

// parseLine expands a line of text into words.
// Equates and labels are processed here, as are macro invocations.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	asm.Equate["LINENO"] = strconv.Itoa(lineno)

	line = reCharacter.ReplaceAllStringFunc(line, character)

	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, perr := asm.parenEval(str[2 : len(str)-1])
		if perr != nil && err == nil {
			err = perr
		}
		return strconv.FormatInt(value, 10)
	})
	if err != nil {
		return
	}

	words = strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(words) == 0 {
		return
	}

	// .equ NAME VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		if _, ok := asm.Equate[words[1]]; ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = nil
		return
	}

	for n, word := range words {
		words[n] = asm.equate(word)
	}

	for strings.HasSuffix(words[0], ":") {
		label := strings.TrimSuffix(words[0], ":")
		if _, ok := asm.Label[label]; ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = asm.addr

		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	macro, ok := asm.Macro[words[0]]
	if ok {
		err = asm.expand(words[0], macro, words[1:])
		words = nil
	}

	return
}

// equate substitutes an equate, including inside a memory operand.
func (asm *Assembler) equate(word string) string {
	if value, ok := asm.Equate[word]; ok {
		return value
	}
	if inner, ok := memoryOperand(word); ok {
		if value, ok := asm.Equate[inner]; ok {
			return "[" + value + "]"
		}
	}
	return word
}

// expand assembles the body of a macro invocation.
// Within the body, '@' is replaced by a prefix unique to the invocation
// line, so that macros can define local labels.
func (asm *Assembler) expand(name string, macro *Macro, args []string) (err error) {
	if len(args) != len(macro.Args) {
		err = ErrMacroSyntax
		return
	}

	saved := maps.Clone(asm.Equate)
	defer func() { asm.Equate = saved }()
	for n, arg := range macro.Args {
		asm.Equate[arg] = args[n]
	}

	unique := fmt.Sprintf("%v_%v_", name, asm.Equate["LINENO"])
	for n, line := range macro.Lines {
		lineno := macro.LineNo + n
		line = strings.ReplaceAll(line, "@", unique)

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err == nil {
			err = asm.parseWords(words, lineno)
		}
		if err != nil {
			err = &ErrMacro{Macro: name, Line: lineno, Err: err}
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			return
		}
	}

	return
}

// reset clears the assembler state for a new Parse.
func (asm *Assembler) reset() {
	asm.Opcode = asm.Opcode[:0]
	asm.addr = 0
	asm.Label = map[string]int{}
	asm.Macro = map[string](*Macro){}
	asm.Equate = maps.Clone(sysEquate)
	maps.Copy(asm.Equate, asm.predefine)
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.reset()

	for scanner.Scan() {
		text := scanner.Text()
		lineno++

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line, _, _ = strings.Cut(text, ";")
		line = strings.TrimSpace(line)
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			if _, ok := asm.Macro[words[1]]; ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
				Args:   words[2:],
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	err = asm.link(&lineno, &line)
	if err != nil {
		return
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// link patches label references. On failure, lineno and line are set to
// the referencing source line.
func (asm *Assembler) link(lineno *int, line *string) (err error) {
	for n := range asm.Opcode {
		op := &asm.Opcode[n]
		for _, link := range op.Links {
			addr, ok := asm.Label[link.Label]
			if !ok {
				*lineno = op.LineNo
				*line = strings.Join(op.Words, " ")
				err = ErrLabelMissing(link.Label)
				return
			}
			op.Bytes[link.Offset] = uint8(addr)
			op.Bytes[link.Offset+1] = uint8(addr >> 8)
		}
	}

	return
}

// operandKind classifies an instruction operand.
type operandKind int

const (
	OPERAND_REGISTER = operandKind(0) // rN, rbN, rip...
	OPERAND_MEMORY   = operandKind(1) // [rN]
	OPERAND_VALUE    = operandKind(2) // Numeric immediate.
	OPERAND_LABEL    = operandKind(3) // Label, resolved at link time.
)

type operand struct {
	kind  operandKind
	reg   isa.Register
	value int64
	label string
}

func memoryOperand(word string) (inner string, ok bool) {
	if len(word) > 2 && word[0] == '[' && word[len(word)-1] == ']' {
		inner, ok = word[1:len(word)-1], true
	}
	return
}

// operand classifies a single operand word.
func (asm *Assembler) operand(word string) (op operand, err error) {
	if inner, ok := memoryOperand(word); ok {
		var reg isa.Register
		reg, err = isa.ParseRegister(inner)
		if err != nil {
			return
		}
		if reg.Width() != isa.WIDTH_WORD {
			err = ErrWidthMismatch
			return
		}
		op = operand{kind: OPERAND_MEMORY, reg: reg}
		return
	}

	if reg, ok := isa.Registers.Lookup(word); ok {
		op = operand{kind: OPERAND_REGISTER, reg: reg}
		return
	}

	value, err := asm.valueOf(word)
	if err != nil {
		if reLabel.MatchString(word) {
			op = operand{kind: OPERAND_LABEL, label: word}
			err = nil
		}
		return
	}

	op = operand{kind: OPERAND_VALUE, value: value}
	return
}

// immediate converts a numeric operand to a value of width w.
func immediate(value int64, w isa.Width) (v isa.Value, err error) {
	lo, hi := int64(-0x80), int64(0xff)
	if w == isa.WIDTH_WORD {
		lo, hi = -0x8000, 0xffff
	}
	if value < lo || value > hi {
		err = ErrValueRange
		return
	}
	v = isa.ValueOf(w, uint16(value))
	return
}

// arith builds the register/register and constant/register forms of
// mov, add and sub.
type arith struct {
	r2r func(src, dest isa.Register) isa.Instruction
	c2r func(value isa.Value, dest isa.Register) isa.Instruction
}

var arithMap = map[string]arith{
	"mov": {
		r2r: func(src, dest isa.Register) isa.Instruction { return isa.MovR2R{Src: src, Dest: dest} },
		c2r: func(value isa.Value, dest isa.Register) isa.Instruction { return isa.MovC2R{Value: value, Dest: dest} },
	},
	"add": {
		r2r: func(src, dest isa.Register) isa.Instruction { return isa.AddR2R{Src: src, Dest: dest} },
		c2r: func(value isa.Value, dest isa.Register) isa.Instruction { return isa.AddC2R{Value: value, Dest: dest} },
	},
	"sub": {
		r2r: func(src, dest isa.Register) isa.Instruction { return isa.SubR2R{Src: src, Dest: dest} },
		c2r: func(value isa.Value, dest isa.Register) isa.Instruction { return isa.SubC2R{Value: value, Dest: dest} },
	},
}

// instruction assembles a mnemonic and its operands.
// If the instruction refers to a label, it is returned in label, and the
// instruction's immediate is left as zero.
func (asm *Assembler) instruction(mnemonic string, words []string) (inst isa.Instruction, label string, err error) {
	var args []operand
	for _, word := range words {
		var op operand
		op, err = asm.operand(word)
		if err != nil {
			return
		}
		args = append(args, op)
	}

	need := 2
	switch mnemonic {
	case "nop":
		need = 0
	case "ajmp", "jmp":
		need = 1
	case "mov", "add", "sub":
	default:
		err = ErrInstructionInvalid
		return
	}

	if len(args) < need {
		err = ErrOpcodeMissing
		return
	}
	if len(args) > need {
		err = ErrOpcodeExtraArgs
		return
	}

	switch mnemonic {
	case "nop":
		inst = isa.Nop{}
		return
	case "ajmp", "jmp":
		target := args[0]
		if target.kind != OPERAND_REGISTER || target.reg.Width() != isa.WIDTH_WORD {
			err = ErrTargetInvalid
			return
		}
		if mnemonic == "ajmp" {
			inst = isa.AJmp{Target: target.reg}
		} else {
			inst = isa.Jmp{Target: target.reg}
		}
		return
	}

	src, dest := args[0], args[1]
	form := arithMap[mnemonic]

	switch {
	case dest.kind == OPERAND_MEMORY && mnemonic == "mov":
		if src.kind != OPERAND_REGISTER {
			err = ErrTargetInvalid
			return
		}
		if src.reg.Width() != isa.WIDTH_BYTE {
			err = ErrWidthMismatch
			return
		}
		inst = isa.MovR2M{Src: src.reg, Addr: dest.reg}
	case dest.kind != OPERAND_REGISTER:
		err = ErrTargetInvalid
	case src.kind == OPERAND_MEMORY && mnemonic == "mov":
		if dest.reg.Width() != isa.WIDTH_BYTE {
			err = ErrWidthMismatch
			return
		}
		inst = isa.MovM2R{Addr: src.reg, Dest: dest.reg}
	case src.kind == OPERAND_REGISTER:
		if src.reg.Width() != dest.reg.Width() {
			err = ErrWidthMismatch
			return
		}
		inst = form.r2r(src.reg, dest.reg)
	case src.kind == OPERAND_VALUE:
		var value isa.Value
		value, err = immediate(src.value, dest.reg.Width())
		if err != nil {
			return
		}
		inst = form.c2r(value, dest.reg)
	case src.kind == OPERAND_LABEL:
		if dest.reg.Width() != isa.WIDTH_WORD {
			err = ErrWidthMismatch
			return
		}
		inst = form.c2r(isa.Word(0), dest.reg)
		label = src.label
	default:
		err = ErrTargetInvalid
	}

	return
}

// data assembles the arguments of .db and .dw.
func (asm *Assembler) data(w isa.Width, words []string) (data []byte, links []Link, err error) {
	if len(words) == 0 {
		err = ErrDirectiveSyntax
		return
	}

	for _, word := range words {
		var op operand
		op, err = asm.operand(word)
		if err != nil {
			return
		}
		switch {
		case op.kind == OPERAND_VALUE:
			var value isa.Value
			value, err = immediate(op.value, w)
			if err != nil {
				return
			}
			data = append(data, value.Encode()...)
		case op.kind == OPERAND_LABEL && w == isa.WIDTH_WORD:
			links = append(links, Link{Offset: len(data), Label: op.label})
			data = append(data, 0, 0)
		default:
			err = ErrDirectiveSyntax
			return
		}
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var data []byte
	var links []Link

	// no-op
	if len(words) == 0 {
		return
	}

	defer func() {
		if err != nil || len(data) == 0 {
			return
		}
		if asm.addr+len(data) > ADDRESS_SPACE {
			err = ErrValueRange
			return
		}
		opcode := Opcode{LineNo: lineno, Addr: asm.addr, Words: words, Bytes: data, Links: links}
		asm.Opcode = append(asm.Opcode, opcode)
		asm.addr += len(data)
	}()

	switch words[0] {
	case ".org":
		if len(words) != 2 {
			err = ErrDirectiveSyntax
			return
		}
		var addr int64
		addr, err = asm.valueOf(words[1])
		if err != nil {
			return
		}
		if addr < 0 {
			err = ErrValueRange
			return
		}
		asm.addr = int(addr)
	case ".db":
		data, links, err = asm.data(isa.WIDTH_BYTE, words[1:])
	case ".dw":
		data, links, err = asm.data(isa.WIDTH_WORD, words[1:])
	default:
		var inst isa.Instruction
		var label string
		inst, label, err = asm.instruction(strings.ToLower(words[0]), words[1:])
		if err != nil {
			return
		}
		data = inst.Encode()
		if len(label) > 0 {
			// The word immediate follows the opcode and selector.
			links = []Link{{Offset: 2, Label: label}}
		}
	}

	return
}
