package debugger

import (
	"strconv"
	"strings"
	"text/scanner"

	"github.com/ezrec/smplvm/isa"
)

// TokenKind classifies a command token: an identifier, an unsigned
// integer, or anything else.
type TokenKind int

//go:generate go tool stringer -linecomment -type=TokenKind
const (
	TOKEN_OTHER  = TokenKind(0) // other
	TOKEN_IDENT  = TokenKind(1) // ident
	TOKEN_NUMBER = TokenKind(2) // number
)

// Token is a lexical element of a command line.
type Token struct {
	Kind   TokenKind
	Text   string
	Number uint64 // TOKEN_NUMBER only.
}

func (tok Token) String() string {
	return tok.Text
}

// Tokenize splits a command line into tokens.
// Numbers may be decimal, or prefixed with 0x, 0o or 0b. A malformed or
// out of range number is returned as TOKEN_OTHER.
func Tokenize(line string) (tokens []Token) {
	var s scanner.Scanner
	s.Init(strings.NewReader(line))
	s.Mode = scanner.ScanIdents | scanner.ScanInts
	s.Error = func(*scanner.Scanner, string) {}

	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		token := Token{Kind: TOKEN_OTHER, Text: s.TokenText()}
		switch tok {
		case scanner.Ident:
			token.Kind = TOKEN_IDENT
		case scanner.Int:
			n, err := strconv.ParseUint(token.Text, 0, 64)
			if err == nil {
				token.Kind = TOKEN_NUMBER
				token.Number = n
			}
		}
		tokens = append(tokens, token)
	}

	return
}

// ScanState is the outcome of scanning a token sequence.
//
// SCAN_REJECTED means no command matches, SCAN_MATCHED is a complete
// command, and SCAN_NEEDS_MORE is a valid prefix that needs more tokens.
type ScanState int

//go:generate go tool stringer -linecomment -type=ScanState
const (
	SCAN_REJECTED   = ScanState(0) // rejected
	SCAN_MATCHED    = ScanState(1) // matched
	SCAN_NEEDS_MORE = ScanState(2) // needs-more
)

// scanAction is what a pattern says about a token prefix.
type scanAction int

const (
	ACTION_NONE    = scanAction(0) // Prefix matches nothing.
	ACTION_RETURN  = scanAction(1) // Complete; no more tokens allowed.
	ACTION_REQUEST = scanAction(2) // Complete, but more tokens may follow.
	ACTION_REQUIRE = scanAction(3) // Incomplete; more tokens must follow.
)

// Scan matches tokens against the command patterns, one prefix at a time.
func Scan(tokens []Token, regs isa.RegisterSet) (cmd Cmd, state ScanState) {
	for n := 1; n <= len(tokens); n++ {
		last := n == len(tokens)
		action, found := match(tokens[:n], regs)
		switch action {
		case ACTION_RETURN:
			if last {
				cmd, state = found, SCAN_MATCHED
			}
			return
		case ACTION_REQUEST:
			if last {
				cmd, state = found, SCAN_MATCHED
				return
			}
		case ACTION_REQUIRE:
			if last {
				state = SCAN_NEEDS_MORE
				return
			}
		default:
			return
		}
	}

	return
}

// match classifies a token prefix.
func match(toks []Token, regs isa.RegisterSet) (action scanAction, cmd Cmd) {
	if toks[0].Kind != TOKEN_IDENT {
		return
	}
	word := toks[0].Text

	isGet := word == "g" || word == "get"
	isSet := word == "s" || word == "set"

	switch len(toks) {
	case 1:
		switch word {
		case "s", "step":
			action, cmd = ACTION_REQUEST, CmdStep
		case "c", "cont", "continue":
			action, cmd = ACTION_RETURN, CmdContinue
		case "g", "get", "set":
			action = ACTION_REQUIRE
		}
	case 2:
		if toks[1].Kind == TOKEN_NUMBER {
			switch {
			case isGet:
				action, cmd = ACTION_RETURN, CmdGetAddr(uint16(toks[1].Number))
			case isSet:
				action = ACTION_REQUIRE
			}
		} else if reg, ok := lookup(toks[1], regs); ok {
			switch {
			case isGet:
				action, cmd = ACTION_RETURN, CmdGetReg(reg)
			case isSet:
				action = ACTION_REQUIRE
			}
		}
	case 3:
		if !isSet || toks[2].Kind != TOKEN_NUMBER {
			return
		}
		value := toks[2].Number
		if toks[1].Kind == TOKEN_NUMBER {
			action, cmd = ACTION_RETURN, CmdSetAddr(uint16(toks[1].Number), uint8(value))
		} else if reg, ok := lookup(toks[1], regs); ok {
			action, cmd = ACTION_RETURN, CmdSetReg(reg, uint16(value))
		}
	}

	return
}

func lookup(tok Token, regs isa.RegisterSet) (reg isa.Register, ok bool) {
	if tok.Kind != TOKEN_IDENT {
		return
	}
	return regs.Lookup(tok.Text)
}

// Parse parses a command line.
//
// An empty line repeats last, if there is one. A valid but incomplete
// command returns ErrIncomplete; anything else that does not match returns
// ErrSyntax.
func Parse(line string, last *Cmd, regs isa.RegisterSet) (cmd Cmd, err error) {
	tokens := Tokenize(line)
	if len(tokens) == 0 {
		if last == nil {
			err = ErrEmpty
			return
		}
		cmd = *last
		return
	}

	cmd, state := Scan(tokens, regs)
	switch state {
	case SCAN_MATCHED:
	case SCAN_NEEDS_MORE:
		err = ErrIncomplete
	default:
		err = &ErrCommand{Line: strings.TrimSpace(line), Err: ErrSyntax}
	}

	return
}
