package assembler

import (
	"fmt"
	"strconv"

	"github.com/cdebost/nesem/internal/isa"
)

func (s *scanner) errorf(line int, format string, args ...any) error {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// scanner tokenizes one line at a time of the assembly dialect:
// mnemonics, identifiers, hex literals, and the handful of punctuation
// the grammar needs for indirection and indexing.
type scanner struct {
	src  []byte
	pos  int
	line int

	mnemonics map[string]bool
}

func newScanner(src string) *scanner {
	mnemonics := make(map[string]bool)
	for i := range isa.Table {
		mnemonics[isa.Table[i].Mnemonic] = true
	}
	return &scanner{src: []byte(src), line: 1, mnemonics: mnemonics}
}

func (s *scanner) peekByte() byte {
	if s.pos >= len(s.src) {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) next() (token, error) {
	for s.pos < len(s.src) && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t' || s.src[s.pos] == '\r') {
		s.pos++
	}
	if s.pos >= len(s.src) {
		return token{typ: tokEOF, line: s.line}, nil
	}

	line := s.line
	c := s.src[s.pos]

	switch {
	case c == '\n':
		s.pos++
		s.line++
		return token{typ: tokEOL, line: line}, nil
	case c == ';':
		for s.pos < len(s.src) && s.src[s.pos] != '\n' {
			s.pos++
		}
		return s.next()
	case isAlpha(c):
		start := s.pos
		for s.pos < len(s.src) && isAlnum(s.src[s.pos]) {
			s.pos++
		}
		text := string(s.src[start:s.pos])
		if s.peekByte() == ':' {
			s.pos++
			return token{typ: tokLabel, text: text, line: line}, nil
		}
		if s.mnemonics[text] {
			return token{typ: tokMnemonic, text: text, line: line}, nil
		}
		return token{typ: tokIdent, text: text, line: line}, nil
	case c == '#':
		s.pos++
		return token{typ: tokPound, line: line}, nil
	case c == '$':
		s.pos++
		start := s.pos
		for s.pos < len(s.src) && isHexDigit(s.src[s.pos]) {
			s.pos++
		}
		digits := string(s.src[start:s.pos])
		switch len(digits) {
		case 2:
			v, err := strconv.ParseUint(digits, 16, 8)
			if err != nil {
				return token{}, s.errorf(line, "invalid hex literal $%s", digits)
			}
			return token{typ: tokHex8, u8: uint8(v), line: line}, nil
		case 4:
			v, err := strconv.ParseUint(digits, 16, 16)
			if err != nil {
				return token{}, s.errorf(line, "invalid hex literal $%s", digits)
			}
			return token{typ: tokHex16, u16: uint16(v), line: line}, nil
		default:
			return token{}, s.errorf(line, "hex literal $%s must have 2 or 4 digits", digits)
		}
	case c == ',':
		s.pos++
		reg := s.peekByte()
		if reg != 'X' && reg != 'x' && reg != 'Y' && reg != 'y' {
			return token{}, s.errorf(line, "expected X or Y after ','")
		}
		s.pos++
		if reg == 'X' || reg == 'x' {
			return token{typ: tokIndexX, line: line}, nil
		}
		return token{typ: tokIndexY, line: line}, nil
	case c == '(':
		s.pos++
		return token{typ: tokParenOpen, line: line}, nil
	case c == ')':
		s.pos++
		return token{typ: tokParenClose, line: line}, nil
	default:
		return token{}, s.errorf(line, "unexpected character %q", c)
	}
}

func isAlpha(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c == '_'
}

func isAlnum(c byte) bool { return isAlpha(c) || c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
