// Copyright (C) 2024 J. M. Turner. All Rights Reserved.

// Package scan implements a lexical scanner for a restricted JSON dialect.
package scan

import (
	"fmt"
	"io"

	"go4.org/mem"
)

// Token is the type of a lexical token in the dialect grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Integer: "integer",
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// An Error is a lexical error, with the position of the offending token
// when position tracking is enabled.
type Error struct {
	Message string
	Line    int // 1-based, 0 when tracking is disabled
	Column  int // 1-based, 0 when tracking is disabled
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("at %d:%d: %s", e.Line, e.Column, e.Message)
	}
	return e.Message
}

// A Scanner reads lexical tokens from an in-memory text buffer. Each call
// to Next advances the scanner to the next token, or reports an error.
// A Scanner must not be shared by concurrent calls; construct one per
// parse, it is cheap.
type Scanner struct {
	in    mem.RO
	pos   int // offset of the next unread byte
	start int // start offset of the current token
	end   int // end offset of the current token (noninclusive)
	last  int // size in bytes of the last read, for unread
	tok   Token

	// Line and column bookkeeping, maintained only when track is set.
	// Both are 1-based; zero means the position is unknown.
	track       bool
	line, col   int // position of the next unread byte
	sline, scol int // position of the current token start
}

// New constructs a new lexical scanner that consumes input from text.
// Position tracking is disabled by default; see TrackLines.
func New(text string) *Scanner { return &Scanner{in: mem.S(text)} }

// TrackLines configures the scanner to maintain (true) or skip (false)
// line and column bookkeeping. When disabled, token locations report 0,0.
func (s *Scanner) TrackLines(ok bool) {
	s.track = ok
	if ok && s.line == 0 {
		s.line, s.col = 1, 1
	}
}

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF. Lexical errors have
// concrete type [*Error].
func (s *Scanner) Next() error {
	s.tok = Invalid
	for {
		ch, ok := s.byte()
		if !ok {
			return io.EOF
		}

		// Discard whitespace.
		if isSpace(ch) {
			if s.track && ch == '\n' {
				s.line++
				s.col = 1
			}
			continue
		}

		s.start = s.pos - 1
		if s.track {
			s.sline, s.scol = s.line, s.col-1
		}

		var err error
		switch {
		case ch == '{':
			s.tok = LBrace
		case ch == '}':
			s.tok = RBrace
		case ch == '[':
			s.tok = LSquare
		case ch == ']':
			s.tok = RSquare
		case ch == ',':
			s.tok = Comma
		case ch == ':':
			s.tok = Colon
		case isNumStart(ch):
			err = s.scanNumber(ch)
		case ch == '"':
			err = s.scanString()
		case ch >= 'a' && ch <= 'z':
			err = s.scanConstant()
		default:
			err = s.failf("unexpected %q", rune(ch))
		}
		if err != nil {
			return err
		}
		s.end = s.pos
		return nil
	}
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Text returns a copy of the undecoded text of the current token. String
// tokens include their enclosing quotation marks.
func (s *Scanner) Text() []byte {
	return []byte(s.in.SliceTo(s.end).SliceFrom(s.start).StringCopy())
}

// Location returns the line and column of the start of the current token.
// Both are 1-based when tracking is enabled, and zero otherwise.
func (s *Scanner) Location() (line, col int) { return s.sline, s.scol }

func (s *Scanner) byte() (byte, bool) {
	if s.pos >= s.in.Len() {
		s.last = 0
		return 0, false
	}
	b := s.in.At(s.pos)
	s.pos++
	if s.track {
		s.col++
	}
	s.last = 1
	return b, true
}

func (s *Scanner) unbyte() {
	s.pos -= s.last
	if s.track {
		s.col -= s.last
	}
	s.last = 0
}

// require reads a single byte matching f from the input, or reports an
// error mentioning the desired label.
func (s *Scanner) require(f func(byte) bool, label string) (byte, error) {
	ch, ok := s.byte()
	if !ok {
		return 0, s.failf("want %s, got end of input", label)
	} else if !f(ch) {
		s.unbyte()
		return 0, s.failf("got %q, want %s", rune(ch), label)
	}
	return ch, nil
}

// readWhile consumes bytes matching f from the input until the end of
// input or until a byte not matching f is found, and reports how many
// bytes were consumed. The first non-matching byte (if any) is left
// unread.
func (s *Scanner) readWhile(f func(byte) bool) int {
	var n int
	for {
		ch, ok := s.byte()
		if !ok {
			return n
		} else if !f(ch) {
			s.unbyte()
			return n
		}
		n++
	}
}

func (s *Scanner) scanString() error {
	for {
		ch, ok := s.byte()
		if !ok {
			return s.failf("unterminated string")
		}
		switch {
		case ch == '"':
			s.tok = String
			return nil
		case ch == '\\':
			esc, ok := s.byte()
			if !ok {
				return s.failf("unterminated string")
			}
			switch esc {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				// ok
			case 'u':
				if err := s.readHex4(); err != nil {
					return err
				}
			default:
				return s.failf("invalid %q after escape", rune(esc))
			}
		case ch < ' ':
			return s.failf("unescaped control %q", rune(ch))
		}
	}
}

// scanNumber consumes the remainder of a number whose first byte is start.
// The grammar is:
//
//	-? digit+ ( "." digit+ ( [eE] [+-]? digit+ )? )?
//
// An exponent is only recognized after a fraction, and a leading "+" is
// never part of a number.
func (s *Scanner) scanNumber(start byte) error {
	if start == '-' {
		// If there is a leading sign, we need at least one digit.
		// Otherwise, we already have one in start.
		if _, err := s.require(isDigit, "digit"); err != nil {
			return err
		}
	}

	// Consume the remainder of the integer part.
	s.readWhile(isDigit)

	ch, ok := s.byte()
	if !ok || ch != '.' {
		if ok {
			s.unbyte()
		}
		s.tok = Integer
		return nil
	}

	// A decimal point: consume the fractional part.
	if n := s.readWhile(isDigit); n == 0 {
		return s.failf("no digits after decimal point")
	}

	ch, ok = s.byte()
	if !ok || (ch != 'e' && ch != 'E') {
		if ok {
			s.unbyte()
		}
		s.tok = Number
		return nil
	}

	// An exponent: an optional sign, then at least one digit.
	ch, ok = s.byte()
	if ok && (ch == '+' || ch == '-') {
		ch, ok = s.byte()
	}
	if !ok || !isDigit(ch) {
		if ok {
			s.unbyte()
		}
		return s.failf("missing exponent digits")
	}
	s.readWhile(isDigit)
	s.tok = Number
	return nil
}

// scanConstant consumes the remainder of a bare word and checks it against
// the constants of the grammar. The match is case-sensitive; any other
// word is an error.
func (s *Scanner) scanConstant() error {
	s.readWhile(isNameByte)
	word := s.in.SliceTo(s.pos).SliceFrom(s.start)
	switch {
	case word.EqualString("true"):
		s.tok = True
	case word.EqualString("false"):
		s.tok = False
	case word.EqualString("null"):
		s.tok = Null
	default:
		return s.failf("unknown constant %q", word.StringCopy())
	}
	return nil
}

// readHex4 reads exactly 4 hexadecimal digits from the input.
func (s *Scanner) readHex4() error {
	for range 4 {
		ch, ok := s.byte()
		if !ok {
			return s.failf("unterminated string")
		} else if !isHexDigit(ch) {
			return s.failf("invalid Unicode escape: not a hex digit: %q", rune(ch))
		}
	}
	return nil
}

func (s *Scanner) failf(msg string, args ...any) error {
	return &Error{
		Message: fmt.Sprintf(msg, args...),
		Line:    s.sline,
		Column:  s.scol,
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isNumStart(ch byte) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch byte) bool    { return '0' <= ch && ch <= '9' }
func isNameByte(ch byte) bool { return ch >= 'a' && ch <= 'z' }

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
