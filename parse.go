// Copyright (C) 2024 J. M. Turner. All Rights Reserved.

package jsonval

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/shopspring/decimal"

	"github.com/jmturner/jsonval/scan"
)

// ParseError is the concrete type of errors reported by Parse. Line and
// Column are 1-based when line tracking is enabled on the parser, and zero
// otherwise.
type ParseError struct {
	Message string
	Line    int
	Column  int

	err error
}

// Error satisfies the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("at %d:%d: %s", e.Line, e.Column, e.Message)
	}
	return e.Message
}

// Unwrap supports error wrapping.
func (e *ParseError) Unwrap() error { return e.err }

// A Parser converts source text into a Value. A zero-configured Parser
// tracks no positions and logs nothing; use TrackLines and SetLogger to
// change that. A Parser must not be shared by concurrent Parse calls;
// parsers are cheap, construct one per goroutine.
type Parser struct {
	track  bool
	logger log.Logger
}

// NewParser constructs a new Parser with position tracking disabled and a
// no-op logger.
func NewParser() *Parser { return &Parser{logger: log.NewNopLogger()} }

// TrackLines configures the parser to record (true) or skip (false) line
// and column information. Tracking costs a per-byte bookkeeping step;
// when disabled, errors report line 0, column 0.
func (p *Parser) TrackLines(ok bool) { p.track = ok }

// SetLogger sets the diagnostic sink for token traces. The parser emits
// one debug-level line per recognized token. A nil logger disables
// tracing. Tracing never affects the parse result.
func (p *Parser) SetLogger(logger log.Logger) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	p.logger = logger
}

// Parse parses text with a default parser: no position tracking, no
// tracing. In case of error the returned error has concrete type
// [*ParseError].
func Parse(text string) (Value, error) { return NewParser().Parse(text) }

// Parse parses and returns the single top-level value in text. Empty
// input, malformed input, and trailing non-whitespace content after the
// value are all errors of concrete type [*ParseError].
func (p *Parser) Parse(text string) (v Value, err error) {
	defer p.recoverParseError(&err)

	s := scan.New(text)
	s.TrackLines(p.track)

	p.advanceOrEOF(s, "empty input")
	v = p.parseValue(s)

	if err := s.Next(); err == nil {
		p.trace(s)
		p.syntaxError(s, nil, "unexpected %v after value", s.Token())
	} else if err != io.EOF {
		panic(scanError(err))
	}
	return v, nil
}

func (p *Parser) recoverParseError(errp *error) {
	if serr := recover(); serr != nil {
		if perr, ok := serr.(*ParseError); ok {
			*errp = perr
			return
		}
		panic(serr)
	}
}

// parseValue consumes a single value of any type.
// Precondition: the scanner is positioned on the first token of the value.
func (p *Parser) parseValue(s *scan.Scanner) Value {
	switch tok := s.Token(); tok {
	case scan.LBrace:
		return p.parseObject(s)
	case scan.LSquare:
		return p.parseArray(s)
	case scan.String:
		dec, err := Unquote(s.Text())
		if err != nil {
			p.syntaxError(s, err, "invalid string: %v", err)
		}
		return String(dec)
	case scan.Integer:
		z, err := strconv.ParseInt(string(s.Text()), 10, 64)
		if err != nil {
			p.syntaxError(s, err, "integer %s out of range", s.Text())
		}
		return Int(z)
	case scan.Number:
		d, err := decimal.NewFromString(string(s.Text()))
		if err != nil {
			p.syntaxError(s, err, "invalid number %s", s.Text())
		}
		return Dec{d}
	case scan.True:
		return Bool(true)
	case scan.False:
		return Bool(false)
	case scan.Null:
		return Null
	default:
		p.syntaxError(s, nil, "unexpected %v", tok)
		panic("unreachable")
	}
}

// parseObject consumes zero or more key:value members and the closing
// brace. Duplicate keys overwrite earlier ones.
// Precondition: token == LBrace.
func (p *Parser) parseObject(s *scan.Scanner) Value {
	obj := Object{}
	if tok := p.advance(s, scan.RBrace, scan.String); tok == scan.RBrace {
		return obj // end of object
	}
	for {
		key, err := Unquote(s.Text())
		if err != nil {
			p.syntaxError(s, err, "invalid object key: %v", err)
		}
		p.advance(s, scan.Colon)
		p.advance(s)
		obj[string(key)] = p.parseValue(s)

		// Check whether we have more members (",") or are done ("}").
		if tok := p.advance(s, scan.RBrace, scan.Comma); tok == scan.RBrace {
			return obj // end of object
		}
		p.advance(s, scan.String) // advance to next key
	}
}

// parseArray consumes zero or more comma-separated values and the closing
// bracket.
// Precondition: token == LSquare.
func (p *Parser) parseArray(s *scan.Scanner) Value {
	arr := Array{}
	if tok := p.advance(s); tok == scan.RSquare {
		return arr // end of array
	}
	for {
		arr = append(arr, p.parseValue(s))
		if tok := p.advance(s, scan.RSquare, scan.Comma); tok == scan.RSquare {
			return arr // end of array
		}
		p.advance(s)
	}
}

// advance moves the scanner to the next token and, if tokens is nonempty,
// requires the token to be one of them. It panics with a *ParseError on
// any violation; Parse recovers the panic.
func (p *Parser) advance(s *scan.Scanner, tokens ...scan.Token) scan.Token {
	if err := s.Next(); err == io.EOF {
		p.syntaxError(s, nil, "%s", tokLabel(tokens, "end of input"))
	} else if err != nil {
		panic(scanError(err))
	}
	p.trace(s)
	tok := s.Token()
	if len(tokens) != 0 && !slices.Contains(tokens, tok) {
		p.syntaxError(s, nil, "%s", tokLabel(tokens, tok))
	}
	return tok
}

// advanceOrEOF is advance for the first token of the input, where the end
// of input gets a dedicated message.
func (p *Parser) advanceOrEOF(s *scan.Scanner, eofMsg string) {
	if err := s.Next(); err == io.EOF {
		panic(&ParseError{Message: eofMsg})
	} else if err != nil {
		panic(scanError(err))
	}
	p.trace(s)
}

func (p *Parser) syntaxError(s *scan.Scanner, err error, msg string, args ...any) {
	line, col := s.Location()
	panic(&ParseError{
		Message: fmt.Sprintf(msg, args...),
		Line:    line,
		Column:  col,
		err:     err,
	})
}

// scanError converts a lexical error to a *ParseError.
func scanError(err error) *ParseError {
	if serr, ok := err.(*scan.Error); ok {
		return &ParseError{Message: serr.Message, Line: serr.Line, Column: serr.Column, err: serr}
	}
	return &ParseError{Message: err.Error(), err: err}
}

func (p *Parser) trace(s *scan.Scanner) {
	line, col := s.Location()
	level.Debug(p.logger).Log(
		"msg", "token",
		"tok", s.Token().String(),
		"text", string(s.Text()),
		"line", line,
		"col", col,
	)
}

// tokLabel makes a human-readable summary string for the given token types.
func tokLabel(tokens []scan.Token, got any) string {
	if len(tokens) == 0 {
		return fmt.Sprintf("unexpected %v", got)
	}
	var exp string
	if len(tokens) == 1 {
		exp = tokens[0].String()
	} else {
		last := len(tokens) - 1
		ss := make([]string, last)
		for i, tok := range tokens[:last] {
			ss[i] = tok.String()
		}
		exp = strings.Join(ss, ", ") + " or " + tokens[last].String()
	}
	return fmt.Sprintf("expected %s, got %v", exp, got)
}
