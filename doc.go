// Copyright (C) 2024 J. M. Turner. All Rights Reserved.

// Package jsonval implements a scanner and parser for a restricted JSON
// dialect, producing a dynamic value tree.
//
// # Values
//
// A parsed document is represented as a Value, a sealed union over Null,
// Bool, Int, Dec, String, Array and Object. Object is a plain string-keyed
// map: duplicate keys in the input overwrite earlier ones, and insertion
// order is not preserved. Every Value renders a deterministic textual form
// via its JSON method; object keys are sorted case-insensitively with a
// byte-wise tie break.
//
// # Parsing
//
// Parse consumes an entire text buffer and returns exactly one top-level
// value; trailing non-whitespace content is an error, as is empty input:
//
//	v, err := jsonval.Parse(`{"a": [1, 2.5, true]}`)
//	if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// Errors from parsing have concrete type *jsonval.ParseError. Line and
// column information is off by default; enable it on a Parser instance
// when the cost of position bookkeeping is acceptable:
//
//	p := jsonval.NewParser()
//	p.TrackLines(true)
//	v, err := p.Parse(input) // errors now carry 1-based line and column
//
// A Parser may also be given a go-kit logger with SetLogger; the parser
// then emits one debug-level trace line per recognized token. Tracing is
// purely diagnostic and never affects the parse result.
//
// # Dialect
//
// The grammar is deliberately narrower than RFC 8259 JSON. Numbers reject a
// leading "+", require digits on both sides of a decimal point, and only
// accept an exponent after a fraction, so "1e3" is an error while "1.0e3"
// is not. Leading zeroes are permitted. A number with a fraction or
// exponent parses as Dec (arbitrary-precision decimal); all other numbers
// parse as Int, and integer literals outside the int64 range are errors.
// Comments and trailing commas are not part of the dialect; use
// ParseLenient to normalize hand-edited input before a strict parse.
package jsonval
