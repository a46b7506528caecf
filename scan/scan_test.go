// Copyright (C) 2024 J. M. Turner. All Rights Reserved.

package scan_test

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmturner/jsonval/scan"
)

func scanAll(t *testing.T, input string) ([]scan.Token, error) {
	t.Helper()
	s := scan.New(input)
	var got []scan.Token
	for {
		err := s.Next()
		if err == io.EOF {
			return got, nil
		} else if err != nil {
			return got, err
		}
		got = append(got, s.Token())
	}
}

func TestScanner(t *testing.T) {
	tests := []struct {
		input string
		want  []scan.Token
	}{
		// Empty inputs
		{"", nil},
		{"  ", nil},
		{"\n\n  \n", nil},
		{"\t  \r\n \t  \r\n", nil},

		// Constants
		{"true false null", []scan.Token{scan.True, scan.False, scan.Null}},

		// Punctuation
		{"{ [ ] } , :", []scan.Token{
			scan.LBrace, scan.LSquare, scan.RSquare, scan.RBrace, scan.Comma, scan.Colon,
		}},

		// Strings
		{`"" "a b c" "a\nb\tc"`, []scan.Token{scan.String, scan.String, scan.String}},
		{`"\"\\\/\b\f\n\r\t"`, []scan.Token{scan.String}},
		{`"\u0000\u01fc\uAA9c"`, []scan.Token{scan.String}},

		// Numbers. Note the dialect accepts an exponent only after a
		// fraction, and permits redundant leading zeroes.
		{`0 -1 5139 007 2.3 3.6E4 -0.001E-100 2.5e+9`, []scan.Token{
			scan.Integer, scan.Integer, scan.Integer, scan.Integer,
			scan.Number, scan.Number, scan.Number, scan.Number,
		}},

		// Mixed types
		{`{true,"false":-15 null[]}`, []scan.Token{
			scan.LBrace, scan.True, scan.Comma, scan.String, scan.Colon,
			scan.Integer, scan.Null, scan.LSquare, scan.RSquare, scan.RBrace,
		}},
		{`{"a": true, "b":[null, 1, 0.5]}`, []scan.Token{
			scan.LBrace,
			scan.String, scan.Colon, scan.True, scan.Comma,
			scan.String, scan.Colon,
			scan.LSquare,
			scan.Null, scan.Comma, scan.Integer, scan.Comma, scan.Number,
			scan.RSquare,
			scan.RBrace,
		}},
		{`"a",1,true
       false["b"]
       `, []scan.Token{
			scan.String, scan.Comma, scan.Integer, scan.Comma, scan.True,
			scan.False, scan.LSquare, scan.String, scan.RSquare,
		}},
	}

	for _, test := range tests {
		got, err := scanAll(t, test.input)
		if err != nil {
			t.Errorf("Input: %#q\nNext failed: %v", test.input, err)
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScanner_errors(t *testing.T) {
	tests := []string{
		`+1`,        // leading plus
		`.5`,        // bare decimal point
		`1.`,        // no digits after decimal point
		`0.e3`,      // no digits after decimal point
		`-`,         // sign with no digits
		`1.5e`,      // missing exponent digits
		`1.5e+`,     // missing exponent digits
		`True`,      // constants are case-sensitive
		`hallo`,     // unknown bare word
		`"abc`,      // unterminated string
		`"a\qb"`,    // unknown escape
		`"a\u12"`,   // short Unicode escape
		`"a\u12x4"`, // bad hex digit
		"\"a\tb\"",  // unescaped control
		`@`,         // stray punctuation
	}
	for _, input := range tests {
		if _, err := scanAll(t, input); err == nil {
			t.Errorf("Input: %#q: got nil, want error", input)
		} else {
			var serr *scan.Error
			if !errors.As(err, &serr) {
				t.Errorf("Input: %#q: error is %T, not *scan.Error", input, err)
			}
			t.Logf("Input %#q: got expected error: %v", input, err)
		}
	}
}

func TestScanner_text(t *testing.T) {
	s := scan.New(` {"key": -12.5}`)
	want := []struct {
		tok  scan.Token
		text string
	}{
		{scan.LBrace, "{"},
		{scan.String, `"key"`},
		{scan.Colon, ":"},
		{scan.Number, "-12.5"},
		{scan.RBrace, "}"},
	}
	for _, w := range want {
		if err := s.Next(); err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if s.Token() != w.tok {
			t.Errorf("Token: got %v, want %v", s.Token(), w.tok)
		}
		if got := string(s.Text()); got != w.text {
			t.Errorf("Text: got %#q, want %#q", got, w.text)
		}
	}
	if err := s.Next(); err != io.EOF {
		t.Errorf("Next at end: got %v, want io.EOF", err)
	}
}

func TestScanner_location(t *testing.T) {
	type tokPos struct {
		Tok  scan.Token
		Line int
		Col  int
	}
	tests := []struct {
		input string
		want  []tokPos
	}{
		{"", nil},
		{"{ }", []tokPos{{scan.LBrace, 1, 1}, {scan.RBrace, 1, 3}}},
		{"true\n false\n", []tokPos{{scan.True, 1, 1}, {scan.False, 2, 2}}},
		{"[1,\n 22,\n  333]", []tokPos{
			{scan.LSquare, 1, 1}, {scan.Integer, 1, 2}, {scan.Comma, 1, 3},
			{scan.Integer, 2, 2}, {scan.Comma, 2, 4},
			{scan.Integer, 3, 3}, {scan.RSquare, 3, 6},
		}},
	}
	for _, tc := range tests {
		var got []tokPos
		s := scan.New(tc.input)
		s.TrackLines(true)
		for s.Next() == nil {
			line, col := s.Location()
			got = append(got, tokPos{s.Token(), line, col})
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", tc.input, diff)
		}
	}
}

func TestScanner_locationDisabled(t *testing.T) {
	s := scan.New("\n\n   hallo")
	err := s.Next()
	if err == nil {
		t.Fatal("Next: got nil, want error")
	}
	var serr *scan.Error
	if !errors.As(err, &serr) {
		t.Fatalf("Next: error is %T, not *scan.Error", err)
	}
	if serr.Line != 0 || serr.Column != 0 {
		t.Errorf("Position: got %d:%d, want 0:0", serr.Line, serr.Column)
	}
}
