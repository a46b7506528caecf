// Copyright (C) 2024 J. M. Turner. All Rights Reserved.

package bind_test

import (
	"testing"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/jmturner/jsonval"
	"github.com/jmturner/jsonval/bind"
)

func TestMarshal(t *testing.T) {
	sptr := func(s string) *string { return &s }
	tests := []struct {
		input any
		want  string
	}{
		{nil, "null"},
		{true, "true"},
		{false, "false"},
		{0, "0"},
		{-42, "-42"},
		{uint16(9), "9"},
		{"hi there", `"hi there"`},
		{"", `""`},
		{2.5, "2.5"},
		{float32(0.25), "0.25"},

		// Floats never use exponent notation.
		{1e6, "1000000"},
		{1e-4, "0.0001"},

		{decimal.NewFromFloat(1.375), "1.375"},

		{[]int{1, 2, 3}, "[1,2,3]"},
		{[]int{}, "[]"},
		{[]int(nil), "null"},
		{[2]string{"a", "b"}, `["a","b"]`},
		{[]any{1, "x", nil}, `[1,"x",null]`},

		{sptr("deref"), `"deref"`},
		{(*string)(nil), "null"},

		// Unsupported kinds encode as null.
		{make(chan int), "null"},
		{func() {}, "null"},
		{complex(1, 2), "null"},

		// Values render through their own JSON form.
		{jsonval.Int(7), "7"},
		{jsonval.Array{jsonval.Null, jsonval.Bool(true)}, "[null,true]"},
	}
	for _, test := range tests {
		if got := bind.Marshal(test.input); got != test.want {
			t.Errorf("Marshal(%+v): got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestMarshal_structs(t *testing.T) {
	tests := []struct {
		input any
		want  string
	}{
		// Members are emitted sorted byte-wise by external name, and
		// zero-valued members are suppressed.
		{testRecord{}, "{}"},
		{testRecord{Name: "a", Count: 2, OK: true}, `{"Count":2,"Name":"a","OK":true}`},
		{testRecord{Labeled: "x", Ratio: 0.5}, `{"Ratio":0.5,"label":"x"}`},
		{testRecord{Tags: []string{"t"}}, `{"Tags":["t"]}`},
		{testRecord{Sub: &testRecord{Count: 1}}, `{"Sub":{"Count":1}}`},

		// A one-element slice stays a list; only decoding is lenient
		// about scalars.
		{testRecord{Tags: []string{"only"}}, `{"Tags":["only"]}`},
	}
	for _, test := range tests {
		if got := bind.Marshal(test.input); got != test.want {
			t.Errorf("Marshal(%+v): got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestMarshal_maps(t *testing.T) {
	tests := []struct {
		input any
		want  string
	}{
		{map[string]int{}, "{}"},
		{map[string]int(nil), "null"},

		// Keys sort case-insensitively with a byte-wise tie break.
		{map[string]int{"b": 2, "A": 1}, `{"A":1,"b":2}`},
		{map[string]int{"aB": 2, "AB": 1, "ab": 3}, `{"AB":1,"aB":2,"ab":3}`},

		// Zero-valued map entries are kept; suppression is for struct
		// members only.
		{map[string]int{"z": 0}, `{"z":0}`},
		{map[string]any{"n": nil}, `{"n":null}`},

		// Non-string keys are unsupported.
		{map[int]int{1: 1}, "null"},
	}
	for _, test := range tests {
		if got := bind.Marshal(test.input); got != test.want {
			t.Errorf("Marshal(%+v): got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestMarshal_defaults(t *testing.T) {
	type dcfg struct {
		Rate  float64 `default:"2.5"`
		Limit int     `default:"100"`
	}
	tests := []struct {
		input dcfg
		want  string
	}{
		// A member equal to its declared default is suppressed.
		{dcfg{Rate: 2.5, Limit: 100}, "{}"},
		{dcfg{Rate: 2.5, Limit: 7}, `{"Limit":7}`},

		// With a default declared, the zero value is no longer the
		// suppression point and is emitted explicitly.
		{dcfg{Rate: 0, Limit: 0}, `{"Limit":0,"Rate":0}`},
	}
	for _, test := range tests {
		if got := bind.Marshal(test.input); got != test.want {
			t.Errorf("Marshal(%+v): got %#q, want %#q", test.input, got, test.want)
		}
	}
}

// TestMarshal_wellFormed checks the output against an independent JSON
// decoder. The dialect is a subset of JSON, so every rendering must be
// accepted by a standard decoder with the same meaning.
func TestMarshal_wellFormed(t *testing.T) {
	input := testRecord{
		Name:  "check \"quotes\" and \\slashes\\",
		Count: 12,
		Ratio: 0.125,
		Tags:  []string{"x", "y"},
		Sub:   &testRecord{OK: true},
	}
	text := bind.Marshal(input)

	var got testRecord
	if err := gojson.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("Unmarshal %#q failed: %v", text, err)
	}
	if diff := cmp.Diff(input, got, cmp.AllowUnexported(testRecord{})); diff != "" {
		t.Errorf("Decoded output: (-want, +got)\n%s", diff)
	}
}

func TestMarshal_time(t *testing.T) {
	tests := []struct {
		input time.Time
		want  string
	}{
		{time.UnixMilli(0), `"\/Date(0)\/"`},
		{time.UnixMilli(1234567890123), `"\/Date(1234567890123)\/"`},
		{time.UnixMilli(-86400000), `"\/Date(-86400000)\/"`},
	}
	for _, test := range tests {
		if got := bind.Marshal(test.input); got != test.want {
			t.Errorf("Marshal(%v): got %#q, want %#q", test.input, got, test.want)
		}

		// The sentinel is still a valid JSON string under the ordinary
		// escaping rules.
		var s string
		if err := gojson.Unmarshal([]byte(test.want), &s); err != nil {
			t.Errorf("Unmarshal %#q failed: %v", test.want, err)
		}
	}
}

func TestMarshal_deterministic(t *testing.T) {
	input := map[string]any{
		"zebra": 1, "Apple": 2, "mango": []any{"x", true}, "NESTED": map[string]int{"b": 2, "a": 1},
	}
	first := bind.Marshal(input)
	for range 10 {
		if got := bind.Marshal(input); got != first {
			t.Fatalf("Marshal is not deterministic:\n first: %s\n again: %s", first, got)
		}
	}
	const want = `{"Apple":2,"mango":["x",true],"NESTED":{"a":1,"b":2},"zebra":1}`
	if first != want {
		t.Errorf("Marshal: got %#q, want %#q", first, want)
	}
}
