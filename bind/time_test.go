// Copyright (C) 2024 J. M. Turner. All Rights Reserved.

package bind_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jmturner/jsonval/bind"
)

func TestTime_decode(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		// The parser unescapes the wire form before the decoder sees it.
		{`"\/Date(0)\/"`, time.UnixMilli(0)},
		{`"\/Date(1234567890123)\/"`, time.UnixMilli(1234567890123)},
		{`"\/Date(-86400000)\/"`, time.UnixMilli(-86400000)},

		// Unescaped solidi denote the same instant.
		{`"/Date(25)/"`, time.UnixMilli(25)},
	}
	for _, test := range tests {
		got, err := bind.Unmarshal[time.Time](test.input)
		if err != nil {
			t.Errorf("Unmarshal(%#q): unexpected error: %v", test.input, err)
			continue
		}
		if !got.Equal(test.want) {
			t.Errorf("Unmarshal(%#q): got %v, want %v", test.input, got, test.want)
		}
	}
}

func TestTime_decodeErrors(t *testing.T) {
	tests := []string{
		`"hallo"`,
		`"\/Date(hallo)\/"`,
		`"\/Date()\/"`,
		`"\/Date(12"`,
		`"Date(12)"`,
		`25`,    // a bare number is not an instant
		`true`,  // nor a boolean
		`[1,2]`, // nor a list
	}
	for _, input := range tests {
		got, err := bind.Unmarshal[time.Time](input)
		if err == nil {
			t.Errorf("Unmarshal(%#q): got %v, want error", input, got)
			continue
		}
		var ferr *bind.FormatError
		if !errors.As(err, &ferr) {
			t.Errorf("Unmarshal(%#q): error is %T, not *FormatError", input, err)
		}
		t.Logf("Unmarshal(%#q): got expected error: %v", input, err)
	}
}

func TestTime_roundTrip(t *testing.T) {
	times := []time.Time{
		time.UnixMilli(0),
		time.UnixMilli(1724371200000),
		time.Date(1969, 7, 20, 20, 17, 0, 0, time.UTC),
		time.Now().Truncate(time.Millisecond),
	}
	for _, want := range times {
		text := bind.Marshal(want)
		got, err := bind.Unmarshal[time.Time](text)
		if err != nil {
			t.Errorf("Unmarshal(%#q) failed: %v", text, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("Round trip %v: got %v (text %#q)", want, got, text)
		}

		// Re-serialization reproduces the exact wire form.
		if again := bind.Marshal(got); again != text {
			t.Errorf("Re-serialize: got %#q, want %#q", again, text)
		}
	}
}

func TestTime_structMember(t *testing.T) {
	type event struct {
		Name string
		When time.Time
	}
	in := event{Name: "launch", When: time.UnixMilli(5000)}

	const want = `{"Name":"launch","When":"\/Date(5000)\/"}`
	if got := bind.Marshal(in); got != want {
		t.Errorf("Marshal: got %#q, want %#q", got, want)
	}

	got, err := bind.Unmarshal[event](want)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got.Name != in.Name || !got.When.Equal(in.When) {
		t.Errorf("Unmarshal: got %+v, want %+v", got, in)
	}

	// A zero time is a zero value and is suppressed.
	if got := bind.Marshal(event{Name: "x"}); got != `{"Name":"x"}` {
		t.Errorf("Marshal: got %#q, want %#q", got, `{"Name":"x"}`)
	}
}
