// Copyright (C) 2024 J. M. Turner. All Rights Reserved.

package jsonval

import "github.com/tailscale/hujson"

// ParseLenient normalizes hand-edited input before a strict parse.
// Comments and trailing commas are removed; the result must still satisfy
// the dialect grammar, so for example numbers with a bare exponent remain
// errors.
func ParseLenient(text string) (Value, error) {
	std, err := hujson.Standardize([]byte(text))
	if err != nil {
		return nil, &ParseError{Message: err.Error(), err: err}
	}
	return Parse(string(std))
}
