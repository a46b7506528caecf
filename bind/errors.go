// Copyright (C) 2024 J. M. Turner. All Rights Reserved.

package bind

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors for invalid Decode targets.
var (
	ErrNilTarget  = errors.New("nil decode target")
	ErrNotPointer = errors.New("decode target must be a non-nil pointer")
)

// A FormatError reports that a value's textual or structural form cannot
// be converted to the requested type.
type FormatError struct {
	Target reflect.Type // the requested type, may be nil
	Reason string

	err error
}

// Error satisfies the error interface.
func (e *FormatError) Error() string {
	if e.Target != nil {
		return fmt.Sprintf("cannot convert to %s: %s", e.Target, e.Reason)
	}
	return e.Reason
}

// Unwrap supports error wrapping.
func (e *FormatError) Unwrap() error { return e.err }

func formatErrf(target reflect.Type, msg string, args ...any) *FormatError {
	return &FormatError{Target: target, Reason: fmt.Sprintf(msg, args...)}
}

func formatErr(target reflect.Type, err error) *FormatError {
	return &FormatError{Target: target, Reason: err.Error(), err: err}
}
