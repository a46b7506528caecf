// Copyright (C) 2024 J. M. Turner. All Rights Reserved.

// Package bind converts between dynamic values and statically-typed Go
// values.
//
// # Decoding
//
// Decode populates a Go value from a parsed tree; Unmarshal composes a
// parse with a decode:
//
//	type Config struct {
//	   Name  string
//	   Ports []int
//	}
//	cfg, err := bind.Unmarshal[Config](`{"name": "web", "ports": 8080}`)
//
// Object keys match struct members case-insensitively, by `json` tag name
// when one is present and field name otherwise. Keys with no matching
// member are ignored, so adding fields to a peer's schema does not break
// older readers. A scalar assigned to a slice-typed member becomes a
// one-element slice (as in the example above); the reverse is not true, a
// one-element slice always encodes as a list.
//
// # Encoding
//
// Marshal renders any supported Go value as text. It does not fail:
// unsupported kinds (channels, functions) encode as null, and guarding
// against reference cycles is the caller's responsibility. Output is
// deterministic: struct members are emitted sorted byte-wise by name, map
// keys case-insensitively with a byte-wise tie break. A struct member is
// omitted when its value is nil, the zero value of its type, or the
// declared default from a `default:"..."` tag.
//
// # Enumerations and dates
//
// Named integer types can be registered as enumerations, optionally as
// bit flags; see Mapper.RegisterEnum. Values of time.Time encode as the
// epoch-milliseconds sentinel "\/Date(ms)\/" used by the wire dialect.
//
// # Concurrency
//
// A Mapper is safe for concurrent use. Per-type member metadata is
// computed on first encounter of a type and cached for the lifetime of
// the mapper.
package bind

import (
	"reflect"
	"sync"

	"github.com/jmturner/jsonval"
)

// A Mapper converts between dynamic values and typed Go values. The zero
// value is ready to use; New is provided for symmetry with the rest of the
// module.
type Mapper struct {
	types sync.Map // reflect.Type → *typeInfo
	enums sync.Map // reflect.Type → *enumInfo
}

// New constructs a new Mapper with empty caches and no registered
// enumerations.
func New() *Mapper { return new(Mapper) }

// std is the mapper behind the package-level functions.
var std = New()

// Unmarshal parses text and decodes the result into out, which must be a
// non-nil pointer. Parse failures are *jsonval.ParseError; conversion
// failures are *FormatError.
func (m *Mapper) Unmarshal(text string, out any) error {
	v, err := jsonval.Parse(text)
	if err != nil {
		return err
	}
	return m.Decode(v, out)
}

// Decode converts v into out, which must be a non-nil pointer.
func (m *Mapper) Decode(v jsonval.Value, out any) error {
	if out == nil {
		return ErrNilTarget
	}
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrNotPointer
	}
	return m.decodeValue(v, rv.Elem())
}

// Marshal renders v as text. It is total over supported value shapes; see
// the package comment for the treatment of unsupported kinds.
func Marshal(v any) string { return std.Marshal(v) }

// Unmarshal parses text and decodes the result into a T using the default
// mapper.
func Unmarshal[T any](text string) (T, error) {
	var out T
	err := std.Unmarshal(text, &out)
	return out, err
}

// Decode converts v into a T using the default mapper.
func Decode[T any](v jsonval.Value) (T, error) {
	var out T
	err := std.Decode(v, &out)
	return out, err
}

// RegisterEnum registers an enumeration with the default mapper; see
// Mapper.RegisterEnum.
func RegisterEnum(prototype any, e Enum) { std.RegisterEnum(prototype, e) }
