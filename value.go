// Copyright (C) 2024 J. M. Turner. All Rights Reserved.

package jsonval

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// A Value is a dynamic value produced by parsing. The concrete type of a
// Value is one of Null, Bool, Int, Dec, String, Array or Object. Values are
// owned by the caller once returned and do not alias parser state.
type Value interface {
	// JSON renders the value in its textual form. The output is
	// deterministic: object keys are emitted in sorted order.
	JSON() string

	writeJSON(sb *strings.Builder)
}

// Null is the null constant.
var Null Value = nullValue{}

type nullValue struct{}

func (nullValue) JSON() string { return "null" }

func (nullValue) writeJSON(sb *strings.Builder) { sb.WriteString("null") }

// A Bool is a Boolean constant, true or false.
type Bool bool

func (b Bool) JSON() string { return strconv.FormatBool(bool(b)) }

func (b Bool) writeJSON(sb *strings.Builder) { sb.WriteString(b.JSON()) }

// An Int is an integer value. Literals without a fraction or exponent are
// represented as Int; values outside the int64 range are a parse error
// rather than being promoted to Dec.
type Int int64

func (z Int) JSON() string { return strconv.FormatInt(int64(z), 10) }

func (z Int) Int64() int64 { return int64(z) }

func (z Int) writeJSON(sb *strings.Builder) { sb.WriteString(z.JSON()) }

// A Dec is an arbitrary-precision base-10 decimal value. Literals with a
// fraction or exponent are represented as Dec.
type Dec struct{ decimal.Decimal }

// NewDec wraps d as a Value.
func NewDec(d decimal.Decimal) Dec { return Dec{d} }

func (d Dec) JSON() string { return d.Decimal.String() }

func (d Dec) writeJSON(sb *strings.Builder) { sb.WriteString(d.JSON()) }

// A String is a string value. The text is fully unescaped.
type String string

func (s String) JSON() string { return Quote(string(s)) }

func (s String) writeJSON(sb *strings.Builder) { sb.WriteString(s.JSON()) }

// An Array is an ordered sequence of values.
type Array []Value

func (a Array) Len() int { return len(a) }

func (a Array) JSON() string { return renderJSON(a) }

func (a Array) writeJSON(sb *strings.Builder) {
	sb.WriteByte('[')
	for i, v := range a {
		if i > 0 {
			sb.WriteByte(',')
		}
		v.writeJSON(sb)
	}
	sb.WriteByte(']')
}

// An Object is a mapping from string keys to values. Keys are unique;
// duplicate keys in source text overwrite earlier ones.
type Object map[string]Value

func (o Object) Len() int { return len(o) }

// Find returns the value for key, or nil if no such key exists.
func (o Object) Find(key string) Value { return o[key] }

func (o Object) JSON() string { return renderJSON(o) }

func (o Object) writeJSON(sb *strings.Builder) {
	keys := make([]string, 0, len(o))
	for key := range o {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, CompareKeys)
	sb.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(Quote(key))
		sb.WriteByte(':')
		o[key].writeJSON(sb)
	}
	sb.WriteByte('}')
}

func renderJSON(v Value) string {
	var sb strings.Builder
	v.writeJSON(&sb)
	return sb.String()
}

// CompareKeys orders object keys for output: case-insensitive, with a
// byte-wise tie break so that keys differing only in case still have a
// stable order.
func CompareKeys(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// ToValue converts a plain Go value to a Value. It accepts nil, booleans,
// integers, floating-point values, decimals, strings, []any and
// map[string]any, as well as any existing Value. ToValue panics if v is not
// one of these.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null
	case Value:
		return t
	case bool:
		return Bool(t)
	case int:
		return Int(t)
	case int64:
		return Int(t)
	case float64:
		return Dec{decimal.NewFromFloat(t)}
	case decimal.Decimal:
		return Dec{t}
	case string:
		return String(t)
	case []any:
		out := make(Array, len(t))
		for i, elt := range t {
			out[i] = ToValue(elt)
		}
		return out
	case map[string]any:
		out := make(Object, len(t))
		for key, elt := range t {
			out[key] = ToValue(elt)
		}
		return out
	default:
		panic(fmt.Sprintf("invalid value %T", v))
	}
}
