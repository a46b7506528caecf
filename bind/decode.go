// Copyright (C) 2024 J. M. Turner. All Rights Reserved.

package bind

import (
	"reflect"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmturner/jsonval"
)

var (
	valueType   = reflect.TypeFor[jsonval.Value]()
	timeType    = reflect.TypeFor[time.Time]()
	decimalType = reflect.TypeFor[decimal.Decimal]()
)

// decodeValue converts v into the addressable value out. The checks below
// are an ordered decision sequence; the first applicable rule wins, and a
// (variant, target) pair no rule covers is a *FormatError.
func (m *Mapper) decodeValue(v jsonval.Value, out reflect.Value) error {
	t := out.Type()

	// Null decodes to the empty representation of any target.
	if v == nil || v == jsonval.Null {
		out.Set(reflect.Zero(t))
		return nil
	}

	// A dynamic-value target takes the tree as is.
	if t == valueType {
		out.Set(reflect.ValueOf(v))
		return nil
	}

	// Unwrap one level of optionality.
	if t.Kind() == reflect.Pointer {
		p := reflect.New(t.Elem())
		if err := m.decodeValue(v, p.Elem()); err != nil {
			return err
		}
		out.Set(p)
		return nil
	}

	// An untyped target takes the native Go shape.
	if t.Kind() == reflect.Interface && t.NumMethod() == 0 {
		out.Set(reflect.ValueOf(nativeShape(v)))
		return nil
	}

	if e := m.enumFor(t); e != nil {
		return m.decodeEnum(v, e, out)
	}
	if t == timeType {
		return m.decodeTime(v, out)
	}
	if t == decimalType {
		return m.decodeDecimal(v, out)
	}

	switch src := v.(type) {
	case jsonval.Object:
		switch t.Kind() {
		case reflect.Struct:
			return m.decodeStruct(src, out)
		case reflect.Map:
			return m.decodeMap(src, out)
		}
		return formatErrf(t, "cannot assign an object")

	case jsonval.Array:
		switch t.Kind() {
		case reflect.Slice:
			seq := reflect.MakeSlice(t, 0, len(src))
			for _, elt := range src {
				ev := reflect.New(t.Elem()).Elem()
				if err := m.decodeValue(elt, ev); err != nil {
					return err
				}
				seq = reflect.Append(seq, ev)
			}
			out.Set(seq)
			return nil
		case reflect.Array:
			if len(src) > t.Len() {
				return formatErrf(t, "array of %d values does not fit", len(src))
			}
			out.Set(reflect.Zero(t))
			for i, elt := range src {
				if err := m.decodeValue(elt, out.Index(i)); err != nil {
					return err
				}
			}
			return nil
		}
		return formatErrf(t, "cannot assign an array")
	}

	// A scalar assigned to a slice-typed target becomes a one-element
	// slice. This is deliberate leniency, and it is asymmetric: encoding
	// never unwraps a one-element slice.
	if t.Kind() == reflect.Slice {
		ev := reflect.New(t.Elem()).Elem()
		if err := m.decodeValue(v, ev); err != nil {
			return err
		}
		out.Set(reflect.Append(reflect.MakeSlice(t, 0, 1), ev))
		return nil
	}

	return m.decodeScalar(v, out)
}

// decodeStruct populates a struct member-by-member. Members with a
// declared default start from that default, so a suppressed member
// round-trips back to its default rather than to zero. Keys with no
// matching member are ignored.
func (m *Mapper) decodeStruct(obj jsonval.Object, out reflect.Value) error {
	ti := m.typeInfo(out.Type())
	for _, fi := range ti.fields {
		if fi.hasDefault {
			out.FieldByIndex(fi.index).Set(fi.defaultValue)
		}
	}
	for key, val := range obj {
		fi := ti.field(key)
		if fi == nil {
			continue
		}
		if err := m.decodeValue(val, out.FieldByIndex(fi.index)); err != nil {
			return err
		}
	}
	return nil
}

// decodeMap populates a map target directly, key by key. The target's key
// type must have string kind.
func (m *Mapper) decodeMap(obj jsonval.Object, out reflect.Value) error {
	t := out.Type()
	if t.Key().Kind() != reflect.String {
		return formatErrf(t, "map key type must have string kind")
	}
	mv := reflect.MakeMapWithSize(t, len(obj))
	for key, val := range obj {
		ev := reflect.New(t.Elem()).Elem()
		if err := m.decodeValue(val, ev); err != nil {
			return err
		}
		mv.SetMapIndex(reflect.ValueOf(key).Convert(t.Key()), ev)
	}
	out.Set(mv)
	return nil
}

func (m *Mapper) decodeEnum(v jsonval.Value, e *enumInfo, out reflect.Value) error {
	var n int64
	switch src := v.(type) {
	case jsonval.String:
		z, err := e.parse(string(src), out.Type())
		if err != nil {
			return err
		}
		n = z
	case jsonval.Int:
		n = int64(src)
	default:
		return formatErrf(out.Type(), "cannot assign %T to an enumeration", v)
	}
	return setInt(out, n)
}

func (m *Mapper) decodeTime(v jsonval.Value, out reflect.Value) error {
	s, ok := v.(jsonval.String)
	if !ok {
		return formatErrf(out.Type(), "an instant requires an epoch date string, not %T", v)
	}
	t, err := parseEpochDate(string(s), out.Type())
	if err != nil {
		return err
	}
	out.Set(reflect.ValueOf(t))
	return nil
}

func (m *Mapper) decodeDecimal(v jsonval.Value, out reflect.Value) error {
	switch src := v.(type) {
	case jsonval.Dec:
		out.Set(reflect.ValueOf(src.Decimal))
	case jsonval.Int:
		out.Set(reflect.ValueOf(decimal.NewFromInt(int64(src))))
	case jsonval.String:
		d, err := decimal.NewFromString(string(src))
		if err != nil {
			return formatErr(out.Type(), err)
		}
		out.Set(reflect.ValueOf(d))
	default:
		return formatErrf(out.Type(), "cannot assign %T to a decimal", v)
	}
	return nil
}

// decodeScalar is the (variant, target kind) conversion table for scalar
// values. Unlisted combinations fail closed.
func (m *Mapper) decodeScalar(v jsonval.Value, out reflect.Value) error {
	t := out.Type()
	switch src := v.(type) {
	case jsonval.Bool:
		switch t.Kind() {
		case reflect.Bool:
			out.SetBool(bool(src))
			return nil
		case reflect.String:
			out.SetString(strconv.FormatBool(bool(src)))
			return nil
		}

	case jsonval.Int:
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return setInt(out, int64(src))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return setInt(out, int64(src))
		case reflect.Float32, reflect.Float64:
			out.SetFloat(float64(src))
			return nil
		case reflect.String:
			out.SetString(strconv.FormatInt(int64(src), 10))
			return nil
		}

	case jsonval.Dec:
		switch t.Kind() {
		case reflect.Float32, reflect.Float64:
			f, _ := src.Decimal.Float64()
			out.SetFloat(f)
			return nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if !src.Decimal.IsInteger() {
				return formatErrf(t, "fractional value %s", src.Decimal)
			}
			return setInt(out, src.Decimal.IntPart())
		case reflect.String:
			out.SetString(src.Decimal.String())
			return nil
		}

	case jsonval.String:
		s := string(src)
		switch t.Kind() {
		case reflect.String:
			out.SetString(s)
			return nil
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			z, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return formatErr(t, err)
			}
			return setInt(out, z)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			z, err := strconv.ParseUint(s, 10, 64)
			if err != nil {
				return formatErr(t, err)
			}
			if out.OverflowUint(z) {
				return formatErrf(t, "value %s overflows", s)
			}
			out.SetUint(z)
			return nil
		case reflect.Float32, reflect.Float64:
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return formatErr(t, err)
			}
			out.SetFloat(f)
			return nil
		case reflect.Bool:
			b, err := strconv.ParseBool(s)
			if err != nil {
				return formatErr(t, err)
			}
			out.SetBool(b)
			return nil
		}
	}
	return formatErrf(t, "cannot assign %T", v)
}

// setInt assigns n to an integer target of either sign class, checking
// for overflow and sign loss.
func setInt(out reflect.Value, n int64) error {
	switch out.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if out.OverflowInt(n) {
			return formatErrf(out.Type(), "value %d overflows", n)
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n < 0 || out.OverflowUint(uint64(n)) {
			return formatErrf(out.Type(), "value %d overflows", n)
		}
		out.SetUint(uint64(n))
	default:
		return formatErrf(out.Type(), "not an integer target")
	}
	return nil
}

// nativeShape converts a dynamic value to its plain Go representation:
// nil, bool, int64, decimal.Decimal, string, []any or map[string]any.
func nativeShape(v jsonval.Value) any {
	switch t := v.(type) {
	case jsonval.Bool:
		return bool(t)
	case jsonval.Int:
		return int64(t)
	case jsonval.Dec:
		return t.Decimal
	case jsonval.String:
		return string(t)
	case jsonval.Array:
		out := make([]any, len(t))
		for i, elt := range t {
			out[i] = nativeShape(elt)
		}
		return out
	case jsonval.Object:
		out := make(map[string]any, len(t))
		for key, elt := range t {
			out[key] = nativeShape(elt)
		}
		return out
	default:
		return nil
	}
}
