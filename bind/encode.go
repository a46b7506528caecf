// Copyright (C) 2024 J. M. Turner. All Rights Reserved.

package bind

import (
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmturner/jsonval"
)

// Marshal renders v as text. It is total over supported value shapes:
// unsupported kinds encode as null, and reference cycles are the caller's
// responsibility.
func (m *Mapper) Marshal(v any) string {
	var sb strings.Builder
	m.encode(&sb, reflect.ValueOf(v))
	return sb.String()
}

// encode dispatches on the shape of rv; the first matching rule wins.
func (m *Mapper) encode(sb *strings.Builder, rv reflect.Value) {
	if !rv.IsValid() {
		sb.WriteString("null")
		return
	}
	switch rv.Kind() {
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			sb.WriteString("null")
			return
		}
		m.encode(sb, rv.Elem())
		return
	}

	t := rv.Type()
	switch {
	case t.Implements(valueType):
		sb.WriteString(rv.Interface().(jsonval.Value).JSON())
		return
	case t == timeType:
		sb.WriteByte('"')
		sb.WriteString(formatEpochDate(rv.Interface().(time.Time)))
		sb.WriteByte('"')
		return
	case t == decimalType:
		sb.WriteString(rv.Interface().(decimal.Decimal).String())
		return
	}
	if e := m.enumFor(t); e != nil {
		sb.WriteString(jsonval.Quote(e.format(intValue(rv))))
		return
	}

	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			sb.WriteString("null")
			return
		}
		m.encodeSeq(sb, rv)
	case reflect.Array:
		m.encodeSeq(sb, rv)
	case reflect.String:
		sb.WriteString(jsonval.Quote(rv.String()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		sb.WriteString(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		sb.WriteString(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Bool:
		sb.WriteString(strconv.FormatBool(rv.Bool()))
	case reflect.Float32:
		// The 'f' format keeps the output inside the dialect grammar,
		// which has no bare exponents; -1 keeps it shortest.
		sb.WriteString(strconv.FormatFloat(rv.Float(), 'f', -1, 32))
	case reflect.Float64:
		sb.WriteString(strconv.FormatFloat(rv.Float(), 'f', -1, 64))
	case reflect.Map:
		m.encodeMap(sb, rv)
	case reflect.Struct:
		m.encodeStruct(sb, rv)
	default:
		// chan, func, complex, unsafe pointers
		sb.WriteString("null")
	}
}

func (m *Mapper) encodeSeq(sb *strings.Builder, rv reflect.Value) {
	sb.WriteByte('[')
	for i := range rv.Len() {
		if i > 0 {
			sb.WriteByte(',')
		}
		m.encode(sb, rv.Index(i))
	}
	sb.WriteByte(']')
}

// encodeMap emits map entries sorted by key, case-insensitively with a
// byte-wise tie break. Map entries are never suppressed; suppression
// applies to struct members only.
func (m *Mapper) encodeMap(sb *strings.Builder, rv reflect.Value) {
	t := rv.Type()
	if t.Key().Kind() != reflect.String || rv.IsNil() {
		sb.WriteString("null")
		return
	}
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	slices.SortFunc(keys, jsonval.CompareKeys)

	sb.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(jsonval.Quote(key))
		sb.WriteByte(':')
		m.encode(sb, rv.MapIndex(reflect.ValueOf(key).Convert(t.Key())))
	}
	sb.WriteByte('}')
}

// encodeStruct emits members in the precomputed order: sorted byte-wise
// by external name. A member is omitted when it is nil, holds its type's
// zero value, or equals its declared default.
func (m *Mapper) encodeStruct(sb *strings.Builder, rv reflect.Value) {
	ti := m.typeInfo(rv.Type())
	sb.WriteByte('{')
	first := true
	for _, fi := range ti.fields {
		f := rv.FieldByIndex(fi.index)
		if suppressed(f, fi) {
			continue
		}
		if !first {
			sb.WriteByte(',')
		}
		first = false
		sb.WriteString(jsonval.Quote(fi.name))
		sb.WriteByte(':')
		m.encode(sb, f)
	}
	sb.WriteByte('}')
}

func suppressed(f reflect.Value, fi *fieldInfo) bool {
	switch f.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
		if f.IsNil() {
			return true
		}
	}
	if fi.hasDefault {
		return reflect.DeepEqual(f.Interface(), fi.defaultValue.Interface())
	}
	return f.IsZero()
}

func intValue(rv reflect.Value) int64 {
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint())
	default:
		return rv.Int()
	}
}
