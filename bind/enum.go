// Copyright (C) 2024 J. M. Turner. All Rights Reserved.

package bind

import (
	"reflect"
	"strconv"
	"strings"
)

// An EnumName binds one enumeration constant to its external name.
type EnumName struct {
	Name  string
	Value int64
}

// An Enum declares the member set of an enumeration type. Declaration
// order is significant: flag combinations encode their set bits in the
// order the names appear here, regardless of the order they were decoded
// in.
type Enum struct {
	Flags bool
	Names []EnumName
}

type enumInfo struct {
	flags   bool
	names   []EnumName
	byFold  map[string]int64 // folded name → value
	byValue map[int64]string // exact value → name, first declaration wins
}

// RegisterEnum declares that the type of prototype is an enumeration.
// Decoding then accepts member names (a comma-separated list for flag
// enums, matched case-insensitively) or a raw numeric value, and encoding
// produces quoted names. The prototype must have an integer kind;
// RegisterEnum panics otherwise. Registering a type again replaces its
// earlier declaration.
func (m *Mapper) RegisterEnum(prototype any, e Enum) {
	t := reflect.TypeOf(prototype)
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		// ok
	default:
		panic("bind: enum prototype must have an integer kind")
	}
	info := &enumInfo{
		flags:   e.Flags,
		names:   e.Names,
		byFold:  make(map[string]int64, len(e.Names)),
		byValue: make(map[int64]string, len(e.Names)),
	}
	for _, n := range e.Names {
		info.byFold[strings.ToLower(n.Name)] = n.Value
		if _, ok := info.byValue[n.Value]; !ok {
			info.byValue[n.Value] = n.Name
		}
	}
	m.enums.Store(t, info)
}

func (m *Mapper) enumFor(t reflect.Type) *enumInfo {
	if v, ok := m.enums.Load(t); ok {
		return v.(*enumInfo)
	}
	return nil
}

// parse interprets the string form of an enum value: either a raw numeric
// value, or one or more member names separated by commas which are OR'd
// together. Names match case-insensitively.
func (e *enumInfo) parse(s string, target reflect.Type) (int64, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	var out int64
	for part := range strings.SplitSeq(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		v, ok := e.byFold[name]
		if !ok {
			return 0, formatErrf(target, "unknown enum name %q", strings.TrimSpace(part))
		}
		out |= v
	}
	return out, nil
}

// format renders an enum value for output. An exact member match wins;
// otherwise a flag enum is decomposed into its set bits in declaration
// order. A value not representable by the declared names falls back to
// its decimal form, which parse accepts back.
func (e *enumInfo) format(v int64) string {
	if name, ok := e.byValue[v]; ok {
		return name
	}
	if e.flags {
		var parts []string
		rem := v
		for _, n := range e.names {
			if n.Value != 0 && rem&n.Value == n.Value {
				parts = append(parts, n.Name)
				rem &^= n.Value
			}
		}
		if rem == 0 && len(parts) > 0 {
			return strings.Join(parts, ", ")
		}
	}
	return strconv.FormatInt(v, 10)
}
