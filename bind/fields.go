// Copyright (C) 2024 J. M. Turner. All Rights Reserved.

package bind

import (
	"reflect"
	"slices"
	"strings"

	"github.com/jmturner/jsonval"
)

// A fieldInfo describes one member of a struct type: its external name,
// how to reach it, and its declared default value if any.
type fieldInfo struct {
	name  string // external name, from the json tag or the field name
	index []int
	typ   reflect.Type

	hasDefault   bool
	defaultValue reflect.Value
}

// A typeInfo is the cached member metadata for one struct type. fields is
// in encode order (sorted byte-wise by external name); byFold resolves
// incoming keys case-insensitively.
type typeInfo struct {
	fields []*fieldInfo
	byFold map[string]*fieldInfo
}

// field resolves an incoming object key to a member, or nil if the type
// has no member with that name under case folding.
func (ti *typeInfo) field(name string) *fieldInfo {
	return ti.byFold[strings.ToLower(name)]
}

// typeInfo returns the member metadata for t, computing and caching it on
// first encounter. Population is a LoadOrStore so concurrent first touch
// of the same type settles on a single record.
func (m *Mapper) typeInfo(t reflect.Type) *typeInfo {
	if v, ok := m.types.Load(t); ok {
		return v.(*typeInfo)
	}
	ti := m.buildTypeInfo(t)
	actual, _ := m.types.LoadOrStore(t, ti)
	return actual.(*typeInfo)
}

func (m *Mapper) buildTypeInfo(t reflect.Type) *typeInfo {
	ti := &typeInfo{byFold: make(map[string]*fieldInfo)}
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("json"); ok {
			base, _, _ := strings.Cut(tag, ",")
			if base == "-" {
				continue
			}
			if base != "" {
				name = base
			}
		}
		fi := &fieldInfo{name: name, index: sf.Index, typ: sf.Type}
		if text, ok := sf.Tag.Lookup("default"); ok {
			fi.defaultValue = m.parseDefault(text, sf.Type)
			fi.hasDefault = fi.defaultValue.IsValid()
		}
		ti.fields = append(ti.fields, fi)
		ti.byFold[strings.ToLower(name)] = fi
	}
	slices.SortFunc(ti.fields, func(a, b *fieldInfo) int {
		return strings.Compare(a.name, b.name)
	})
	return ti
}

// parseDefault interprets a default tag as a value of type t. The tag text
// is parsed as a dialect literal where possible; otherwise it is taken as
// a plain string, so `default:"red"` works on string and enum members
// without extra quoting. An uninterpretable tag yields no default.
func (m *Mapper) parseDefault(text string, t reflect.Type) reflect.Value {
	v, err := jsonval.Parse(text)
	if err != nil {
		v = jsonval.String(text)
	}
	out := reflect.New(t).Elem()
	if err := m.decodeValue(v, out); err != nil {
		return reflect.Value{}
	}
	return out
}
