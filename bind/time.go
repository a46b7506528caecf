// Copyright (C) 2024 J. M. Turner. All Rights Reserved.

package bind

import (
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Instants travel as "\/Date(ms)\/" where ms is signed milliseconds
// between the UTC instant and 1970-01-01T00:00:00Z. The escaped slashes
// are part of the wire form; after unescaping, the decoder sees
// "/Date(ms)/".
const (
	datePrefix = "/Date("
	dateSuffix = ")/"
)

// formatEpochDate renders t in the escaped wire form, without quotes.
func formatEpochDate(t time.Time) string {
	return `\/Date(` + strconv.FormatInt(t.UTC().UnixMilli(), 10) + `)\/`
}

// parseEpochDate interprets the unescaped string form of an instant. The
// resulting time is in the local zone; its absolute instant is exact.
func parseEpochDate(s string, target reflect.Type) (time.Time, error) {
	inner, ok := strings.CutPrefix(s, datePrefix)
	if ok {
		inner, ok = strings.CutSuffix(inner, dateSuffix)
	}
	if !ok {
		return time.Time{}, formatErrf(target, "not an epoch date: %q", s)
	}
	ms, err := strconv.ParseInt(inner, 10, 64)
	if err != nil {
		return time.Time{}, formatErrf(target, "invalid epoch date %q", s)
	}
	return time.UnixMilli(ms), nil
}
