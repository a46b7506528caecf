// Copyright (C) 2024 J. M. Turner. All Rights Reserved.

package escape

import "go4.org/mem"

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789ABCDEF")

// Quote encodes a string to escape characters for inclusion in a JSON
// string. Only quotation marks, backslashes and control characters are
// escaped; everything from U+0020 up passes through unmodified.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len())
	for i := 0; i < src.Len(); i++ {
		b := src.At(i)
		switch {
		case b == '"' || b == '\\':
			buf = append(buf, '\\', b)
		case b < ' ':
			if c := controlEsc[b]; c != 0 {
				buf = append(buf, '\\', c)
			} else {
				buf = append(buf, '\\', 'u', '0', '0', hexDigit[b>>4], hexDigit[b&15])
			}
		default:
			buf = append(buf, b)
		}
	}
	return buf
}
