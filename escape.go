// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"unicode/utf8"

	"go4.org/mem"
)

// controlEsc maps a control byte to the one-letter escape quoteBytes uses
// for it, mirroring the set scanEscape accepts on the way in: \b \f \n \r \t.
// Bytes with no short form fall back to a \u00XX escape.
var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sizes the table to cover every byte below ' '; never looked up
}

var hexDigit = []byte("0123456789abcdef")

// Runes given a literal six-character \uXXXX escape by quoteBytes instead of
// their raw UTF-8 encoding, because they are easily confused with
// line-ending or replacement markup by downstream consumers.
const (
	runeReplacement   = 0xFFFD
	runeLineSeparator = 0x2028
	runeParaSeparator = 0x2029
)

// quoteBytes encodes src, the plain text of a string, as the escaped
// interior of a JSON string value (no surrounding quotes). It is the
// encoding-side counterpart of scanEscape/scanHex4: it escapes every byte
// those recognizers require to be escaped on input, and in addition the
// runes listed above.
func quoteBytes(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len())
	putByte := func(bs ...byte) { buf = append(buf, bs...) }
	putHexEscape := func(r rune) {
		putByte('\\', 'u',
			hexDigit[(r>>12)&0xF], hexDigit[(r>>8)&0xF],
			hexDigit[(r>>4)&0xF], hexDigit[r&0xF])
	}

	for src.Len() > 0 {
		r, n := mem.DecodeRune(src)
		switch {
		case r < utf8.RuneSelf && r < ' ':
			if b := controlEsc[r]; b != 0 {
				putByte('\\', b)
			} else {
				putHexEscape(r)
			}
		case r == '\\' || r == '"':
			putByte('\\', byte(r))
		case r == runeReplacement || r == runeLineSeparator || r == runeParaSeparator:
			putHexEscape(r)
		case r < utf8.RuneSelf:
			putByte(byte(r))
		default:
			var rbuf [utf8.UTFMax]byte
			m := utf8.EncodeRune(rbuf[:], r)
			buf = append(buf, rbuf[:m]...)
		}
		src = src.SliceFrom(n)
	}
	return buf
}

// unquoteBytes decodes src, the already-dequoted interior of a JSON string
// value, expanding every escape scanEscape/scanHex4 validated on the way in.
// Unlike those recognizers, which only validate, unquoteBytes performs the
// transformation the core Reader deliberately withholds (spec.md's
// Non-goals exclude escape decoding from the scanner itself).
//
// An escape cut short by the end of src (a trailing backslash, or \u with
// fewer than four bytes after it) is reported as a *Error with Reason
// InvalidCharacterWithinString, anchored at the byte offset within src where
// the escape begins rather than at a Reader's live cursor (unquoteBytes has
// no Reader of its own; it is called from the package-level Unquote, not
// from an in-progress scan). An unknown escape letter, or \u followed by
// four bytes that are not all hex digits, is not an error: it decodes to
// the Unicode replacement rune.
func unquoteBytes(src mem.RO) ([]byte, error) {
	total := src.Len()
	offsetOf := func(remaining mem.RO) int { return total - remaining.Len() }

	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dec, src), nil
	}

	putByte := func(bs ...byte) { dec = append(dec, bs...) }
	putRune := func(r rune) {
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], r)
		dec = append(dec, buf[:n]...)
	}
	for src.Len() != 0 {
		dec = mem.Append(dec, src.SliceTo(i))

		escAt := offsetOf(src) + i
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, &Error{Reason: InvalidCharacterWithinString, Offset: escAt}
		}
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n++
		}

		src = src.SliceFrom(n)
		switch r {
		case '"', '\\', '/':
			putByte(byte(r))
		case 'b':
			putByte('\b')
		case 'f':
			putByte('\f')
		case 'n':
			putByte('\n')
		case 'r':
			putByte('\r')
		case 't':
			putByte('\t')
		case 'u':
			if src.Len() < 4 {
				return nil, &Error{Reason: InvalidCharacterWithinString, Offset: escAt}
			}
			v, ok := parseHex4(src.SliceTo(4))
			if !ok {
				putRune(utf8.RuneError)
			} else {
				putRune(rune(v))
			}
			src = src.SliceFrom(4)
		default:
			putRune(utf8.RuneError)
		}

		i = mem.IndexByte(src, '\\')
		if i < 0 {
			dec = mem.Append(dec, src)
			break
		}
	}
	return dec, nil
}

// parseHex4 decodes a 4-byte hex digit run, the same grammar scanHex4
// validates in the core scanner. ok is false if any byte is not a hex digit.
func parseHex4(data mem.RO) (v int64, ok bool) {
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += int64(b - '0')
		case 'a' <= b && b <= 'f':
			v += int64(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += int64(b - 'A' + 10)
		default:
			return 0, false
		}
	}
	return v, true
}
