// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import "go4.org/mem"

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return `"` + string(quoteBytes(mem.S(src))) + `"` }

// Unquote decodes a JSON string value. Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
//
// Invalid escapes are replaced by the Unicode replacement rune. Unquote
// reports a *Error with Reason EndOfStringNotFound for a missing pair of
// quotation marks, and with Reason InvalidCharacterWithinString for an
// escape sequence cut short by the closing quote.
//
// The core Reader deliberately does not do this: a String or PropertyName
// token's Value is the raw, still-escaped slice of the input buffer between
// the quotation marks. Unquote is the explicit, separately-allocating opt-in
// for callers that need the decoded text; it takes the quoted form.
func Unquote(quoted []byte) ([]byte, error) {
	if len(quoted) < 2 || quoted[0] != '"' || quoted[len(quoted)-1] != '"' {
		return nil, &Error{Reason: EndOfStringNotFound, Offset: len(quoted)}
	}
	return unquoteBytes(mem.B(quoted[1 : len(quoted)-1]))
}
