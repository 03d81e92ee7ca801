// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

// scanString recognizes a quoted string. Precondition: the current
// (unconsumed) byte is '"'. If isPropertyName is true, the string must be
// followed (after optional whitespace) by a colon, and the committed token
// is PropertyName rather than String.
//
// Unlike the two-phase fast/slow split described for the reference
// implementation (locate the closing quote first, then validate escapes),
// this does both in one forward pass, following the teacher's scanString:
// it is still a single O(n) walk with no backtracking and no allocation,
// and it keeps line/column bookkeeping exact as the content is consumed
// rather than reconstructing it after the fact.
func (r *Reader) scanString(isPropertyName bool) error {
	mark := r.mark()
	r.next() // consume opening quote
	// contentStart is also the token start: the byte after the opening quote.
	contentStart := r.consumed

	for {
		b, ok := r.peek()
		if !ok {
			return r.rollbackOr(mark, EndOfStringNotFound)
		}
		if b == '"' {
			contentEnd := r.consumed
			r.next() // consume closing quote
			if isPropertyName {
				return r.finishPropertyName(contentStart, contentStart, contentEnd, mark)
			}
			r.commitValue(String, contentStart, contentStart, contentEnd)
			return nil
		}
		if b == '\\' {
			if err := r.scanEscape(mark); err != nil {
				return err
			}
			continue
		}
		if b < 0x20 {
			return r.errByte(InvalidCharacterWithinString, b)
		}
		r.next()
	}
}

// scanEscape consumes one backslash escape sequence. Precondition: the
// current (unconsumed) byte is '\\'.
func (r *Reader) scanEscape(mark cursorMark) error {
	r.next() // consume backslash
	eb, ok := r.peek()
	if !ok {
		return r.rollbackOr(mark, EndOfStringNotFound)
	}
	switch eb {
	case '"', '\\', '/', 'b', 'f', 'r', 't':
		r.next()
		return nil
	case 'n':
		// The reference behavior treats an escaped newline as a logical line
		// break for position-reporting purposes, even though no literal LF
		// byte was consumed; see the open questions in DESIGN.md.
		r.next()
		r.lineNumber++
		r.column = 0
		return nil
	case 'u':
		r.next()
		return r.scanHex4(mark)
	default:
		return r.errByte(InvalidCharacterWithinString, eb)
	}
}

func (r *Reader) scanHex4(mark cursorMark) error {
	for i := 0; i < 4; i++ {
		b, ok := r.peek()
		if !ok {
			return r.rollbackOr(mark, EndOfStringNotFound)
		}
		if !isHexDigit(b) {
			return r.errByte(InvalidCharacterWithinString, b)
		}
		r.next()
	}
	return nil
}

// finishPropertyName requires the mandatory colon after a property name's
// closing quote, rolling back the whole name+colon construct to mark if the
// input runs out before a final block.
func (r *Reader) finishPropertyName(start, contentStart, contentEnd int, mark cursorMark) error {
	b, ok := r.skipWhitespace()
	if !ok {
		return r.rollbackOr(mark, ExpectedSeparaterAfterPropertyNameNotFound)
	}
	if b != ':' {
		return r.errByte(ExpectedSeparaterAfterPropertyNameNotFound, b)
	}
	r.next()
	r.commitValue(PropertyName, start, contentStart, contentEnd)
	return nil
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
