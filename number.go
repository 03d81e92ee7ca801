// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isNumberDelimiter(b byte) bool {
	switch b {
	case ',', '}', ']', ' ', '\t', '\r', '\n', '/':
		return true
	default:
		return false
	}
}

// scanNumber recognizes a JSON number per RFC 8259 §6:
//
//	number = [-] (0 | [1-9][0-9]*) ['.' [0-9]+] [(e|E) [+|-] [0-9]+]
//
// topLevel selects between the two variants described for the reference
// implementation: as the sole top-level scalar, running off the end of the
// buffer on a final block is a legal way to end the number (there is
// nothing left for it to be a prefix of); inside a container, the number
// must be followed by a delimiter, so the same condition is
// ExpectedEndOfDigitNotFound.
func (r *Reader) scanNumber(topLevel bool) error {
	mark := r.mark()
	start := r.consumed

	if b, ok := r.peek(); ok && b == '-' {
		r.next()
		nb, ok := r.peek()
		if !ok {
			return r.rollbackOr(mark, ExpectedDigitNotFoundEndOfData)
		}
		if !isDigit(nb) {
			return r.errByte(ExpectedDigitNotFound, nb)
		}
	}

	b, ok := r.peek()
	if !ok {
		return r.rollbackOr(mark, ExpectedDigitNotFoundEndOfData)
	}
	switch {
	case b == '0':
		r.next()
		if nb, ok := r.peek(); ok && isDigit(nb) {
			return r.errByte(ExpectedEndOfDigitNotFound, nb)
		}
	case isDigit(b):
		r.next()
		r.consumeDigits()
	default:
		return r.errByte(ExpectedDigitNotFound, b)
	}

	if b, ok := r.peek(); ok && b == '.' {
		r.next()
		nb, ok := r.peek()
		if !ok {
			return r.rollbackOr(mark, ExpectedNextDigitComponentNotFound)
		}
		if !isDigit(nb) {
			return r.errByte(ExpectedNextDigitComponentNotFound, nb)
		}
		r.next()
		r.consumeDigits()
	}

	if b, ok := r.peek(); ok && (b == 'e' || b == 'E') {
		r.next()
		sb, ok := r.peek()
		if !ok {
			return r.rollbackOr(mark, ExpectedNextDigitEValueNotFound)
		}
		if sb == '+' || sb == '-' {
			r.next()
			sb, ok = r.peek()
			if !ok {
				return r.rollbackOr(mark, ExpectedNextDigitEValueNotFound)
			}
		}
		if !isDigit(sb) {
			return r.errByte(ExpectedNextDigitEValueNotFound, sb)
		}
		r.next()
		r.consumeDigits()
	}

	end := r.consumed
	b, ok = r.peek()
	if !ok {
		if topLevel && r.isFinalBlock {
			r.commitValue(Number, start, start, end)
			return nil
		}
		if !r.isFinalBlock {
			r.rollbackTo(mark)
			return ErrRollback
		}
		return r.err(ExpectedEndOfDigitNotFound)
	}
	if !isNumberDelimiter(b) {
		return r.errByte(ExpectedEndOfDigitNotFound, b)
	}
	r.commitValue(Number, start, start, end)
	return nil
}

// consumeDigits advances over a (possibly empty) run of ASCII digits.
func (r *Reader) consumeDigits() {
	for {
		b, ok := r.peek()
		if !ok || !isDigit(b) {
			return
		}
		r.next()
	}
}
