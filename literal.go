// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import "go4.org/mem"

// scanLiteral matches one of the fixed keywords true, false, or null
// starting at the cursor. want is the keyword text; kind and onMismatch are
// the token kind and error reason to use on success and failure
// respectively.
//
// When the buffer holds at least len(want) more bytes, the comparison is
// done in one shot with mem.B(...).Equal(mem.S(want)), the same block
// comparison scanner.go's scanName uses to check an accumulated run against
// a literal. Otherwise the match proceeds byte by byte so a short buffer can
// still be told apart from a genuine mismatch: a prefix that agrees with
// want as far as it goes is a rollback candidate, not an error.
func (r *Reader) scanLiteral(kind Kind, want string, onMismatch Reason) error {
	mark := r.mark()
	start := r.consumed
	n := len(want)

	if avail := len(r.buf) - r.consumed; avail >= n {
		got := mem.B(r.buf[r.consumed : r.consumed+n])
		if got.Equal(mem.S(want)) {
			r.consumed += n
			r.column += n
			r.commitToken(kind, start)
			return nil
		}
		for i := 0; i < n; i++ {
			b, _ := r.next()
			if b != want[i] {
				return r.errByte(onMismatch, b)
			}
		}
		return r.err(onMismatch) // unreachable if got and want truly differ
	}

	for i := 0; i < n; i++ {
		b, ok := r.next()
		if !ok {
			return r.rollbackOr(mark, onMismatch)
		}
		if b != want[i] {
			return r.errByte(onMismatch, b)
		}
	}
	r.commitToken(kind, start)
	return nil
}
