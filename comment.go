// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

// handleComment is entered whenever a token-boundary decision point sees a
// leading '/' and comments are enabled (r.options != Default). mark is the
// cursor position as of before any whitespace preceding the comment was
// skipped, so that a SkipComments comment or a rolled-back comment restores
// cleanly to the last committed token.
//
// Under AllowComments, a successfully scanned comment becomes the current
// token (emitted == true) and prevKind is pushed to the spill stack so the
// next Advance can resume the interrupted dispatch state. Under
// SkipComments, the comment is discarded (emitted == false) and the caller
// should loop back to continue looking for the next real token.
func (r *Reader) handleComment(prevKind Kind, mark cursorMark) (emitted bool, err error) {
	start := r.consumed
	r.next() // consume leading '/'

	b, ok := r.peek()
	if !ok {
		return false, r.rollbackOr(mark, ExpectedStartOfValueNotFound)
	}

	var valueStart, valueEnd int
	switch b {
	case '/':
		r.next() // consume second '/'
		valueStart = r.consumed
		for {
			nb, ok := r.peek()
			if !ok {
				if !r.isFinalBlock {
					r.rollbackTo(mark)
					return false, ErrRollback
				}
				valueEnd = r.consumed // comment runs to end of buffer
				break
			}
			if nb == '\n' {
				valueEnd = r.consumed
				r.next() // consume the trailing newline as part of the token
				break
			}
			r.next()
		}
	case '*':
		r.next() // consume '*'
		valueStart = r.consumed
		for {
			nb, ok := r.peek()
			if !ok {
				return false, r.rollbackOr(mark, EndOfCommentNotFound)
			}
			if nb == '*' {
				star := r.consumed
				r.next()
				nb2, ok := r.peek()
				if !ok {
					return false, r.rollbackOr(mark, EndOfCommentNotFound)
				}
				if nb2 == '/' {
					valueEnd = star
					r.next()
					break
				}
				continue
			}
			r.next()
		}
	default:
		return false, r.errByte(ExpectedStartOfValueNotFound, b)
	}

	if r.options == SkipComments {
		return false, nil
	}
	r.commitValue(Comment, start, valueStart, valueEnd)
	r.pushComment(prevKind)
	return true, nil
}
