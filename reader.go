// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"errors"
	"io"
)

// ErrRollback is returned by Advance when the buffer ends in the middle of a
// token and the Reader was constructed with isFinalBlock == false. The
// caller should refill the buffer (carrying the Reader's State forward) and
// retry; the Reader's exported fields are restored to their values as of the
// last successfully committed token.
var ErrRollback = errors.New("jtok: incomplete token, need more input")

// A Reader is a forward-only, pull-based tokenizer over a borrowed byte
// buffer. It never allocates on the steady path and never copies the input:
// every value slice it exposes aliases the caller's buffer directly.
//
// A Reader is not safe for concurrent use. Its zero value is not ready for
// use; construct one with NewReader.
type Reader struct {
	buf      []byte
	consumed int

	tokenStart int
	tokenKind  Kind
	valueStart int
	valueEnd   int

	depthInfo

	lineNumber int
	column     int

	isFinalBlock  bool
	isSingleValue bool

	options CommentMode
}

// DefaultMaxDepth is the nesting depth a fresh Reader allows before
// ObjectDepthTooLarge/ArrayDepthTooLarge is reported, unless overridden with
// SetMaxDepth. It equals the bitmask capacity, so depths up to this bound
// never touch the spillover stack.
const DefaultMaxDepth = bitstackCapacity

// NewReader constructs a Reader over buf. isFinalBlock tells the Reader
// whether buf is the last chunk of the document; if false, a token that runs
// off the end of buf causes Advance to return ErrRollback instead of an
// error. If prior is non-nil, the Reader resumes the state it exported via
// State on a previous, non-final buffer; buf should contain only the bytes
// that follow the ones already consumed.
func NewReader(buf []byte, isFinalBlock bool, prior *State) *Reader {
	r := &Reader{
		buf:          buf,
		isFinalBlock: isFinalBlock,
		options:      Default,
	}
	r.depthInfo.reset(DefaultMaxDepth)
	if prior != nil {
		r.containerMask = prior.containerMask
		r.depth = prior.depth
		r.inObject = prior.inObject
		r.spillStack = append(r.spillStack[:0], prior.spillStack...)
		r.tokenKind = prior.tokenKind
		r.lineNumber = prior.lineNumber
		r.column = prior.column
		r.isSingleValue = prior.isSingleValue
	} else {
		r.lineNumber = 1
	}
	return r
}

// SetOptions configures comment handling. It must be called before the first
// call to Advance to have a well-defined effect on the whole document.
func (r *Reader) SetOptions(mode CommentMode) { r.options = mode }

// Options reports the current comment-handling mode.
func (r *Reader) Options() CommentMode { return r.options }

// SetMaxDepth overrides the nesting depth allowed before
// ObjectDepthTooLarge/ArrayDepthTooLarge is reported. It must be positive.
func (r *Reader) SetMaxDepth(n int) {
	if n <= 0 {
		panic("jtok: max depth must be positive")
	}
	r.maxDepth = n
}

// MaxDepth reports the currently configured maximum nesting depth.
func (r *Reader) MaxDepth() int { return r.maxDepth }

// TokenKind returns the kind of the most recently read token.
func (r *Reader) TokenKind() Kind { return r.tokenKind }

// Depth returns the current nesting depth. For EndObject/EndArray tokens,
// depth has already been decremented past the container that just closed.
func (r *Reader) Depth() int { return r.depth }

// TokenStartIndex returns the byte offset, within the buffer passed to
// NewReader, of the first content byte of the current token.
func (r *Reader) TokenStartIndex() int { return r.tokenStart }

// Consumed returns the number of bytes of the buffer consumed so far.
func (r *Reader) Consumed() int { return r.consumed }

// LineNumber returns the 1-based line number of the start of the current
// position.
func (r *Reader) LineNumber() int { return r.lineNumber }

// Column returns the 0-based column offset of the start of the current
// position.
func (r *Reader) Column() int { return r.column }

// Value returns the raw, undecoded byte slice carried by the current token.
// It is empty for tokens that carry no payload (structural tokens and the
// true/false/null literals). The returned slice aliases the buffer passed to
// NewReader and is only valid until the buffer is reused or discarded.
func (r *Reader) Value() []byte {
	if !r.tokenKind.hasValue() {
		return nil
	}
	return r.buf[r.valueStart:r.valueEnd]
}

// Location reports the span and starting line/column of the current token.
func (r *Reader) Location() Location {
	return Location{
		Span:  Span{Pos: r.tokenStart, End: r.consumed},
		First: LineCol{Line: r.lineNumber, Column: r.column},
	}
}

// Advance reads the next token from the buffer. It returns nil when a token
// was read successfully (the caller should consult TokenKind and Value), io.EOF
// when the document is complete and no further tokens remain, ErrRollback
// when the buffer ends mid-token and the Reader is not final, or a *Error
// describing a syntax error.
func (r *Reader) Advance() (err error) {
	prev := r.tokenKind
	if prev == Comment {
		prev = r.popComment()
		defer func() {
			if err == ErrRollback {
				r.pushComment(prev) // the Comment token is still current
			}
		}()
	}
	switch prev {
	case None:
		return r.readFirstToken()
	case StartObject:
		return r.afterStartObject()
	case StartArray:
		return r.afterStartArray()
	case PropertyName:
		return r.afterPropertyName()
	case commaPending:
		return r.afterComma()
	default: // String, Number, True, False, Null, EndObject, EndArray
		return r.consumeNext()
	}
}

// commitToken records the outcome of a successful recognizer: the token kind
// and (for value-bearing kinds) the slice bounds, leaving tokenStart at the
// byte that begins the token's content.
func (r *Reader) commitToken(kind Kind, start int) {
	r.tokenKind = kind
	r.tokenStart = start
}

func (r *Reader) commitValue(kind Kind, start, valueStart, valueEnd int) {
	r.tokenKind = kind
	r.tokenStart = start
	r.valueStart = valueStart
	r.valueEnd = valueEnd
}

// rollbackTo restores the cursor to a previously committed position. mark
// must have been produced by r.mark() before any mutation for this attempt.
func (r *Reader) rollbackTo(mark cursorMark) {
	r.consumed = mark.consumed
	r.lineNumber = mark.lineNumber
	r.column = mark.column
}

type cursorMark struct {
	consumed   int
	lineNumber int
	column     int
}

func (r *Reader) mark() cursorMark {
	return cursorMark{consumed: r.consumed, lineNumber: r.lineNumber, column: r.column}
}

// peek returns the byte at the current cursor without consuming it.
func (r *Reader) peek() (byte, bool) {
	if r.consumed >= len(r.buf) {
		return 0, false
	}
	return r.buf[r.consumed], true
}

// next reads and consumes one byte, updating line/column bookkeeping.
func (r *Reader) next() (byte, bool) {
	b, ok := r.peek()
	if !ok {
		return 0, false
	}
	r.consumed++
	if b == '\n' {
		r.lineNumber++
		r.column = 0
	} else {
		r.column++
	}
	return b, true
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// skipWhitespace advances over run of JSON whitespace, returning the next
// non-whitespace byte, or ok==false at end of buffer.
func (r *Reader) skipWhitespace() (byte, bool) {
	for {
		b, ok := r.peek()
		if !ok || !isWhitespace(b) {
			return b, ok
		}
		r.next()
	}
}

// err builds a *Error anchored at the current cursor position.
func (r *Reader) err(reason Reason) error {
	return &Error{Reason: reason, Line: r.lineNumber, Column: r.column, Offset: r.consumed}
}

func (r *Reader) errByte(reason Reason, b byte) error {
	return &Error{Reason: reason, Line: r.lineNumber, Column: r.column, Offset: r.consumed, Byte: b, hasByte: true}
}

// rollbackOr returns ErrRollback when the Reader is not final, or the given
// error when it is.
func (r *Reader) rollbackOr(mark cursorMark, reason Reason) error {
	if !r.isFinalBlock {
		r.rollbackTo(mark)
		return ErrRollback
	}
	return r.err(reason)
}

// awaitValueKind dispatches on the byte that opens a JSON value. At the top
// level, readFirstToken handles '{' and '[' itself and calls this only for a
// scalar. commentPrev is
// the token kind to push to the spill stack if a comment interrupts here.
func (r *Reader) awaitValueKind(commentPrev Kind) error {
	mark := r.mark()
	b, ok := r.skipWhitespace()
	if !ok {
		return r.rollbackOr(mark, ExpectedStartOfValueNotFound)
	}
	if b == '/' && r.options != Default {
		emitted, err := r.handleComment(commentPrev, mark)
		if emitted || err != nil {
			return err
		}
		return r.awaitValueKind(commentPrev)
	}
	switch {
	case b == '"':
		return r.scanString(false)
	case b == '-' || isDigit(b):
		return r.scanNumber(r.depth == 0)
	case b == 't':
		return r.scanLiteral(True, "true", ExpectedTrue)
	case b == 'f':
		return r.scanLiteral(False, "false", ExpectedFalse)
	case b == 'n':
		return r.scanLiteral(Null, "null", ExpectedNull)
	case b == '{':
		return r.startContainerToken(true)
	case b == '[':
		return r.startContainerToken(false)
	default:
		return r.errByte(ExpectedStartOfValueNotFound, b)
	}
}

func (r *Reader) startContainerToken(isObject bool) error {
	start := r.consumed
	r.next() // consume '{' or '['
	reason, overflow := r.startContainer(isObject)
	if overflow {
		return r.err(reason)
	}
	if isObject {
		r.commitToken(StartObject, start)
	} else {
		r.commitToken(StartArray, start)
	}
	return nil
}

// readFirstToken handles the very first Advance call of a document.
func (r *Reader) readFirstToken() error {
	mark := r.mark()
	b, ok := r.skipWhitespace()
	if !ok {
		if r.isFinalBlock {
			return io.EOF // empty document: legal, zero tokens
		}
		r.rollbackTo(mark)
		return ErrRollback
	}
	if b == '/' && r.options != Default {
		emitted, err := r.handleComment(None, mark)
		if emitted || err != nil {
			return err
		}
		return r.readFirstToken()
	}
	switch b {
	case '{':
		return r.startContainerToken(true)
	case '[':
		return r.startContainerToken(false)
	default:
		r.isSingleValue = true
		return r.awaitValueKind(None)
	}
}

// afterStartObject handles the token following a StartObject: a property
// name string, or an immediate close brace for an empty object.
func (r *Reader) afterStartObject() error {
	mark := r.mark()
	b, ok := r.skipWhitespace()
	if !ok {
		return r.rollbackOr(mark, InvalidEndOfJson)
	}
	if b == '/' && r.options != Default {
		emitted, err := r.handleComment(StartObject, mark)
		if emitted || err != nil {
			return err
		}
		return r.afterStartObject()
	}
	if b == '}' {
		return r.endContainerToken(true)
	}
	if b == '"' {
		return r.scanString(true)
	}
	return r.errByte(ExpectedStartOfPropertyNotFound, b)
}

// afterStartArray handles the token following a StartArray: a value, or an
// immediate close bracket for an empty array.
func (r *Reader) afterStartArray() error {
	mark := r.mark()
	b, ok := r.skipWhitespace()
	if !ok {
		return r.rollbackOr(mark, InvalidEndOfJson)
	}
	if b == '/' && r.options != Default {
		emitted, err := r.handleComment(StartArray, mark)
		if emitted || err != nil {
			return err
		}
		return r.afterStartArray()
	}
	if b == ']' {
		return r.endContainerToken(false)
	}
	return r.awaitValueKind(StartArray)
}

// afterPropertyName handles the token following a PropertyName: a value,
// after the mandatory colon (already consumed by scanString).
func (r *Reader) afterPropertyName() error {
	return r.awaitValueKind(PropertyName)
}

func (r *Reader) endContainerToken(isObject bool) error {
	start := r.consumed
	r.next() // consume '}' or ']'
	reason, ok := r.endContainer(isObject)
	if !ok {
		return r.err(reason)
	}
	if isObject {
		r.commitToken(EndObject, start)
	} else {
		r.commitToken(EndArray, start)
	}
	return nil
}

// consumeNext handles the token following any value or End* token: either
// the end of the document, a comma that continues the current container, or
// the matching closer of the current container.
func (r *Reader) consumeNext() error {
	mark := r.mark()
	b, ok := r.skipWhitespace()
	if !ok {
		if r.depth == 0 {
			if r.isFinalBlock {
				return io.EOF
			}
			r.rollbackTo(mark)
			return ErrRollback
		}
		return r.rollbackOr(mark, InvalidEndOfJson)
	}
	if b == '/' && r.options != Default {
		emitted, err := r.handleComment(r.tokenKind, mark)
		if emitted || err != nil {
			return err
		}
		return r.consumeNext()
	}
	if r.depth == 0 {
		return r.errByte(ExpectedEndAfterSingleJson, b)
	}
	if b == ',' {
		r.next()
		err := r.afterComma()
		if err == ErrRollback {
			// The comma belongs to no committed token, so give it back too.
			r.rollbackTo(mark)
		}
		return err
	}
	if b == '}' {
		return r.endContainerToken(true)
	}
	if b == ']' {
		return r.endContainerToken(false)
	}
	return r.errByte(FoundInvalidCharacter, b)
}

// afterComma handles the token following a comma: the next property name
// (in an object) or the next value (in an array).
func (r *Reader) afterComma() error {
	if r.inObject {
		mark := r.mark()
		b, ok := r.skipWhitespace()
		if !ok {
			return r.rollbackOr(mark, InvalidEndOfJson)
		}
		if b == '/' && r.options != Default {
			emitted, err := r.handleComment(commaPending, mark)
			if emitted || err != nil {
				return err
			}
			return r.afterComma()
		}
		if b != '"' {
			return r.errByte(ExpectedStartOfPropertyNotFound, b)
		}
		return r.scanString(true)
	}
	return r.awaitValueKind(commaPending)
}

// commaPending is an internal-only pseudo-kind used solely to label the
// spill-stack entry pushed when a comment interrupts immediately after a
// comma; r.tokenKind is never set to this value. Advance recovers it via
// popComment and dispatches it straight to afterComma, since the comma has
// already been consumed.
const commaPending Kind = 255
