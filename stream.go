// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import "io"

// Anchor represents a location in the token stream, reporting the token kind,
// contents, and position of the event currently being delivered to a
// Handler.
type Anchor interface {
	TokenKind() Kind    // the kind of the current token
	Text() []byte       // a view of the raw (undecoded) value of the token
	Copy() []byte       // a copy of the raw value of the token
	Location() Location // the location of the token
}

// Text returns the same slice as Value, satisfying the Anchor interface
// under the name a push-style Handler expects.
func (r *Reader) Text() []byte { return r.Value() }

// Copy returns a freshly allocated copy of Value. Unlike Value, the result
// remains valid after the Reader's buffer is reused or discarded.
func (r *Reader) Copy() []byte {
	v := r.Value()
	if v == nil {
		return nil
	}
	return append([]byte(nil), v...)
}

// A Handler handles events from parsing a token stream. If a method reports
// an error, parsing stops and that error is returned to the caller. Events
// are delivered as tokens are read; the Reader rejects a mismatched closer,
// so every EndObject or EndArray matches the most recently opened container,
// but a malformed document still delivers the events that precede the error.
//
// The Anchor argument to a Handler method is only valid for the duration of
// that method call; a handler that needs to retain the text or location
// after it returns must call Copy or otherwise save the data it needs.
type Handler interface {
	// Begin a new object, whose open brace is at loc.
	BeginObject(loc Anchor) error

	// End the most recently opened object, whose close brace is at loc.
	EndObject(loc Anchor) error

	// Begin a new array, whose open bracket is at loc.
	BeginArray(loc Anchor) error

	// End the most recently opened array, whose close bracket is at loc.
	EndArray(loc Anchor) error

	// Begin a new object member, whose key is at loc. The text of the key is
	// the raw bytes between its quotation marks; escape sequences in it are
	// not expanded.
	BeginMember(loc Anchor) error

	// End the current object member. loc is positioned at the last token of
	// the member's value (the scalar itself, or the closer of a container).
	EndMember(loc Anchor) error

	// Report a scalar data value (String, Number, True, False, or Null) at
	// the given location. The text of a String token is the raw bytes
	// between its quotation marks, escapes not expanded.
	Value(loc Anchor) error

	// EndOfInput reports the end of the token stream.
	EndOfInput(loc Anchor)
}

// CommentHandler is an optional interface a Handler may implement to observe
// comment tokens. If the handler does not implement this interface, comment
// tokens are silently discarded by the Stream regardless of the comment mode
// configured on the underlying Reader.
type CommentHandler interface {
	// Comment reports the line or block comment at the given location. The
	// text of a line comment excludes its leading "//" and the trailing
	// newline; the text of a block comment excludes its "/*" and "*/".
	Comment(loc Anchor)
}

// frame tracks one level of container nesting while a Stream replays a
// Reader's tokens to a Handler, so the Handler sees a correctly paired
// BeginMember/EndMember around each object member regardless of how deeply
// its value is nested.
type frame struct {
	isObject   bool
	memberOpen bool
}

// Stream replays the tokens produced by a Reader as push-style events
// delivered to a Handler, restoring the BeginMember/EndMember pairing that
// the Reader's flat token sequence leaves implicit.
//
// A Stream assumes its underlying Reader was constructed with
// isFinalBlock == true; it drives the Reader to completion in one Parse (or
// ParseOne) call and does not itself support resuming across a buffer
// refill. Callers who need incremental delivery across partial buffers
// should drive a Reader directly and flush completed containers themselves.
type Stream struct {
	r      *Reader
	frames []frame
}

// NewStream constructs a Stream that replays the tokens of r.
func NewStream(r *Reader) *Stream { return &Stream{r: r} }

// Parse drives the underlying Reader to the end of the input, delivering
// events to h as each token is read. It returns nil once EndOfInput has been
// delivered, or the first error returned either by the Reader (a *Error) or
// by a Handler method.
func (s *Stream) Parse(h Handler) error {
	for {
		if err := s.step(h); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// ParseOne drives the underlying Reader through exactly one top-level value,
// delivering events to h, then returns without waiting for EndOfInput. If
// the input holds no value at all, it returns io.EOF.
func (s *Stream) ParseOne(h Handler) error {
	first := true
	for {
		err := s.step(h)
		if err == io.EOF {
			return io.EOF
		} else if err != nil {
			return err
		}
		if s.r.TokenKind() == Comment {
			continue // a comment is not a value; keep reading
		}
		if first {
			first = false
			if s.r.TokenKind() != StartObject && s.r.TokenKind() != StartArray {
				return nil // a single scalar value is already complete
			}
			continue
		}
		if len(s.frames) == 0 {
			return nil // the outermost container just closed
		}
	}
}

// step advances the Reader by one token and dispatches it to h, maintaining
// the member-frame bookkeeping. It returns io.EOF once EndOfInput has been
// delivered.
func (s *Stream) step(h Handler) error {
	err := s.r.Advance()
	if err == io.EOF {
		h.EndOfInput(s.r)
		return io.EOF
	} else if err != nil {
		return err
	}

	switch s.r.TokenKind() {
	case StartObject:
		if err := h.BeginObject(s.r); err != nil {
			return err
		}
		s.frames = append(s.frames, frame{isObject: true})
		return nil

	case StartArray:
		if err := h.BeginArray(s.r); err != nil {
			return err
		}
		s.frames = append(s.frames, frame{isObject: false})
		return nil

	case EndObject:
		s.frames = s.frames[:len(s.frames)-1]
		if err := h.EndObject(s.r); err != nil {
			return err
		}
		return s.closeMemberIfOpen(h)

	case EndArray:
		s.frames = s.frames[:len(s.frames)-1]
		if err := h.EndArray(s.r); err != nil {
			return err
		}
		return s.closeMemberIfOpen(h)

	case PropertyName:
		top := &s.frames[len(s.frames)-1]
		if top.memberOpen {
			if err := h.EndMember(s.r); err != nil {
				return err
			}
		}
		if err := h.BeginMember(s.r); err != nil {
			return err
		}
		top.memberOpen = true
		return nil

	case Comment:
		if ch, ok := h.(CommentHandler); ok {
			ch.Comment(s.r)
		}
		return nil

	default: // String, Number, True, False, Null
		if err := h.Value(s.r); err != nil {
			return err
		}
		return s.closeMemberIfOpen(h)
	}
}

// closeMemberIfOpen delivers EndMember when the value (scalar or container)
// that just completed was the value of an open object member.
func (s *Stream) closeMemberIfOpen(h Handler) error {
	if len(s.frames) == 0 {
		return nil
	}
	top := &s.frames[len(s.frames)-1]
	if top.isObject && top.memberOpen {
		top.memberOpen = false
		return h.EndMember(s.r)
	}
	return nil
}
