// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

// State is an opaque snapshot of the parts of a Reader's state that must
// survive a buffer refill. It carries no reference to the buffer or cursor
// offset of the Reader that produced it — the caller supplies the next
// buffer segment to NewReader directly. Its fields are unexported; callers
// should treat a State as an opaque token to be threaded from one Reader to
// the next, never inspected or constructed by hand.
type State struct {
	containerMask uint64
	depth         int
	inObject      bool
	spillStack    []spillEntry
	tokenKind     Kind
	lineNumber    int
	column        int
	isSingleValue bool
}

// State exports a snapshot of r suitable for resuming parsing with
// NewReader once more input is available. It must only be called after
// Advance has returned ErrRollback (or between any two committed tokens);
// the current token's Value, if any, is not part of the snapshot and must
// be copied by the caller before the buffer is reused.
func (r *Reader) State() State {
	return State{
		containerMask: r.containerMask,
		depth:         r.depth,
		inObject:      r.inObject,
		spillStack:    append([]spillEntry(nil), r.spillStack...),
		tokenKind:     r.tokenKind,
		lineNumber:    r.lineNumber,
		column:        r.column,
		isSingleValue: r.isSingleValue,
	}
}
