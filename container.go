// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

// bitstackCapacity is the number of nesting levels tracked in containerMask
// before the Reader falls back to spillStack. A uint64 holds one bit per
// level, innermost container at bit 0.
const bitstackCapacity = 64

// spillEntry records one stack frame once nesting exceeds bitstackCapacity,
// or (under AllowComments) the token kind interrupted by a comment.
type spillEntry struct {
	isObject bool
	isKind   bool // true if this entry records an interrupted token kind rather than a container
	kind     Kind
}

// depthInfo is the subset of Reader state that the container stack mutates.
// It is embedded in Reader directly; the type exists only to group the
// methods below.
type depthInfo struct {
	depth         int
	maxDepth      int
	containerMask uint64
	spillStack    []spillEntry
	inObject      bool
}

func (d *depthInfo) reset(maxDepth int) {
	d.depth = 0
	d.maxDepth = maxDepth
	d.containerMask = 0
	d.spillStack = d.spillStack[:0]
	d.inObject = false
}

// pushComment records the pre-comment token kind on the spill stack so the
// next Advance can restore it once the Comment token has been consumed.
func (d *depthInfo) pushComment(k Kind) {
	d.spillStack = append(d.spillStack, spillEntry{isKind: true, kind: k})
}

// popComment removes and returns the most recently pushed interrupted kind.
// It must only be called when the top of spillStack is a pushComment entry.
func (d *depthInfo) popComment() Kind {
	n := len(d.spillStack) - 1
	k := d.spillStack[n].kind
	d.spillStack = d.spillStack[:n]
	return k
}

// startContainer increments depth and records whether the new innermost
// container is an object. If maxDepth is exceeded it leaves depth unchanged
// and reports overflow with ObjectDepthTooLarge or ArrayDepthTooLarge.
func (d *depthInfo) startContainer(isObject bool) (overflowReason Reason, overflow bool) {
	d.depth++
	if d.depth > d.maxDepth {
		d.depth--
		if isObject {
			return ObjectDepthTooLarge, true
		}
		return ArrayDepthTooLarge, true
	}
	if d.depth <= bitstackCapacity {
		d.containerMask <<= 1
		if isObject {
			d.containerMask |= 1
		}
	} else {
		d.spillStack = append(d.spillStack, spillEntry{isObject: isObject})
	}
	d.inObject = isObject
	return 0, false
}

// endContainer validates that the closer matches the innermost container,
// decrements depth, and updates inObject to reflect the new innermost
// container (meaningless, and not read, once depth reaches 0).
func (d *depthInfo) endContainer(wantObject bool) (mismatch Reason, ok bool) {
	if d.depth == 0 || d.inObject != wantObject {
		if wantObject {
			return ObjectEndWithinArray, false
		}
		return ArrayEndWithinObject, false
	}
	if d.depth > bitstackCapacity {
		// Pop the frame for the container we are closing. The container
		// mask was never touched while depth stayed above the bitstack
		// capacity, so it still holds the correct bits for depth <= 64.
		d.spillStack = d.spillStack[:len(d.spillStack)-1]
		d.depth--
		if d.depth > bitstackCapacity {
			d.inObject = d.spillStack[len(d.spillStack)-1].isObject
		} else {
			d.inObject = d.containerMask&1 != 0
		}
	} else {
		d.containerMask >>= 1
		d.inObject = d.containerMask&1 != 0
		d.depth--
	}
	return 0, true
}
