// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

// Skip advances past the value at the current token without the caller
// needing to visit its children individually.
//
// If the current token is a PropertyName, Skip advances once, positioning
// the Reader on the member's value (which may itself need a further Skip if
// it is a container). If the current token is a StartObject or StartArray,
// Skip advances repeatedly until the matching EndObject/EndArray has been
// emitted. For any other token kind, Skip is a no-op.
func (r *Reader) Skip() error {
	switch r.tokenKind {
	case PropertyName:
		return r.Advance()
	case StartObject, StartArray:
		depth0 := r.depth
		for {
			if err := r.Advance(); err != nil {
				return err
			}
			if r.depth < depth0 {
				return nil
			}
		}
	default:
		return nil
	}
}
