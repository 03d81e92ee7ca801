// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jtok implements a forward-only, pull-based JSON tokenizer.
//
// # Reading
//
// The Reader type is a zero-copy lexical scanner over a caller-owned byte
// buffer. Construct a Reader with NewReader and call Advance to iterate over
// the token stream:
//
//	r := jtok.NewReader(buf, true, nil)
//	for {
//		if err := r.Advance(); err == io.EOF {
//			break
//		} else if err != nil {
//			log.Fatal(err)
//		}
//		log.Printf("token %v: %q", r.TokenKind(), r.Value())
//	}
//
// Advance returns io.EOF once the document is fully consumed. Every Value
// slice it returns aliases buf directly; a Reader never allocates on the
// steady path and never copies the input.
//
// # Incremental input
//
// A Reader can be resumed across partial buffers. Construct it with
// isFinalBlock == false while more input may still arrive; if a token runs
// off the end of buf, Advance returns ErrRollback and restores the Reader's
// exported state to the last successfully committed token. Call State to
// capture a snapshot, then pass it to NewReader along with the next buffer
// segment:
//
//	st := r.State()
//	r = jtok.NewReader(nextBuf, isLast, &st)
//
// # Nesting depth
//
// A Reader tracks container nesting in a 64-bit bitmask, falling back to an
// allocated stack only past that depth, so the common case of shallow or
// moderately nested documents never allocates for bookkeeping. SetMaxDepth
// overrides the default limit of 64 levels.
//
// # Comments
//
// By default a Reader rejects "//" and "/* */" comments as malformed JSON.
// SetOptions(AllowComments) surfaces them as Comment tokens instead;
// SetOptions(SkipComments) discards them silently.
//
// # Typed accessors
//
// AsString, AsInt32, AsInt64, AsFloat32, AsFloat64, and AsDecimal convert
// the current Number or String token to a specific Go type, reporting
// InvalidCast if the token's kind or contents don't support the requested
// type. AsNumber converts a Number token to the narrowest of those types
// that represents it exactly.
//
// # Streaming
//
// The Stream type replays a Reader's flat token sequence as push-style
// events delivered to a Handler, restoring the BeginMember/EndMember
// pairing around each object member:
//
//	s := jtok.NewStream(r)
//	if err := s.Parse(handler); err != nil {
//		log.Fatalf("parse failed: %v", err)
//	}
//
// The Handler interface accepts parser events. Its methods correspond to
// the syntax of JSON values:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	member     | BeginMember, EndMember    | "key": value
//	value      | Value                     | true, false, null, number, string
//	--         | EndOfInput                | end of input
//
// Each method is passed an Anchor that reports location and token
// information; the Anchor passed to a Handler method is only valid for the
// duration of that call; use Anchor.Copy to retain its text beyond the
// call.
package jtok
