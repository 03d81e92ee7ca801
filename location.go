// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import "fmt"

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (p LineCol) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// A Location describes the complete location of the current token, including
// its byte span and the line/column of its first byte.
type Location struct {
	Span
	First LineCol
}
