// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"errors"
	"fmt"
)

// Reason enumerates the closed set of ways a Reader can reject input, or a
// typed accessor can reject a value slice.
type Reason byte

// Constants defining the valid Reason values. These mirror the enumerated
// reasons in the reference implementation's ExceptionResource-style design:
// each one names a precise grammar position, not a generic "syntax error".
const (
	ObjectDepthTooLarge Reason = iota + 1
	ArrayDepthTooLarge
	ObjectEndWithinArray
	ArrayEndWithinObject
	ExpectedStartOfPropertyNotFound
	ExpectedStartOfPropertyOrValueNotFound
	ExpectedValueAfterPropertyNameNotFound
	ExpectedSeparaterAfterPropertyNameNotFound
	ExpectedStartOfValueNotFound
	ExpectedDigitNotFound
	ExpectedDigitNotFoundEndOfData
	ExpectedNextDigitComponentNotFound
	ExpectedNextDigitEValueNotFound
	ExpectedEndOfDigitNotFound
	ExpectedTrue
	ExpectedFalse
	ExpectedNull
	EndOfStringNotFound
	EndOfCommentNotFound
	InvalidCharacterWithinString
	FoundInvalidCharacter
	InvalidEndOfJson
	ExpectedEndAfterSingleJson
	InvalidCast
)

var reasonStr = map[Reason]string{
	ObjectDepthTooLarge:                         "the maximum object nesting depth was exceeded",
	ArrayDepthTooLarge:                          "the maximum array nesting depth was exceeded",
	ObjectEndWithinArray:                        "'}' found within an array, expected ']'",
	ArrayEndWithinObject:                        "']' found within an object, expected '}'",
	ExpectedStartOfPropertyNotFound:             "expected a property name or '}'",
	ExpectedStartOfPropertyOrValueNotFound:      "expected a property name, value, or closing bracket",
	ExpectedValueAfterPropertyNameNotFound:      "expected a value after the property name",
	ExpectedSeparaterAfterPropertyNameNotFound:  "expected ':' after the property name",
	ExpectedStartOfValueNotFound:                "expected the start of a value",
	ExpectedDigitNotFound:                       "expected a digit",
	ExpectedDigitNotFoundEndOfData:              "expected a digit, found end of data",
	ExpectedNextDigitComponentNotFound:          "expected a digit after the decimal point",
	ExpectedNextDigitEValueNotFound:             "expected a digit after the exponent sign",
	ExpectedEndOfDigitNotFound:                  "expected a delimiter after the number",
	ExpectedTrue:                                "expected the literal 'true'",
	ExpectedFalse:                               "expected the literal 'false'",
	ExpectedNull:                                "expected the literal 'null'",
	EndOfStringNotFound:                         "the string's closing quote was not found",
	EndOfCommentNotFound:                        "the comment's closing '*/' was not found",
	InvalidCharacterWithinString:                "an invalid or unescaped control character was found in a string",
	FoundInvalidCharacter:                       "an unexpected character was found",
	InvalidEndOfJson:                            "the document ended before the structure was closed",
	ExpectedEndAfterSingleJson:                  "unexpected trailing data after a single top-level value",
	InvalidCast:                                 "the value could not be converted to the requested type",
}

func (r Reason) String() string {
	if s, ok := reasonStr[r]; ok {
		return s
	}
	return "unknown reason"
}

// Error is the concrete type of errors reported by a Reader or by a typed
// accessor. It carries enough context to let a caller report a precise
// diagnostic without re-scanning the input.
type Error struct {
	Reason  Reason
	Line    int  // 1-based line number
	Column  int  // 0-based column offset
	Offset  int  // 0-based byte offset into the buffer that produced the error
	Byte    byte // offending byte, if any; zero if not applicable
	hasByte bool
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	if e.hasByte {
		return fmt.Sprintf("%s at %d:%d (byte %q, offset %d)", e.Reason, e.Line, e.Column, e.Byte, e.Offset)
	}
	return fmt.Sprintf("%s at %d:%d (offset %d)", e.Reason, e.Line, e.Column, e.Offset)
}

// ReasonOf returns the Reason carried by err, if err is (or wraps) a *Error.
func ReasonOf(err error) (Reason, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason, true
	}
	return 0, false
}
