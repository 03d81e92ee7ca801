// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// castErr builds the InvalidCast error a typed accessor reports when the
// current token cannot be converted to the requested type. Its Offset is the
// start of the current token; its Line and Column are the Reader's current
// position, not the token's start.
func (r *Reader) castErr() error {
	return &Error{Reason: InvalidCast, Line: r.lineNumber, Column: r.column, Offset: r.tokenStart}
}

// AsString returns the raw text of the current String or PropertyName token,
// decoded as UTF-8. Escape sequences are not expanded; use Unquote for that.
func (r *Reader) AsString() (string, error) {
	if r.tokenKind != String && r.tokenKind != PropertyName {
		return "", r.castErr()
	}
	return string(r.Value()), nil
}

// AsInt32 parses the current Number token as a base-10 int32. The entire
// value slice must be consumed by the conversion.
func (r *Reader) AsInt32() (int32, error) {
	if r.tokenKind != Number {
		return 0, r.castErr()
	}
	n, err := strconv.ParseInt(string(r.Value()), 10, 32)
	if err != nil {
		return 0, r.castErr()
	}
	return int32(n), nil
}

// AsInt64 parses the current Number token as a base-10 int64. The entire
// value slice must be consumed by the conversion.
func (r *Reader) AsInt64() (int64, error) {
	if r.tokenKind != Number {
		return 0, r.castErr()
	}
	n, err := strconv.ParseInt(string(r.Value()), 10, 64)
	if err != nil {
		return 0, r.castErr()
	}
	return n, nil
}

// AsFloat64 parses the current Number token as a float64, using scientific
// notation if the slice contains an exponent and standard notation
// otherwise. The entire value slice must be consumed by the conversion.
func (r *Reader) AsFloat64() (float64, error) {
	if r.tokenKind != Number {
		return 0, r.castErr()
	}
	f, err := strconv.ParseFloat(string(r.Value()), 64)
	if err != nil {
		return 0, r.castErr()
	}
	return f, nil
}

// AsFloat32 is AsFloat64 narrowed to float32.
func (r *Reader) AsFloat32() (float32, error) {
	if r.tokenKind != Number {
		return 0, r.castErr()
	}
	f, err := strconv.ParseFloat(string(r.Value()), 32)
	if err != nil {
		return 0, r.castErr()
	}
	return float32(f), nil
}

// AsDecimal parses the current Number token as an arbitrary-precision
// decimal, preserving digits that a float64 round-trip would lose.
func (r *Reader) AsDecimal() (decimal.Decimal, error) {
	if r.tokenKind != Number {
		return decimal.Decimal{}, r.castErr()
	}
	d, err := decimal.NewFromString(string(r.Value()))
	if err != nil {
		return decimal.Decimal{}, r.castErr()
	}
	return d, nil
}

// AsNumber converts the current Number token to the narrowest type that can
// represent it losslessly, trying int32, then int64, then decimal.Decimal,
// then float64, then float32 in that order. A floating or decimal value
// whose floor equals itself and fits in int32/int64 is narrowed to that
// integer type; callers that need a stable, predictable result type should
// use one of the specific accessors instead.
func (r *Reader) AsNumber() (any, error) {
	if r.tokenKind != Number {
		return nil, r.castErr()
	}
	s := string(r.Value())

	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		return int32(n), nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return narrowDecimal(d), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return narrowFloat64(f), nil
	}
	f32, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return nil, r.castErr()
	}
	return narrowFloat32(float32(f32)), nil
}

func narrowDecimal(d decimal.Decimal) any {
	if !d.IsInteger() {
		return d
	}
	n := d.IntPart()
	if !decimal.NewFromInt(n).Equal(d) {
		return d // n overflowed int64; keep the exact decimal instead
	}
	if n >= math.MinInt32 && n <= math.MaxInt32 {
		return int32(n)
	}
	return n
}

func narrowFloat64(f float64) any {
	if math.Floor(f) == f {
		if f >= math.MinInt32 && f <= math.MaxInt32 {
			return int32(f)
		}
		if f >= math.MinInt64 && f <= math.MaxInt64 {
			return int64(f)
		}
	}
	return f
}

func narrowFloat32(f float32) any {
	if math.Floor(float64(f)) == float64(f) {
		if f >= math.MinInt32 && f <= math.MaxInt32 {
			return int32(f)
		}
		if f >= math.MinInt64 && f <= math.MaxInt64 {
			return int64(f)
		}
	}
	return f
}
