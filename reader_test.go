// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok_test

import (
	"io"
	"testing"

	"github.com/creachadair/jtok"
	"github.com/google/go-cmp/cmp"
)

func scanAll(t *testing.T, input string) ([]jtok.Kind, []string, error) {
	t.Helper()
	r := jtok.NewReader([]byte(input), true, nil)
	var kinds []jtok.Kind
	var values []string
	for {
		err := r.Advance()
		if err == io.EOF {
			return kinds, values, nil
		} else if err != nil {
			return kinds, values, err
		}
		kinds = append(kinds, r.TokenKind())
		values = append(values, string(r.Value()))
	}
}

func TestReader_Tokens(t *testing.T) {
	tests := []struct {
		input string
		want  []jtok.Kind
	}{
		{"", nil},
		{"  ", nil},
		{"\n\n  \n", nil},

		{"true", []jtok.Kind{jtok.True}},
		{"false", []jtok.Kind{jtok.False}},
		{"null", []jtok.Kind{jtok.Null}},
		{"0", []jtok.Kind{jtok.Number}},
		{"-15", []jtok.Kind{jtok.Number}},
		{"3.25e-5", []jtok.Kind{jtok.Number}},
		{`"a b c"`, []jtok.Kind{jtok.String}},

		{"{}", []jtok.Kind{jtok.StartObject, jtok.EndObject}},
		{"[]", []jtok.Kind{jtok.StartArray, jtok.EndArray}},

		{`{"a": true, "b":[null, 1, 0.5]}`, []jtok.Kind{
			jtok.StartObject,
			jtok.PropertyName, jtok.True,
			jtok.PropertyName,
			jtok.StartArray, jtok.Null, jtok.Number, jtok.Number, jtok.EndArray,
			jtok.EndObject,
		}},

		{`[1, [2, [3, [4]]]]`, []jtok.Kind{
			jtok.StartArray, jtok.Number,
			jtok.StartArray, jtok.Number,
			jtok.StartArray, jtok.Number,
			jtok.StartArray, jtok.Number, jtok.EndArray,
			jtok.EndArray,
			jtok.EndArray,
			jtok.EndArray,
		}},
	}

	for _, test := range tests {
		got, _, err := scanAll(t, test.input)
		if err != nil {
			t.Errorf("Input %#q: Advance failed: %v", test.input, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input %#q: tokens (-want +got):\n%s", test.input, diff)
		}
	}
}

func TestReader_TrailingData(t *testing.T) {
	_, _, err := scanAll(t, "true false")
	if err == nil {
		t.Fatal("Advance: got nil error, want ExpectedEndAfterSingleJson")
	}
	if reason, ok := jtok.ReasonOf(err); !ok || reason != jtok.ExpectedEndAfterSingleJson {
		t.Errorf("Advance: got reason %v, want ExpectedEndAfterSingleJson", reason)
	}
}

func TestReader_Values(t *testing.T) {
	tests := []struct {
		input string
		kind  jtok.Kind
		value string
	}{
		{`"a\tb c\n"`, jtok.String, `a\tb c\n`},
		{`0`, jtok.Number, `0`},
		{`-0.001E-100`, jtok.Number, `-0.001E-100`},
	}
	for _, test := range tests {
		r := jtok.NewReader([]byte(test.input), true, nil)
		if err := r.Advance(); err != nil {
			t.Fatalf("Input %#q: Advance failed: %v", test.input, err)
		}
		if r.TokenKind() != test.kind {
			t.Errorf("Input %#q: kind: got %v, want %v", test.input, r.TokenKind(), test.kind)
		}
		if got := string(r.Value()); got != test.value {
			t.Errorf("Input %#q: value: got %#q, want %#q", test.input, got, test.value)
		}
	}
}

func TestReader_PropertyNames(t *testing.T) {
	r := jtok.NewReader([]byte(`{"key" : 1}`), true, nil)
	mustAdvance(t, r, jtok.StartObject)
	mustAdvance(t, r, jtok.PropertyName)
	if got, want := string(r.Value()), "key"; got != want {
		t.Errorf("PropertyName value: got %#q, want %#q", got, want)
	}
	mustAdvance(t, r, jtok.Number)
	mustAdvance(t, r, jtok.EndObject)
}

func mustAdvance(t *testing.T, r *jtok.Reader, want jtok.Kind) {
	t.Helper()
	if err := r.Advance(); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if got := r.TokenKind(); got != want {
		t.Fatalf("Advance: got %v, want %v", got, want)
	}
}

func TestReader_Comments(t *testing.T) {
	tests := []struct {
		input string
		kinds []jtok.Kind
		coms  []string
	}{
		{"/* block comment */\n\n\n", []jtok.Kind{jtok.Comment}, []string{"/* block comment */"}},
		{"// line 1\n// line 2\n", []jtok.Kind{jtok.Comment}, []string{"// line 1"}},
		{"// line at EOF", []jtok.Kind{jtok.Comment}, []string{"// line at EOF"}},
		{`{
 "x": 1, // howdy do
 "y" /* hide me */ : 2.0 }`, []jtok.Kind{
			jtok.StartObject, jtok.PropertyName, jtok.Number, jtok.Comment,
			jtok.PropertyName, jtok.Comment, jtok.Number, jtok.EndObject,
		}, []string{"// howdy do", "/* hide me */"}},
	}

	for _, test := range tests {
		r := jtok.NewReader([]byte(test.input), true, nil)
		r.SetOptions(jtok.AllowComments)
		var kinds []jtok.Kind
		var coms []string
		for {
			err := r.Advance()
			if err == io.EOF {
				break
			} else if err != nil {
				t.Fatalf("Input %#q: Advance failed: %v", test.input, err)
			}
			kinds = append(kinds, r.TokenKind())
			if r.TokenKind() == jtok.Comment {
				coms = append(coms, string(r.Value()))
			}
		}
		if diff := cmp.Diff(test.kinds, kinds); diff != "" {
			t.Errorf("Input %#q: tokens (-want +got):\n%s", test.input, diff)
		}
		if diff := cmp.Diff(test.coms, coms); diff != "" {
			t.Errorf("Input %#q: comments (-want +got):\n%s", test.input, diff)
		}
	}
}

func TestReader_SkipComments(t *testing.T) {
	r := jtok.NewReader([]byte(`[1, /* x */ 2]`), true, nil)
	r.SetOptions(jtok.SkipComments)
	mustAdvance(t, r, jtok.StartArray)
	mustAdvance(t, r, jtok.Number)
	mustAdvance(t, r, jtok.Number)
	mustAdvance(t, r, jtok.EndArray)
}

func TestReader_CommentsRejectedByDefault(t *testing.T) {
	r := jtok.NewReader([]byte(`[1, // oops
2]`), true, nil)
	mustAdvance(t, r, jtok.StartArray)
	mustAdvance(t, r, jtok.Number)
	if err := r.Advance(); err == nil {
		t.Fatal("Advance: got nil error, want a syntax error for the comment")
	}
}

func TestReader_DepthLimit(t *testing.T) {
	input := "[[[[]]]]" // 4 levels deep
	r := jtok.NewReader([]byte(input), true, nil)
	r.SetMaxDepth(2)
	mustAdvance(t, r, jtok.StartArray)
	mustAdvance(t, r, jtok.StartArray)
	err := r.Advance()
	if err == nil {
		t.Fatal("Advance: got nil error, want ArrayDepthTooLarge")
	}
	if reason, ok := jtok.ReasonOf(err); !ok || reason != jtok.ArrayDepthTooLarge {
		t.Errorf("Advance: got reason %v, want ArrayDepthTooLarge", reason)
	}
}

func TestReader_DefaultDepthLimit(t *testing.T) {
	const n = jtok.DefaultMaxDepth + 1 // one level past the un-overridden ceiling
	var buf []byte
	for i := 0; i < n; i++ {
		buf = append(buf, '[')
	}
	r := jtok.NewReader(buf, true, nil)
	for i := 0; i < jtok.DefaultMaxDepth; i++ {
		mustAdvance(t, r, jtok.StartArray)
	}
	err := r.Advance()
	if err == nil {
		t.Fatal("Advance: got nil error, want ArrayDepthTooLarge")
	}
	if reason, ok := jtok.ReasonOf(err); !ok || reason != jtok.ArrayDepthTooLarge {
		t.Errorf("Advance: got reason %v, want ArrayDepthTooLarge", reason)
	}
}

func TestReader_DeepNestingBeyondBitmask(t *testing.T) {
	const n = 100 // exceeds the 64-bit container mask capacity
	var buf []byte
	for i := 0; i < n; i++ {
		buf = append(buf, '[')
	}
	for i := 0; i < n; i++ {
		buf = append(buf, ']')
	}
	r := jtok.NewReader(buf, true, nil)
	r.SetMaxDepth(n)
	for i := 0; i < n; i++ {
		mustAdvance(t, r, jtok.StartArray)
	}
	for i := 0; i < n; i++ {
		mustAdvance(t, r, jtok.EndArray)
	}
	if err := r.Advance(); err != io.EOF {
		t.Errorf("Advance: got %v, want io.EOF", err)
	}
}

func TestReader_MismatchedClosers(t *testing.T) {
	r := jtok.NewReader([]byte(`[1, 2}`), true, nil)
	mustAdvance(t, r, jtok.StartArray)
	mustAdvance(t, r, jtok.Number)
	mustAdvance(t, r, jtok.Number)
	err := r.Advance()
	if err == nil {
		t.Fatal("Advance: got nil error, want ObjectEndWithinArray")
	}
	if reason, ok := jtok.ReasonOf(err); !ok || reason != jtok.ObjectEndWithinArray {
		t.Errorf("Advance: got reason %v, want ObjectEndWithinArray", reason)
	}
}

func TestReader_LeadingZero(t *testing.T) {
	_, _, err := scanAll(t, "01")
	if err == nil {
		t.Fatal("Advance: got nil error, want ExpectedEndOfDigitNotFound")
	}
}

// TestReader_MissingCommaInArray is scenario 7 from spec.md §8: "[1 2]" is
// malformed because a number must be followed by a delimiter, not another
// value.
func TestReader_MissingCommaInArray(t *testing.T) {
	r := jtok.NewReader([]byte(`[1 2]`), true, nil)
	mustAdvance(t, r, jtok.StartArray)
	mustAdvance(t, r, jtok.Number)
	err := r.Advance()
	if err == nil {
		t.Fatal("Advance: got nil error, want ExpectedEndOfDigitNotFound or FoundInvalidCharacter")
	}
	// spec.md §8 scenario 7 permits either reason here: "1" is a complete
	// number delimited by the space, so the failure surfaces one token later,
	// when "2" appears where a comma or closing bracket was expected.
	if reason, ok := jtok.ReasonOf(err); !ok || (reason != jtok.ExpectedEndOfDigitNotFound && reason != jtok.FoundInvalidCharacter) {
		t.Errorf("Advance: got reason %v, want ExpectedEndOfDigitNotFound or FoundInvalidCharacter", reason)
	}
}

// TestReader_InvalidHexEscape is scenario 8 from spec.md §8: "\u00G0" is
// malformed because 'G' is not a hex digit.
func TestReader_InvalidHexEscape(t *testing.T) {
	_, _, err := scanAll(t, `"\u00G0"`)
	if err == nil {
		t.Fatal("Advance: got nil error, want InvalidCharacterWithinString")
	}
	e, ok := err.(*jtok.Error)
	if !ok {
		t.Fatalf("error is not *jtok.Error: %v", err)
	}
	if e.Reason != jtok.InvalidCharacterWithinString {
		t.Errorf("Advance: got reason %v, want InvalidCharacterWithinString", e.Reason)
	}
	if e.Byte != 'G' {
		t.Errorf("Advance: got offending byte %q, want 'G'", e.Byte)
	}
}

func TestReader_RawStringPreservesEscapes(t *testing.T) {
	// Scenario 3 from spec.md §8: the raw value slice keeps escapes literal,
	// unexpanded.
	r := jtok.NewReader([]byte(`"he said \"hi\""`), true, nil)
	mustAdvance(t, r, jtok.String)
	want := `he said \"hi\"`
	if got := string(r.Value()); got != want {
		t.Errorf("Value: got %#q, want %#q", got, want)
	}
}

func TestReader_RollbackRestoresTokenKind(t *testing.T) {
	r := jtok.NewReader([]byte(`{"a":1`), false, nil)
	mustAdvance(t, r, jtok.StartObject)
	mustAdvance(t, r, jtok.PropertyName)
	err := r.Advance()
	if err != jtok.ErrRollback {
		t.Fatalf("Advance: got %v, want ErrRollback", err)
	}
	if got := r.TokenKind(); got != jtok.PropertyName {
		t.Errorf("after rollback, TokenKind: got %v, want PropertyName (last committed token)", got)
	}
}

func TestReader_Error_Format(t *testing.T) {
	_, _, err := scanAll(t, "[1, 2}")
	if err == nil {
		t.Fatal("Advance: got nil error, want an error")
	}
	if got := err.Error(); got == "" {
		t.Error("Error(): got empty string")
	}
}

func TestReader_Location(t *testing.T) {
	r := jtok.NewReader([]byte("{ \"x\": 1 }"), true, nil)
	mustAdvance(t, r, jtok.StartObject)
	loc := r.Location()
	if loc.Pos != 0 || loc.First.Line != 1 || loc.First.Column != 0 {
		t.Errorf("Location: got %+v, want Pos=0 Line=1 Column=0", loc)
	}
	mustAdvance(t, r, jtok.PropertyName)
	loc = r.Location()
	if loc.First.Column != 2 {
		t.Errorf("PropertyName column: got %d, want 2", loc.First.Column)
	}
}

// TestReader_Incremental feeds the same document through a Reader a few
// bytes at a time, carrying State across each refill, and checks that the
// reassembled token and value sequence matches a single-shot scan.
func TestReader_Incremental(t *testing.T) {
	full := []byte(`{"alpha": [1, 2, 3], "beta": "a long string value", "gamma": null}`)

	wantKinds, wantValues, err := scanAll(t, string(full))
	if err != nil {
		t.Fatalf("reference scan failed: %v", err)
	}

	const chunk = 7
	var kinds []jtok.Kind
	var values []string

	var pending []byte
	var st *jtok.State
	pos := 0
	for {
		end := pos + chunk
		isLast := false
		if end >= len(full) {
			end = len(full)
			isLast = true
		}
		pending = append(pending, full[pos:end]...)
		pos = end

		r := jtok.NewReader(pending, isLast, st)
		reachedEOF := false
		for {
			err := r.Advance()
			if err == jtok.ErrRollback {
				break
			} else if err == io.EOF {
				reachedEOF = true
				break
			} else if err != nil {
				t.Fatalf("Advance failed: %v", err)
			}
			kinds = append(kinds, r.TokenKind())
			values = append(values, string(r.Copy()))
		}
		if reachedEOF {
			break
		}
		snap := r.State()
		st = &snap
		pending = append([]byte(nil), pending[r.Consumed():]...)
	}

	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Errorf("Incremental tokens (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantValues, values); diff != "" {
		t.Errorf("Incremental values (-want +got):\n%s", diff)
	}
}

func TestQuoteUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", `""`},
		{" ", `" "`},
		{"a\t\nb", `"a\t\nb"`},
		{"\x00\x01\x02", `"\u0000\u0001\u0002"`},
	}
	for _, test := range tests {
		got := jtok.Quote(test.input)
		if got != test.want {
			t.Errorf("Quote(%#q): got %#q, want %#q", test.input, got, test.want)
		}
	}

	unq := []struct {
		input string
		want  string
		fail  bool
	}{
		{``, ``, true},
		{`"missing quote`, ``, true},
		{`""`, ``, false},
		{`"ok go"`, "ok go", false},
		{`"abc\ndef"`, "abc\ndef", false},
		{`"a & b"`, "a & b", false},
	}
	for _, test := range unq {
		got, err := jtok.Unquote([]byte(test.input))
		if (err != nil) != test.fail {
			t.Errorf("Unquote(%#q): err = %v, want fail=%v", test.input, err, test.fail)
			continue
		}
		if err == nil {
			if got := string(got); got != test.want {
				t.Errorf("Unquote(%#q): got %#q, want %#q", test.input, got, test.want)
			}
		}
	}
}
