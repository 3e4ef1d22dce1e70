package lang

import (
	"log/slog"
	"strings"
	"unicode"
)

// keywords are reserved words that can never be bare identifiers.
var keywords = map[string]struct{}{
	"rec":     {},
	"let":     {},
	"in":      {},
	"inherit": {},
}

// IsBareIdentifierName reports whether s can be rendered without quotes:
// nonempty, composed only of letters, '-', and '_', and not a keyword.
func IsBareIdentifierName(s string) bool {
	if s == "" {
		return false
	}

	if _, reserved := keywords[s]; reserved {
		return false
	}

	for _, r := range s {
		if !unicode.IsLetter(r) && r != '-' && r != '_' {
			return false
		}
	}

	return true
}

// Unquoted is text guaranteed renderable without quotes.
// The zero value is invalid; construct with [MakeUnquoted].
type Unquoted struct {
	text string
}

// MakeUnquoted validates text and wraps it as an Unquoted.
// It returns ErrInvalidUnquotedString when text is empty, contains a
// character other than a letter, '-', or '_', or is a reserved keyword.
func MakeUnquoted(text string) (Unquoted, error) {
	if !IsBareIdentifierName(text) {
		return Unquoted{}, ErrInvalidUnquotedString.
			With(slog.String("text", text))
	}

	return Unquoted{text: text}, nil
}

// String returns the wrapped text.
func (u Unquoted) String() string { return u.text }

// Static is an exact text value. It may contain characters that require
// quoting when rendered. Concatenation with + is associative and has the
// empty string as identity.
type Static string

// Dynamic is an ordered sequence of parts representing any quoted string
// expression: plain strings (a single literal part), interpolated strings
// (mixed parts), or the empty string (zero parts).
type Dynamic struct {
	Parts []Part
}

// Part is one piece of a Dynamic string: either a literal chunk of text or
// an antiquoted sub-expression.
type Part interface {
	isPart()
}

// LiteralPart is a static chunk of text within a Dynamic string.
type LiteralPart struct {
	Text Static
}

// AntiquotePart is an interpolated sub-expression within a Dynamic string.
type AntiquotePart struct {
	Expr Expression
}

func (LiteralPart) isPart()   {}
func (AntiquotePart) isPart() {}

// StaticDynamic wraps a Static as a single-part Dynamic.
// The empty string becomes the zero-part Dynamic.
func StaticDynamic(s Static) Dynamic {
	if s == "" {
		return Dynamic{}
	}

	return Dynamic{Parts: []Part{LiteralPart{Text: s}}}
}

// ConcatDynamic joins two Dynamic strings part-wise.
// The operation is associative with the zero-part Dynamic as identity.
func ConcatDynamic(a, b Dynamic) Dynamic {
	if len(a.Parts) == 0 {
		return b
	}

	if len(b.Parts) == 0 {
		return a
	}

	parts := make([]Part, 0, len(a.Parts)+len(b.Parts))
	parts = append(parts, a.Parts...)
	parts = append(parts, b.Parts...)

	return Dynamic{Parts: parts}
}

// Normalize merges maximal runs of consecutive literal parts into single
// literal parts, concatenating their text in order. Antiquote parts are
// untouched and relative order is preserved. Empty literal parts are
// dropped. The operation is idempotent.
func Normalize(d Dynamic) Dynamic {
	var (
		parts    []Part
		pending  strings.Builder
		buffered bool
	)

	flush := func() {
		if buffered && pending.Len() > 0 {
			parts = append(parts, LiteralPart{Text: Static(pending.String())})
		}

		pending.Reset()

		buffered = false
	}

	for _, part := range d.Parts {
		switch p := part.(type) {
		case LiteralPart:
			pending.WriteString(string(p.Text))

			buffered = true

		case AntiquotePart:
			flush()

			parts = append(parts, p)
		}
	}

	flush()

	return Dynamic{Parts: parts}
}

// ToStatic returns the statically-known text of d: the empty string for
// zero parts, or the sole literal's text for exactly one literal part.
// It reports false when d contains actual interpolation or more than one
// part, in which case the text cannot be statically known.
func ToStatic(d Dynamic) (Static, bool) {
	switch len(d.Parts) {
	case 0:
		return "", true

	case 1:
		if lit, ok := d.Parts[0].(LiteralPart); ok {
			return lit.Text, true
		}
	}

	return "", false
}
