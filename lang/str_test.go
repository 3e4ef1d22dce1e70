package lang

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMakeUnquoted(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		text string
		ok   bool
	}{
		{name: "letters", text: "hello", ok: true},
		{name: "hyphen", text: "foo-bar", ok: true},
		{name: "underscore", text: "foo_bar", ok: true},
		{name: "unicode letters", text: "héllo", ok: true},
		{name: "empty", text: "", ok: false},
		{name: "digit", text: "a1", ok: false},
		{name: "space", text: "a b", ok: false},
		{name: "dot", text: "a.b", ok: false},
		{name: "keyword rec", text: "rec", ok: false},
		{name: "keyword let", text: "let", ok: false},
		{name: "keyword in", text: "in", ok: false},
		{name: "keyword inherit", text: "inherit", ok: false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			u, err := MakeUnquoted(tt.text)

			if tt.ok {
				if err != nil {
					t.Fatalf("MakeUnquoted(%q): unexpected error: %v", tt.text, err)
				}

				if u.String() != tt.text {
					t.Errorf("MakeUnquoted(%q).String() = %q", tt.text, u.String())
				}

				return
			}

			if !errors.Is(err, ErrInvalidUnquotedString) {
				t.Errorf("MakeUnquoted(%q): want ErrInvalidUnquotedString, got %v",
					tt.text, err)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	anti := AntiquotePart{Expr: Var{Name: mustUnquoted(t, "x")}}

	for _, tt := range []struct {
		name string
		in   Dynamic
		want Dynamic
	}{
		{
			name: "empty",
			in:   Dynamic{},
			want: Dynamic{},
		},
		{
			name: "merges literal run",
			in: Dynamic{Parts: []Part{
				LiteralPart{Text: "a"},
				LiteralPart{Text: "b"},
				LiteralPart{Text: "c"},
			}},
			want: Dynamic{Parts: []Part{LiteralPart{Text: "abc"}}},
		},
		{
			name: "antiquote splits runs",
			in: Dynamic{Parts: []Part{
				LiteralPart{Text: "a"},
				LiteralPart{Text: "b"},
				anti,
				LiteralPart{Text: "c"},
			}},
			want: Dynamic{Parts: []Part{
				LiteralPart{Text: "ab"},
				anti,
				LiteralPart{Text: "c"},
			}},
		},
		{
			name: "drops empty literals",
			in: Dynamic{Parts: []Part{
				LiteralPart{Text: ""},
				anti,
				LiteralPart{Text: ""},
			}},
			want: Dynamic{Parts: []Part{anti}},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Normalize(tt.in)
			if diff := cmp.Diff(tt.want, got, cmpExprOpts()...); diff != "" {
				t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
			}

			again := Normalize(got)
			if diff := cmp.Diff(got, again, cmpExprOpts()...); diff != "" {
				t.Errorf("Normalize not idempotent (-first +second):\n%s", diff)
			}
		})
	}
}

func TestToStatic(t *testing.T) {
	t.Parallel()

	anti := AntiquotePart{Expr: Var{Name: mustUnquoted(t, "x")}}

	for _, tt := range []struct {
		name string
		in   Dynamic
		want Static
		ok   bool
	}{
		{name: "empty", in: Dynamic{}, want: "", ok: true},
		{
			name: "single literal",
			in:   Dynamic{Parts: []Part{LiteralPart{Text: "abc"}}},
			want: "abc",
			ok:   true,
		},
		{
			name: "antiquote",
			in:   Dynamic{Parts: []Part{anti}},
			ok:   false,
		},
		{
			name: "mixed",
			in:   Dynamic{Parts: []Part{LiteralPart{Text: "a"}, anti}},
			ok:   false,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ToStatic(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ToStatic = (%q, %v), want (%q, %v)",
					got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestConcatDynamicIdentity(t *testing.T) {
	t.Parallel()

	d := StaticDynamic("abc")

	if diff := cmp.Diff(d, ConcatDynamic(Dynamic{}, d), cmpExprOpts()...); diff != "" {
		t.Errorf("left identity mismatch:\n%s", diff)
	}

	if diff := cmp.Diff(d, ConcatDynamic(d, Dynamic{}), cmpExprOpts()...); diff != "" {
		t.Errorf("right identity mismatch:\n%s", diff)
	}
}

func TestStaticDynamicEmpty(t *testing.T) {
	t.Parallel()

	if got := StaticDynamic(""); len(got.Parts) != 0 {
		t.Errorf("StaticDynamic(\"\") = %v, want zero parts", got)
	}
}

// mustUnquoted builds an Unquoted, failing the test on invalid text.
func mustUnquoted(t *testing.T, text string) Unquoted {
	t.Helper()

	u, err := MakeUnquoted(text)
	if err != nil {
		t.Fatalf("MakeUnquoted(%q): %v", text, err)
	}

	return u
}

// cmpExprOpts returns go-cmp options for comparing expression trees, which
// contain the unexported Unquoted wrapper.
func cmpExprOpts() []cmp.Option {
	return []cmp.Option{
		cmp.Comparer(func(a, b Unquoted) bool { return a.text == b.text }),
	}
}
