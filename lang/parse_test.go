package lang

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// TestParse checks that source text parses and renders back to its canonical
// form.
func TestParse(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		src  string
		want string
	}{
		{name: "variable", src: "x", want: "x"},
		{name: "surrounding space", src: "  x\n", want: "x"},
		{name: "comment", src: "# note\nx", want: "x"},
		{name: "trailing comment", src: "x # note", want: "x"},

		{name: "empty string", src: `""`, want: `""`},
		{name: "plain string", src: `"abc"`, want: `"abc"`},
		{
			name: "interpolation",
			src:  `"a${b}c"`,
			want: `"a${b}c"`,
		},
		{
			name: "nested interpolation",
			src:  `"a${"b${c}"}"`,
			want: `"a${"b${c}"}"`,
		},
		{
			name: "escapes",
			src:  `"a\"b\\c\${d}\ne"`,
			want: `"a\"b\\c\${d}\ne"`,
		},
		{
			name: "dollar without brace is literal",
			src:  `"a$b"`,
			want: `"a$b"`,
		},

		{
			name: "indented string strips indentation",
			src:  "''\n  foo\n  bar\n''",
			want: `"foo\nbar\n"`,
		},
		{
			name: "indented string keeps deeper indentation",
			src:  "''\n  foo\n    bar\n''",
			want: `"foo\n  bar\n"`,
		},
		{
			name: "indented string with interpolation",
			src:  "''\n  a${x}b\n''",
			want: `"a${x}b\n"`,
		},
		{
			name: "indented string escaped quotes",
			src:  "''it's ''' quoted''",
			want: `"it's '' quoted"`,
		},
		{
			name: "indented string escaped interpolation",
			src:  "''a''${x}b''",
			want: `"a\${x}b"`,
		},

		{name: "compact list", src: "[a b]", want: "[ a b ]"},
		{name: "empty list", src: "[]", want: "[ ]"},
		{
			name: "list item dot binds tighter than juxtaposition",
			src:  "[ a.x b ]",
			want: "[ a.x b ]",
		},
		{
			name: "parenthesized apply as list item",
			src:  "[ (f x) ]",
			want: "[ f x ]",
		},

		{name: "empty dict", src: "{}", want: "{ }"},
		{name: "dict", src: `{a="1";}`, want: `{ a = "1"; }`},
		{name: "rec dict", src: `rec { a = "1"; }`, want: `rec { a = "1"; }`},
		{
			name: "quoted key",
			src:  `{ "not ident" = "v"; }`,
			want: `{ "not ident" = "v"; }`,
		},
		{
			name: "expression key",
			src:  `{ ${k} = "v"; }`,
			want: `{ ${k} = "v"; }`,
		},
		{
			name: "dict inherit",
			src:  "{ inherit a b; }",
			want: "{ inherit a b; }",
		},
		{
			name: "dict inherit from",
			src:  "{ inherit (d) a; }",
			want: "{ inherit (d) a; }",
		},

		{name: "dot", src: "d.a", want: "d.a"},
		{name: "dot chain", src: "d.a.b", want: "d.a.b"},
		{name: "dot expression key", src: "d.${k}", want: "d.${k}"},
		{name: "dot quoted key", src: `d."not ident"`, want: `d.${"not ident"}`},

		{name: "apply", src: "f x y", want: "f x y"},
		{name: "apply grouped argument", src: "f (g x)", want: "f (g x)"},
		{name: "apply dict argument", src: "f { }", want: "f { }"},
		{name: "apply rec dict argument", src: "f rec { }", want: "f rec { }"},

		{name: "lambda", src: "x: x", want: "x: x"},
		{name: "curried lambda", src: "a: b: a", want: "a: b: a"},
		{name: "lambda as final argument", src: "f x: x", want: "f x: x"},
		{
			name: "pattern lambda",
			src:  `{ a, b ? "d", ... }: a`,
			want: `{ a, b ? "d", ... }: a`,
		},
		{name: "empty pattern lambda", src: "{}: x", want: "{ }: x"},
		{name: "ellipsis pattern", src: "{ ... }: x", want: "{ ... }: x"},
		{name: "named pattern", src: "all@{ a }: all", want: "all@{ a }: all"},
		{
			name: "pattern default is a full expression",
			src:  "{ a ? f x }: a",
			want: "{ a ? f x }: a",
		},

		{name: "let", src: `let a = "1"; in a`, want: `let a = "1"; in a`},
		{name: "empty let", src: `let in "x"`, want: `let in "x"`},
		{
			name: "let inherit",
			src:  "let inherit (d) a; in a",
			want: "let inherit (d) a; in a",
		},
		{
			name: "quoted let name",
			src:  `let "not ident" = "v"; in x`,
			want: `let "not ident" = "v"; in x`,
		},

		{name: "parens collapse", src: "((x))", want: "x"},
		{
			name: "keyword prefixed identifiers",
			src:  "lets recs inherits",
			want: "lets recs inherits",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			expr, err := ParseString(context.Background(), tt.src)
			if err != nil {
				t.Fatalf("ParseString(%q): %v", tt.src, err)
			}

			if got := Render(expr); got != tt.want {
				t.Errorf("Render(parse(%q)) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name string
		src  string
	}{
		{name: "empty input", src: ""},
		{name: "unterminated string", src: `"abc`},
		{name: "unterminated indented string", src: "''abc"},
		{name: "unterminated escape", src: `"abc\`},
		{name: "unterminated list", src: "[ a"},
		{name: "unterminated dict", src: "{ a = x; "},
		{name: "unterminated paren", src: "(x"},
		{name: "missing dict value", src: "{ a = ; }"},
		{name: "missing dict semicolon", src: "{ a = x }"},
		{name: "missing let in", src: `let a = "1"; a`},
		{name: "missing let semicolon", src: `let a = "1" in a`},
		{name: "bare keyword", src: "let"},
		{name: "trailing input", src: "x )"},
		{name: "interpolated let name", src: `let "a${x}" = y; in a`},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseString(context.Background(), tt.src)
			if err == nil {
				t.Fatalf("ParseString(%q): expected error", tt.src)
			}

			pe := &ParseError{}
			if !errors.As(err, &pe) {
				t.Fatalf("ParseString(%q): want *ParseError, got %T", tt.src, err)
			}

			if pe.Line < 1 || pe.Column < 1 {
				t.Errorf("ParseError position (%d, %d) out of range",
					pe.Line, pe.Column)
			}
		})
	}
}

func TestParseMaxDepth(t *testing.T) {
	t.Parallel()

	src := strings.Repeat("(", 10) + "x" + strings.Repeat(")", 10)

	if _, err := ParseString(context.Background(), src); err != nil {
		t.Fatalf("default depth: %v", err)
	}

	_, err := ParseString(context.Background(), src, WithMaxDepth(5))
	if err == nil {
		t.Fatal("WithMaxDepth(5): expected error")
	}
}

func TestParseErrorSnippet(t *testing.T) {
	t.Parallel()

	_, err := ParseString(context.Background(), "{ a = x }")

	pe := &ParseError{}
	if !errors.As(err, &pe) {
		t.Fatalf("want *ParseError, got %v", err)
	}

	snippet := pe.Snippet()
	if !strings.Contains(snippet, "{ a = x }") {
		t.Errorf("snippet missing source line:\n%s", snippet)
	}

	if !strings.Contains(snippet, "^") {
		t.Errorf("snippet missing caret:\n%s", snippet)
	}
}

func TestParseReader(t *testing.T) {
	t.Parallel()

	expr, err := ParseReader(context.Background(), strings.NewReader(`"ok"`))
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}

	if got := Render(expr); got != `"ok"` {
		t.Errorf("Render = %q", got)
	}
}
