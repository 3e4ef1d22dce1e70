package lang

import "testing"

// exprVar builds a variable reference for tests.
func exprVar(t *testing.T, name string) Var {
	t.Helper()

	return Var{Name: mustUnquoted(t, name)}
}

// exprStr builds a plain string expression for tests.
func exprStr(text string) Str {
	return Str{Value: StaticDynamic(Static(text))}
}

// lambdaN builds a plain-name lambda for tests.
func lambdaN(t *testing.T, name string, body Expression) Lambda {
	t.Helper()

	return Lambda{Param: ParamName{Name: mustUnquoted(t, name)}, Body: body}
}

func TestRender(t *testing.T) {
	t.Parallel()

	x := exprVar(t, "x")
	f := exprVar(t, "f")
	idLambda := lambdaN(t, "x", x)
	emptyLet := Let{Body: x}

	for _, tt := range []struct {
		name string
		expr Expression
		want string
	}{
		{name: "variable", expr: x, want: "x"},

		{name: "empty string", expr: Str{}, want: `""`},
		{name: "plain string", expr: exprStr("abc"), want: `"abc"`},
		{
			name: "interpolated string",
			expr: Str{Value: Dynamic{Parts: []Part{
				LiteralPart{Text: "a"},
				AntiquotePart{Expr: x},
				LiteralPart{Text: "b"},
			}}},
			want: `"a${x}b"`,
		},
		{
			name: "escapes",
			expr: exprStr("a\"b\\c${d}\ne\rf\tg"),
			want: `"a\"b\\c\${d}\ne\rf\tg"`,
		},

		{name: "empty list", expr: List{}, want: "[ ]"},
		{
			name: "list items",
			expr: List{Items: []Expression{x, f}},
			want: "[ x f ]",
		},

		{name: "empty dict", expr: Dict{}, want: "{ }"},
		{name: "empty rec dict", expr: Dict{Rec: true}, want: "rec { }"},
		{
			name: "dict binding",
			expr: Dict{Bindings: []DictBinding{
				BindingPair{Key: exprStr("a"), Value: exprStr("v")},
			}},
			want: `{ a = "v"; }`,
		},
		{
			name: "rec dict binding",
			expr: Dict{Rec: true, Bindings: []DictBinding{
				BindingPair{Key: exprStr("a"), Value: x},
			}},
			want: "rec { a = x; }",
		},
		{
			name: "non-identifier key stays quoted",
			expr: Dict{Bindings: []DictBinding{
				BindingPair{Key: exprStr("not ident"), Value: x},
			}},
			want: `{ "not ident" = x; }`,
		},
		{
			name: "expression key",
			expr: Dict{Bindings: []DictBinding{
				BindingPair{Key: x, Value: f},
			}},
			want: "{ ${x} = f; }",
		},
		{
			name: "dict inherit",
			expr: Dict{Bindings: []DictBinding{
				BindingInherit{Inherit: Inherit{Names: []Static{"a", "b"}}},
			}},
			want: "{ inherit a b; }",
		},
		{
			name: "dict inherit from",
			expr: Dict{Bindings: []DictBinding{
				BindingInherit{Inherit: Inherit{From: x, Names: []Static{"a"}}},
			}},
			want: "{ inherit (x) a; }",
		},

		{
			name: "dot bare key",
			expr: Dot{Dict: x, Key: exprStr("a")},
			want: "x.a",
		},
		{
			name: "dot expression key",
			expr: Dot{Dict: x, Key: f},
			want: "x.${f}",
		},
		{
			name: "dot quoted key",
			expr: Dot{Dict: x, Key: exprStr("not ident")},
			want: `x.${"not ident"}`,
		},

		{name: "lambda", expr: idLambda, want: "x: x"},
		{
			name: "nested lambda",
			expr: lambdaN(t, "a", lambdaN(t, "b", exprVar(t, "a"))),
			want: "a: b: a",
		},
		{
			name: "pattern lambda",
			expr: Lambda{
				Param: ParamDict{Pattern: DictPattern{
					Items: []PatternItem{
						{Name: mustUnquoted(t, "a")},
						{Name: mustUnquoted(t, "b"), Default: exprStr("d")},
					},
					Ellipsis: true,
				}},
				Body: exprVar(t, "a"),
			},
			want: `{ a, b ? "d", ... }: a`,
		},
		{
			name: "empty pattern",
			expr: Lambda{Param: ParamDict{}, Body: x},
			want: "{ }: x",
		},
		{
			name: "ellipsis only pattern",
			expr: Lambda{
				Param: ParamDict{Pattern: DictPattern{Ellipsis: true}},
				Body:  x,
			},
			want: "{ ... }: x",
		},
		{
			name: "named pattern lambda",
			expr: Lambda{
				Param: ParamBoth{
					Name: mustUnquoted(t, "all"),
					Pattern: DictPattern{
						Items: []PatternItem{{Name: mustUnquoted(t, "a")}},
					},
				},
				Body: exprVar(t, "all"),
			},
			want: "all@{ a }: all",
		},

		{name: "apply", expr: Apply{Func: f, Arg: x}, want: "f x"},
		{
			name: "apply chain stays flat",
			expr: Apply{Func: Apply{Func: f, Arg: x}, Arg: exprVar(t, "y")},
			want: "f x y",
		},

		{
			name: "let",
			expr: Let{
				Bindings: []LetBinding{LetBind{Name: "a", Value: exprStr("v")}},
				Body:     exprVar(t, "a"),
			},
			want: `let a = "v"; in a`,
		},
		{
			name: "let without bindings",
			expr: emptyLet,
			want: "let in x",
		},
		{
			name: "let inherit",
			expr: Let{
				Bindings: []LetBinding{
					LetInherit{Inherit: Inherit{From: f, Names: []Static{"a"}}},
				},
				Body: exprVar(t, "a"),
			},
			want: "let inherit (f) a; in a",
		},
		{
			name: "quoted let name",
			expr: Let{
				Bindings: []LetBinding{LetBind{Name: "not ident", Value: x}},
				Body:     x,
			},
			want: `let "not ident" = x; in x`,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Render(tt.expr); got != tt.want {
				t.Errorf("Render = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestRenderParens exercises every cell of the parenthesization table: which
// expression kinds take parentheses in which syntactic positions.
func TestRenderParens(t *testing.T) {
	t.Parallel()

	x := exprVar(t, "x")
	f := exprVar(t, "f")
	lambda := lambdaN(t, "x", x)
	let := Let{Body: x}
	apply := Apply{Func: f, Arg: x}

	for _, tt := range []struct {
		name string
		expr Expression
		want string
	}{
		{
			name: "lambda as list item",
			expr: List{Items: []Expression{lambda}},
			want: "[ (x: x) ]",
		},
		{
			name: "lambda left of dot",
			expr: Dot{Dict: lambda, Key: exprStr("a")},
			want: "(x: x).a",
		},
		{
			name: "lambda as function",
			expr: Apply{Func: lambda, Arg: x},
			want: "(x: x) x",
		},
		{
			name: "lambda as argument",
			expr: Apply{Func: f, Arg: lambda},
			want: "f x: x",
		},

		{
			name: "let as list item",
			expr: List{Items: []Expression{let}},
			want: "[ (let in x) ]",
		},
		{
			name: "let left of dot",
			expr: Dot{Dict: let, Key: exprStr("a")},
			want: "(let in x).a",
		},
		{
			name: "let as function",
			expr: Apply{Func: let, Arg: x},
			want: "(let in x) x",
		},
		{
			name: "let as argument",
			expr: Apply{Func: f, Arg: let},
			want: "f (let in x)",
		},

		{
			name: "apply as list item",
			expr: List{Items: []Expression{apply}},
			want: "[ f x ]",
		},
		{
			name: "apply left of dot",
			expr: Dot{Dict: apply, Key: exprStr("a")},
			want: "f x.a",
		},
		{
			name: "apply as function",
			expr: Apply{Func: apply, Arg: x},
			want: "f x x",
		},
		{
			name: "apply as argument",
			expr: Apply{Func: f, Arg: apply},
			want: "f (f x)",
		},

		{
			name: "dict never parenthesized",
			expr: Apply{Func: f, Arg: Dict{}},
			want: "f { }",
		},
		{
			name: "list never parenthesized",
			expr: Dot{Dict: List{}, Key: exprStr("a")},
			want: "[ ].a",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Render(tt.expr); got != tt.want {
				t.Errorf("Render = %q, want %q", got, tt.want)
			}
		})
	}
}
