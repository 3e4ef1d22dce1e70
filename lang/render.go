package lang

import "strings"

// renderContext identifies the syntactic position of a sub-expression.
// Some expression kinds need parentheses only in certain positions.
type renderContext int

const (
	ctxNormal renderContext = iota
	ctxListItem
	ctxDotLeft
	ctxApplyLeft
	ctxApplyRight
)

// needsParens reports whether an expression kind must be parenthesized in
// the given context:
//
//	kind    | list item | dot left | apply left | apply right
//	--------+-----------+----------+------------+------------
//	Lambda  | paren     | paren    | paren      |
//	Let     | paren     | paren    | paren      | paren
//	Apply   |           |          |            | paren
//	other   |           |          |            |
//
// Application never needs parentheses on its own left because application is
// left-associative in the surface grammar.
func needsParens(e Expression, ctx renderContext) bool {
	switch e.(type) {
	case Lambda:
		return ctx == ctxListItem || ctx == ctxDotLeft || ctx == ctxApplyLeft

	case Let:
		return ctx != ctxNormal

	case Apply:
		return ctx == ctxApplyRight

	default:
		return false
	}
}

// escaper rewrites characters that cannot appear raw inside a double-quoted
// string. A single left-to-right pass keeps the introduced backslashes from
// being re-escaped.
var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"${", `\${`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// Render produces source text for e that reparses to a structurally
// equivalent expression. It is pure and total: every variant has a defined
// textual form.
func Render(e Expression) string {
	var b strings.Builder

	writeExpression(&b, e, ctxNormal)

	return b.String()
}

func writeExpression(b *strings.Builder, e Expression, ctx renderContext) {
	if needsParens(e, ctx) {
		b.WriteString("(")
		writeExpression(b, e, ctxNormal)
		b.WriteString(")")

		return
	}

	switch x := e.(type) {
	case Var:
		b.WriteString(x.Name.String())

	case Str:
		writeQuoted(b, x.Value)

	case List:
		writeList(b, x)

	case Dict:
		writeDict(b, x)

	case Dot:
		writeExpression(b, x.Dict, ctxDotLeft)
		b.WriteString(".")
		writeDotKey(b, x.Key)

	case Lambda:
		writeParam(b, x.Param)
		b.WriteString(": ")
		writeExpression(b, x.Body, ctxNormal)

	case Apply:
		writeExpression(b, x.Func, ctxApplyLeft)
		b.WriteString(" ")
		writeExpression(b, x.Arg, ctxApplyRight)

	case Let:
		b.WriteString("let ")

		for _, binding := range x.Bindings {
			writeLetBinding(b, binding)
			b.WriteString("; ")
		}

		b.WriteString("in ")
		writeExpression(b, x.Body, ctxNormal)
	}
}

// writeQuoted renders a Dynamic string in double-quote style, with literal
// parts escaped and antiquote parts rendered as ${...}.
func writeQuoted(b *strings.Builder, d Dynamic) {
	b.WriteString(`"`)

	for _, part := range d.Parts {
		switch p := part.(type) {
		case LiteralPart:
			b.WriteString(escaper.Replace(string(p.Text)))

		case AntiquotePart:
			b.WriteString("${")
			writeExpression(b, p.Expr, ctxNormal)
			b.WriteString("}")
		}
	}

	b.WriteString(`"`)
}

func writeList(b *strings.Builder, l List) {
	if len(l.Items) == 0 {
		b.WriteString("[ ]")

		return
	}

	b.WriteString("[ ")

	for _, item := range l.Items {
		writeExpression(b, item, ctxListItem)
		b.WriteString(" ")
	}

	b.WriteString("]")
}

func writeDict(b *strings.Builder, d Dict) {
	if d.Rec {
		b.WriteString("rec ")
	}

	if len(d.Bindings) == 0 {
		b.WriteString("{ }")

		return
	}

	b.WriteString("{ ")

	for _, binding := range d.Bindings {
		writeDictBinding(b, binding)
		b.WriteString("; ")
	}

	b.WriteString("}")
}

func writeDictBinding(b *strings.Builder, binding DictBinding) {
	switch x := binding.(type) {
	case BindingPair:
		writeDictKey(b, x.Key)
		b.WriteString(" = ")
		writeExpression(b, x.Value, ctxNormal)

	case BindingInherit:
		writeInherit(b, x.Inherit)
	}
}

func writeLetBinding(b *strings.Builder, binding LetBinding) {
	switch x := binding.(type) {
	case LetBind:
		writeStaticKey(b, x.Name)
		b.WriteString(" = ")
		writeExpression(b, x.Value, ctxNormal)

	case LetInherit:
		writeInherit(b, x.Inherit)
	}
}

func writeInherit(b *strings.Builder, inherit Inherit) {
	b.WriteString("inherit")

	if inherit.From != nil {
		b.WriteString(" (")
		writeExpression(b, inherit.From, ctxNormal)
		b.WriteString(")")
	}

	for _, name := range inherit.Names {
		b.WriteString(" ")
		writeStaticKey(b, name)
	}
}

// writeDictKey renders a dict-binding key: unquoted when the key is a string
// reducing to a lone bare-identifier literal, quoted when it is any other
// string, and ${...} for every other expression.
func writeDictKey(b *strings.Builder, key Expression) {
	if s, ok := key.(Str); ok {
		if static, ok := ToStatic(Normalize(s.Value)); ok &&
			IsBareIdentifierName(string(static)) {
			b.WriteString(string(static))

			return
		}

		writeQuoted(b, s.Value)

		return
	}

	b.WriteString("${")
	writeExpression(b, key, ctxNormal)
	b.WriteString("}")
}

// writeDotKey renders a dot-lookup key: unquoted when it is a string
// reducing to a lone bare-identifier literal, ${...} otherwise.
func writeDotKey(b *strings.Builder, key Expression) {
	if s, ok := key.(Str); ok {
		if static, ok := ToStatic(Normalize(s.Value)); ok &&
			IsBareIdentifierName(string(static)) {
			b.WriteString(string(static))

			return
		}
	}

	b.WriteString("${")
	writeExpression(b, key, ctxNormal)
	b.WriteString("}")
}

// writeStaticKey renders a static name (let bindings, inherit names):
// unquoted when bare-identifier shaped, quoted otherwise.
func writeStaticKey(b *strings.Builder, name Static) {
	if IsBareIdentifierName(string(name)) {
		b.WriteString(string(name))

		return
	}

	writeQuoted(b, StaticDynamic(name))
}

func writeParam(b *strings.Builder, param Param) {
	switch p := param.(type) {
	case ParamName:
		b.WriteString(p.Name.String())

	case ParamDict:
		writePattern(b, p.Pattern)

	case ParamBoth:
		b.WriteString(p.Name.String())
		b.WriteString("@")
		writePattern(b, p.Pattern)
	}
}

func writePattern(b *strings.Builder, pattern DictPattern) {
	if len(pattern.Items) == 0 && !pattern.Ellipsis {
		b.WriteString("{ }")

		return
	}

	b.WriteString("{ ")

	for i, item := range pattern.Items {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(item.Name.String())

		if item.Default != nil {
			b.WriteString(" ? ")
			writeExpression(b, item.Default, ctxNormal)
		}
	}

	if pattern.Ellipsis {
		if len(pattern.Items) > 0 {
			b.WriteString(", ")
		}

		b.WriteString("...")
	}

	b.WriteString(" }")
}
