package lang

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/bef0/bricks/log"
)

// DefaultMaxDepth is the default maximum nesting depth for expressions.
// Users may modify this before parsing to change the default.
var DefaultMaxDepth = 200

// parseConfig holds parser configuration options.
type parseConfig struct {
	maxDepth int
	logger   log.Logger
}

// Option configures parsing behavior.
type Option func(*parseConfig)

// WithMaxDepth sets the maximum nesting depth for expressions.
func WithMaxDepth(depth int) Option {
	return func(cfg *parseConfig) {
		cfg.maxDepth = depth
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(cfg *parseConfig) {
		cfg.logger = logger
	}
}

// ParseString parses input as a single expression.
func ParseString(
	ctx context.Context,
	input string,
	opts ...Option,
) (Expression, error) {
	cfg := parseConfig{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}

	cfg.logger.TraceContext(
		ctx,
		"parse start",
		slog.Int("source_length", len(input)),
	)

	p := &parser{scanner: newScanner(input), cfg: cfg}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	p.skipSpace()

	if !p.eof() {
		return nil, p.errorf("unexpected input after expression")
	}

	cfg.logger.TraceContext(ctx, "parse complete")

	return expr, nil
}

// ParseReader parses the full contents of r as a single expression.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (Expression, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return ParseString(ctx, string(input), opts...)
}

func isKeyword(s string) bool {
	_, ok := keywords[s]

	return ok
}

// parser is a recursive-descent parser over a rune scanner, with
// backtracking marks to resolve dict-vs-pattern and argument-vs-lambda
// ambiguity.
type parser struct {
	*scanner
	cfg   parseConfig
	depth int
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{
		Msg:    fmt.Sprintf(format, args...),
		Line:   p.line,
		Column: p.col,
		Source: p.input,
	}
}

// parseExpression parses a full expression: a lambda, a let, or an
// application chain.
func (p *parser) parseExpression() (Expression, error) {
	if p.depth >= p.cfg.maxDepth {
		return nil, p.errorf("maximum nesting depth %d exceeded", p.cfg.maxDepth)
	}

	p.depth++
	defer func() { p.depth-- }()

	p.skipSpace()

	if p.peekWord() == "let" {
		return p.parseLet()
	}

	if lambda, ok, err := p.tryLambda(); err != nil {
		return nil, err
	} else if ok {
		return lambda, nil
	}

	return p.parseApply()
}

// tryLambda attempts to parse a lambda at the cursor. It restores the
// cursor and reports false when no parameter-colon prefix is present;
// errors after the prefix are committed.
func (p *parser) tryLambda() (Expression, bool, error) {
	save := p.mark()

	param, ok, err := p.tryParam()
	if err != nil {
		return nil, false, err
	}

	if !ok {
		p.restore(save)

		return nil, false, nil
	}

	body, err := p.parseExpression()
	if err != nil {
		return nil, false, err
	}

	return Lambda{Param: param, Body: body}, true, nil
}

// tryParam attempts to parse a lambda parameter followed by ':'.
func (p *parser) tryParam() (Param, bool, error) {
	p.skipSpace()

	if p.peek() == '{' {
		pattern, ok, err := p.tryPattern()
		if err != nil || !ok {
			return nil, ok, err
		}

		return ParamDict{Pattern: pattern}, true, nil
	}

	w := p.peekWord()
	if w == "" || isKeyword(w) {
		return nil, false, nil
	}

	p.word()

	name, err := MakeUnquoted(w)
	if err != nil {
		return nil, false, nil
	}

	p.skipSpace()

	if p.consume("@") {
		p.skipSpace()

		if p.peek() != '{' {
			return nil, false, nil
		}

		pattern, ok, err := p.tryPattern()
		if err != nil || !ok {
			return nil, ok, err
		}

		return ParamBoth{Name: name, Pattern: pattern}, true, nil
	}

	if p.consume(":") {
		return ParamName{Name: name}, true, nil
	}

	return nil, false, nil
}

// tryPattern attempts to parse a dict pattern (cursor at '{') followed by
// ':'. A structural mismatch reports false so the caller can reparse the
// braces as a dict literal.
func (p *parser) tryPattern() (DictPattern, bool, error) {
	var pattern DictPattern

	p.next() // '{'
	p.skipSpace()

	if !p.consume("}") {
		for {
			p.skipSpace()

			if p.consume("...") {
				pattern.Ellipsis = true

				p.skipSpace()

				break
			}

			w := p.word()
			if w == "" || isKeyword(w) {
				return pattern, false, nil
			}

			name, err := MakeUnquoted(w)
			if err != nil {
				return pattern, false, nil
			}

			item := PatternItem{Name: name}

			p.skipSpace()

			if p.consume("?") {
				// The '?' commits us to a pattern; a default can only
				// occur here.
				def, err := p.parseExpression()
				if err != nil {
					return pattern, false, err
				}

				item.Default = def
			}

			pattern.Items = append(pattern.Items, item)

			p.skipSpace()

			if p.consume(",") {
				continue
			}

			break
		}

		if !p.consume("}") {
			return pattern, false, nil
		}
	}

	p.skipSpace()

	if !p.consume(":") {
		return pattern, false, nil
	}

	return pattern, true, nil
}

// parseApply parses a left-associative application chain. A lambda may
// appear unparenthesized as the final argument.
func (p *parser) parseApply() (Expression, error) {
	fn, err := p.parseSelect()
	if err != nil {
		return nil, err
	}

	for {
		save := p.mark()

		p.skipSpace()

		if lambda, ok, err := p.tryLambda(); err != nil {
			return nil, err
		} else if ok {
			return Apply{Func: fn, Arg: lambda}, nil
		}

		if !p.startsAtom() {
			p.restore(save)

			return fn, nil
		}

		arg, err := p.parseSelect()
		if err != nil {
			return nil, err
		}

		fn = Apply{Func: fn, Arg: arg}
	}
}

// startsAtom reports whether the cursor is at the start of an atom.
func (p *parser) startsAtom() bool {
	switch r := p.peek(); {
	case isWordRune(r):
		w := p.peekWord()

		return w == "rec" || !isKeyword(w)

	case r == '"' || r == '[' || r == '{' || r == '(':
		return true

	case r == '\'':
		return p.peekAt(1) == '\''
	}

	return false
}

// parseSelect parses an atom with zero or more tight dot lookups.
func (p *parser) parseSelect() (Expression, error) {
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for p.peek() == '.' {
		p.next()

		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}

		expr = Dot{Dict: expr, Key: key}
	}

	return expr, nil
}

func (p *parser) parseAtom() (Expression, error) {
	p.skipSpace()

	switch r := p.peek(); {
	case r == '"':
		return p.parseQuoted()

	case r == '\'' && p.peekAt(1) == '\'':
		return p.parseIndented()

	case r == '[':
		return p.parseList()

	case r == '{':
		p.next()

		return p.parseDictRest(false)

	case r == '(':
		p.next()

		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		p.skipSpace()

		if !p.consume(")") {
			return nil, p.errorf("expected ')'")
		}

		return expr, nil

	case isWordRune(r):
		w := p.word()

		if w == "rec" {
			p.skipSpace()

			if !p.consume("{") {
				return nil, p.errorf("expected '{' after rec")
			}

			return p.parseDictRest(true)
		}

		if isKeyword(w) {
			return nil, p.errorf("unexpected keyword %q", w)
		}

		name, err := MakeUnquoted(w)
		if err != nil {
			return nil, p.errorf("invalid identifier %q", w)
		}

		return Var{Name: name}, nil
	}

	return nil, p.errorf("expected expression")
}

func (p *parser) parseList() (Expression, error) {
	p.next() // '['

	var items []Expression

	for {
		p.skipSpace()

		if p.consume("]") {
			return List{Items: items}, nil
		}

		if p.eof() {
			return nil, p.errorf("unterminated list")
		}

		item, err := p.parseSelect()
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}
}

// parseDictRest parses dict bindings after the opening brace.
func (p *parser) parseDictRest(rec bool) (Expression, error) {
	var bindings []DictBinding

	for {
		p.skipSpace()

		if p.consume("}") {
			return Dict{Rec: rec, Bindings: bindings}, nil
		}

		if p.eof() {
			return nil, p.errorf("unterminated dict")
		}

		if p.peekWord() == "inherit" {
			p.word()

			inherit, err := p.parseInherit()
			if err != nil {
				return nil, err
			}

			bindings = append(bindings, BindingInherit{Inherit: inherit})
		} else {
			key, err := p.parseKey()
			if err != nil {
				return nil, err
			}

			p.skipSpace()

			if !p.consume("=") {
				return nil, p.errorf("expected '=' after dict key")
			}

			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}

			bindings = append(bindings, BindingPair{Key: key, Value: value})
		}

		p.skipSpace()

		if !p.consume(";") {
			return nil, p.errorf("expected ';' after dict binding")
		}
	}
}

// parseKey parses a dict-binding or dot-lookup key: a bare name, a quoted
// string, or an ${...} antiquoted expression.
func (p *parser) parseKey() (Expression, error) {
	if p.consume("${") {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		p.skipSpace()

		if !p.consume("}") {
			return nil, p.errorf("expected '}' after key expression")
		}

		return expr, nil
	}

	if p.peek() == '"' {
		return p.parseQuoted()
	}

	w := p.word()
	if w == "" || isKeyword(w) {
		return nil, p.errorf("expected key")
	}

	return Str{Value: StaticDynamic(Static(w))}, nil
}

func (p *parser) parseLet() (Expression, error) {
	p.word() // "let"

	var bindings []LetBinding

	for {
		p.skipSpace()

		if p.eof() {
			return nil, p.errorf("expected 'in'")
		}

		w := p.peekWord()

		if w == "in" {
			p.word()

			break
		}

		if w == "inherit" {
			p.word()

			inherit, err := p.parseInherit()
			if err != nil {
				return nil, err
			}

			bindings = append(bindings, LetInherit{Inherit: inherit})
		} else {
			name, err := p.parseStaticName()
			if err != nil {
				return nil, err
			}

			p.skipSpace()

			if !p.consume("=") {
				return nil, p.errorf("expected '=' after let binding name")
			}

			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}

			bindings = append(bindings, LetBind{Name: name, Value: value})
		}

		p.skipSpace()

		if !p.consume(";") {
			return nil, p.errorf("expected ';' after let binding")
		}
	}

	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return Let{Bindings: bindings, Body: body}, nil
}

// parseInherit parses an inherit clause after the keyword: an optional
// parenthesized source expression and zero or more names.
func (p *parser) parseInherit() (Inherit, error) {
	var inherit Inherit

	p.skipSpace()

	if p.consume("(") {
		from, err := p.parseExpression()
		if err != nil {
			return inherit, err
		}

		p.skipSpace()

		if !p.consume(")") {
			return inherit, p.errorf("expected ')' after inherit source")
		}

		inherit.From = from
	}

	for {
		p.skipSpace()

		if w := p.peekWord(); w != "" && !isKeyword(w) {
			p.word()

			inherit.Names = append(inherit.Names, Static(w))

			continue
		}

		if p.peek() == '"' {
			name, err := p.parseStaticName()
			if err != nil {
				return inherit, err
			}

			inherit.Names = append(inherit.Names, name)

			continue
		}

		return inherit, nil
	}
}

// parseStaticName parses a bare or quoted name whose text must be
// statically known (let bindings and inherit names).
func (p *parser) parseStaticName() (Static, error) {
	p.skipSpace()

	if p.peek() == '"' {
		expr, err := p.parseQuoted()
		if err != nil {
			return "", err
		}

		static, ok := ToStatic(Normalize(expr.(Str).Value))
		if !ok {
			return "", p.errorf("interpolation not allowed in a binding name")
		}

		return static, nil
	}

	w := p.word()
	if w == "" || isKeyword(w) {
		return "", p.errorf("expected binding name")
	}

	return Static(w), nil
}

// parseQuoted parses a double-quoted string with escapes and ${...}
// interpolation. The cursor is at the opening quote.
func (p *parser) parseQuoted() (Expression, error) {
	p.next() // '"'

	var (
		parts []Part
		buf   strings.Builder
	)

	flush := func() {
		if buf.Len() > 0 {
			parts = append(parts, LiteralPart{Text: Static(buf.String())})
			buf.Reset()
		}
	}

	for {
		if p.eof() {
			return nil, p.errorf("unterminated string")
		}

		switch {
		case p.consume(`"`):
			flush()

			return Str{Value: Dynamic{Parts: parts}}, nil

		case p.hasPrefix("${"):
			flush()

			part, err := p.parseAntiquote()
			if err != nil {
				return nil, err
			}

			parts = append(parts, part)

		case p.peek() == '\\':
			p.next()

			if p.eof() {
				return nil, p.errorf("unterminated escape sequence")
			}

			switch c := p.next(); c {
			case 'n':
				buf.WriteRune('\n')

			case 'r':
				buf.WriteRune('\r')

			case 't':
				buf.WriteRune('\t')

			default:
				// Covers \\ and \" and the '$' of \${; unknown escapes
				// pass the character through.
				buf.WriteRune(c)
			}

		default:
			buf.WriteRune(p.next())
		}
	}
}

// parseAntiquote parses "${ expr }" with the cursor at the dollar sign.
func (p *parser) parseAntiquote() (Part, error) {
	p.consume("${")

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	p.skipSpace()

	if !p.consume("}") {
		return nil, p.errorf("expected '}' after interpolation")
	}

	return AntiquotePart{Expr: expr}, nil
}

// parseIndented parses an indented string (the ''...'' quoting style) with
// common leading indentation stripped.
func (p *parser) parseIndented() (Expression, error) {
	p.next() // '\''
	p.next() // '\''

	var (
		parts []Part
		buf   strings.Builder
	)

	flush := func() {
		if buf.Len() > 0 {
			parts = append(parts, LiteralPart{Text: Static(buf.String())})
			buf.Reset()
		}
	}

	for {
		if p.eof() {
			return nil, p.errorf("unterminated indented string")
		}

		switch {
		case p.consume("'''"):
			buf.WriteString("''")

		case p.consume("''${"):
			buf.WriteString("${")

		case p.consume("''\\"):
			if p.eof() {
				return nil, p.errorf("unterminated escape sequence")
			}

			switch c := p.next(); c {
			case 'n':
				buf.WriteRune('\n')

			case 'r':
				buf.WriteRune('\r')

			case 't':
				buf.WriteRune('\t')

			default:
				buf.WriteRune(c)
			}

		case p.hasPrefix("''"):
			p.consume("''")
			flush()

			return Str{Value: Normalize(Dynamic{Parts: stripIndent(parts)})}, nil

		case p.hasPrefix("${"):
			flush()

			part, err := p.parseAntiquote()
			if err != nil {
				return nil, err
			}

			parts = append(parts, part)

		default:
			buf.WriteRune(p.next())
		}
	}
}

// stripIndent removes the common leading indentation of an indented string.
// Indentation is measured on lines with content (blank lines are ignored; a
// line beginning with an antiquote counts as content). A leading newline
// directly after the opener is dropped.
func stripIndent(parts []Part) []Part {
	minIndent := -1

	commit := func(n int) {
		if minIndent < 0 || n < minIndent {
			minIndent = n
		}
	}

	// Measure. The opener line (before the first newline) never counts.
	counting := false
	count := 0

	for _, part := range parts {
		switch p := part.(type) {
		case LiteralPart:
			for _, r := range p.Text {
				switch {
				case r == '\n':
					counting = true
					count = 0

				case counting && r == ' ':
					count++

				case counting:
					commit(count)

					counting = false
				}
			}

		case AntiquotePart:
			if counting {
				commit(count)

				counting = false
			}
		}
	}

	// Strip.
	stripped := make([]Part, 0, len(parts))
	skip := 0

	for _, part := range parts {
		switch p := part.(type) {
		case LiteralPart:
			var buf strings.Builder

			for _, r := range p.Text {
				switch {
				case r == '\n':
					buf.WriteRune(r)

					skip = minIndent

				case skip > 0 && r == ' ':
					skip--

				default:
					skip = 0

					buf.WriteRune(r)
				}
			}

			stripped = append(stripped, LiteralPart{Text: Static(buf.String())})

		case AntiquotePart:
			skip = 0

			stripped = append(stripped, p)
		}
	}

	// Drop the newline directly after the opener.
	if len(stripped) > 0 {
		if lit, ok := stripped[0].(LiteralPart); ok &&
			strings.HasPrefix(string(lit.Text), "\n") {
			stripped[0] = LiteralPart{Text: lit.Text[1:]}
		}
	}

	return stripped
}
