package lang

// Expression is the surface syntax tree for the Bricks language.
//
// It is a closed sum: exactly the types Var, Str, List, Dict, Dot, Lambda,
// Apply, and Let implement it. Nodes are immutable once built (by the parser
// or by hand in tests), acyclic, and owned top-down; consumers treat them as
// read-only.
type Expression interface {
	isExpression()

	// Kind returns a short human-readable name for the expression variant,
	// used in error attributes and debug output.
	Kind() string
}

// Var is a reference to a name in scope.
type Var struct {
	Name Unquoted
}

// Str is a quoted string expression, possibly with interpolation.
type Str struct {
	Value Dynamic
}

// List is an ordered sequence of expressions.
type List struct {
	Items []Expression
}

// Dict is a dict literal, optionally recursive (bindings may reference each
// other when Rec is set). Bindings render in their given order.
type Dict struct {
	Rec      bool
	Bindings []DictBinding
}

// Dot is a dotted lookup: Dict.Key.
type Dot struct {
	Dict Expression
	Key  Expression
}

// Lambda is a function with a plain or destructuring parameter.
type Lambda struct {
	Param Param
	Body  Expression
}

// Apply is curried function application: Func Arg.
type Apply struct {
	Func Expression
	Arg  Expression
}

// Let binds names for the scope of a body expression.
type Let struct {
	Bindings []LetBinding
	Body     Expression
}

func (Var) isExpression()    {}
func (Str) isExpression()    {}
func (List) isExpression()   {}
func (Dict) isExpression()   {}
func (Dot) isExpression()    {}
func (Lambda) isExpression() {}
func (Apply) isExpression()  {}
func (Let) isExpression()    {}

func (Var) Kind() string    { return "variable" }
func (Str) Kind() string    { return "string" }
func (List) Kind() string   { return "list" }
func (Dict) Kind() string   { return "dict" }
func (Dot) Kind() string    { return "dot" }
func (Lambda) Kind() string { return "lambda" }
func (Apply) Kind() string  { return "apply" }
func (Let) Kind() string    { return "let" }

// DictBinding is one entry of a dict literal: either a key/value pair or an
// inherit clause.
type DictBinding interface {
	isDictBinding()
}

// BindingPair is a "key = value" dict binding. The key may be any
// expression; it renders with ${} unless it is a string.
type BindingPair struct {
	Key   Expression
	Value Expression
}

// BindingInherit is an "inherit ..." dict binding.
type BindingInherit struct {
	Inherit Inherit
}

func (BindingPair) isDictBinding()    {}
func (BindingInherit) isDictBinding() {}

// LetBinding is one entry of a let expression: either a named value or an
// inherit clause. Unlike dict keys, let names are restricted to static text.
type LetBinding interface {
	isLetBinding()
}

// LetBind is a "name = value" let binding.
type LetBind struct {
	Name  Static
	Value Expression
}

// LetInherit is an "inherit ..." let binding.
type LetInherit struct {
	Inherit Inherit
}

func (LetBind) isLetBinding()    {}
func (LetInherit) isLetBinding() {}

// Inherit pulls one or more names either from the enclosing recursive scope
// (From is nil) or from the given dict expression (From is set, rendered in
// parentheses).
type Inherit struct {
	From  Expression // nil means the enclosing scope
	Names []Static
}

// Param is a lambda parameter: a plain name, a dict pattern, or both bound
// to the same call argument.
type Param interface {
	isParam()
}

// ParamName binds the whole argument to a single name.
type ParamName struct {
	Name Unquoted
}

// ParamDict destructures the argument with a dict pattern.
type ParamDict struct {
	Pattern DictPattern
}

// ParamBoth binds the whole argument to Name and destructures it with
// Pattern.
type ParamBoth struct {
	Name    Unquoted
	Pattern DictPattern
}

func (ParamName) isParam() {}
func (ParamDict) isParam() {}
func (ParamBoth) isParam() {}

// DictPattern destructures a dict argument into named bindings with optional
// defaults. Ellipsis permits keys not listed in Items.
//
// Item names must be pairwise distinct; this is validated when the pattern
// is lowered, not at construction.
type DictPattern struct {
	Items    []PatternItem
	Ellipsis bool
}

// PatternItem is one entry of a dict pattern: a name and an optional default
// expression (nil means no default).
type PatternItem struct {
	Name    Unquoted
	Default Expression
}
