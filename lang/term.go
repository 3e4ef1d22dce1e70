package lang

import "strings"

// Term is the minimal lambda-calculus representation produced by lowering
// and consumed by the evaluator.
//
// It is a closed sum: exactly the types TermVar, TermLambda, TermLambdaDict,
// TermApply, TermData, TermList, and TermDict implement it.
type Term interface {
	isTerm()

	// String returns a compact debug form. It is not the surface syntax and
	// is not part of the language's external contract.
	String() string
}

// TermVar is a reference by name. Name resolution is the evaluator's
// responsibility.
type TermVar struct {
	Name string
}

// TermLambda is an abstraction binding one name.
type TermLambda struct {
	Param string
	Body  Term
}

// TermLambdaDict is an abstraction over a dict pattern. Application fails
// unless the argument is a dict containing exactly the named keys, or a
// superset when Ellipsis is set.
type TermLambdaDict struct {
	Names    []string
	Ellipsis bool
	Body     Term
}

// TermApply is function application.
type TermApply struct {
	Func Term
	Arg  Term
}

// TermData is literal data tagged by type, e.g. tag "string".
type TermData struct {
	Tag  string
	Text string
}

// TermList is an ordered sequence of terms.
type TermList struct {
	Items []Term
}

// TermDict maps exact text keys to terms, in a fixed order. No
// expression-valued keys survive to this layer.
type TermDict struct {
	Pairs []TermPair
}

// TermPair is one key/value entry of a TermDict.
type TermPair struct {
	Key   string
	Value Term
}

func (TermVar) isTerm()        {}
func (TermLambda) isTerm()     {}
func (TermLambdaDict) isTerm() {}
func (TermApply) isTerm()      {}
func (TermData) isTerm()       {}
func (TermList) isTerm()       {}
func (TermDict) isTerm()       {}

// Builtin functions referenced as distinguished term constants. The
// evaluator must supply these names. The apostrophe cannot appear in a
// surface identifier, so the names can never collide with user code.
var (
	// BuiltinID is the unary identity function.
	BuiltinID = TermVar{Name: "id"}

	// BuiltinComp is function composition: comp f g x = f (g x).
	BuiltinComp = TermVar{Name: "comp"}

	// BuiltinStringAppend concatenates two strings.
	BuiltinStringAppend = TermVar{Name: "string'append"}

	// BuiltinDictLookup looks a key up in a dict, failing at evaluation time
	// when the key is absent or the operand is not a dict.
	BuiltinDictLookup = TermVar{Name: "dict'lookup"}

	// BuiltinDictMergePreferLeft merges two dicts; the left operand wins on
	// key conflicts.
	BuiltinDictMergePreferLeft = TermVar{Name: "dict'merge'preferLeft"}

	// BuiltinDictDisallowExtraKeys takes an allowed-key list and produces a
	// function that fails when its dict argument has any key outside it.
	BuiltinDictDisallowExtraKeys = TermVar{Name: "dict'disallowExtraKeys"}
)

// StringData wraps text as a string-tagged data term.
func StringData(text string) TermData {
	return TermData{Tag: "string", Text: text}
}

// apply2 applies a curried binary function to two arguments.
func apply2(f, a, b Term) Term {
	return TermApply{Func: TermApply{Func: f, Arg: a}, Arg: b}
}

func (t TermVar) String() string { return t.Name }

func (t TermLambda) String() string {
	return "(\\" + t.Param + " -> " + t.Body.String() + ")"
}

func (t TermLambdaDict) String() string {
	var b strings.Builder

	b.WriteString("(\\{")
	b.WriteString(strings.Join(t.Names, ", "))

	if t.Ellipsis {
		if len(t.Names) > 0 {
			b.WriteString(", ")
		}

		b.WriteString("...")
	}

	b.WriteString("} -> ")
	b.WriteString(t.Body.String())
	b.WriteString(")")

	return b.String()
}

func (t TermApply) String() string {
	return "(" + t.Func.String() + " " + t.Arg.String() + ")"
}

func (t TermData) String() string {
	return t.Tag + ":" + `"` + escaper.Replace(t.Text) + `"`
}

func (t TermList) String() string {
	items := make([]string, len(t.Items))
	for i, item := range t.Items {
		items[i] = item.String()
	}

	return "[" + strings.Join(items, ", ") + "]"
}

func (t TermDict) String() string {
	pairs := make([]string, len(t.Pairs))
	for i, pair := range t.Pairs {
		pairs[i] = pair.Key + " = " + pair.Value.String()
	}

	return "{" + strings.Join(pairs, "; ") + "}"
}
