package lang

import (
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Value is the result of evaluating a term. It is a closed sum over string
// data, tagged data, lists and dicts of thunks, closures, and partially
// applied builtin functions.
type Value interface {
	isValue()
}

// StringValue is evaluated string data.
type StringValue struct {
	Text string
}

// DataValue is evaluated literal data with a tag other than "string".
type DataValue struct {
	Tag  string
	Text string
}

// ListValue is an evaluated list; items are forced on demand.
type ListValue struct {
	Items []*Thunk
}

// DictValue is an evaluated dict; values are forced on demand.
type DictValue struct {
	Entries []DictEntry
}

// DictEntry is one key/value entry of a DictValue.
type DictEntry struct {
	Key   string
	Value *Thunk
}

// ClosureValue is a single-name abstraction paired with its environment.
type ClosureValue struct {
	param string
	body  Term
	env   *environment
}

// DictClosureValue is a dict-pattern abstraction paired with its
// environment.
type DictClosureValue struct {
	names    []string
	ellipsis bool
	body     Term
	env      *environment
}

// BuiltinValue is a builtin function with the arguments collected so far.
type BuiltinValue struct {
	Name string
	args []*Thunk
}

func (StringValue) isValue()      {}
func (DataValue) isValue()        {}
func (ListValue) isValue()        {}
func (DictValue) isValue()        {}
func (ClosureValue) isValue()     {}
func (DictClosureValue) isValue() {}
func (BuiltinValue) isValue()     {}

// lookup returns the thunk bound to key, if any.
func (d DictValue) lookup(key string) (*Thunk, bool) {
	for _, entry := range d.Entries {
		if entry.Key == key {
			return entry.Value, true
		}
	}

	return nil, false
}

// Thunk is a deferred, memoized computation of a Value. Forcing is not
// safe for concurrent use; each Evaluate call builds its own thunks.
type Thunk struct {
	fn   func() (Value, error)
	val  Value
	err  error
	done bool
}

func newThunk(fn func() (Value, error)) *Thunk {
	return &Thunk{fn: fn}
}

func valueThunk(v Value) *Thunk {
	return &Thunk{val: v, done: true}
}

// Force computes the thunk's value, memoizing the result.
func (t *Thunk) Force() (Value, error) {
	if !t.done {
		t.val, t.err = t.fn()
		t.done = true
		t.fn = nil
	}

	return t.val, t.err
}

// environment is an immutable chain of name bindings.
type environment struct {
	parent *environment
	name   string
	thunk  *Thunk
}

func (e *environment) bind(name string, thunk *Thunk) *environment {
	return &environment{parent: e, name: name, thunk: thunk}
}

func (e *environment) lookup(name string) (*Thunk, bool) {
	for env := e; env != nil; env = env.parent {
		if env.name == name {
			return env.thunk, true
		}
	}

	return nil, false
}

func (e *environment) names() []string {
	var (
		names []string
		seen  = map[string]struct{}{}
	)

	for env := e; env != nil; env = env.parent {
		if _, dup := seen[env.name]; dup {
			continue
		}

		seen[env.name] = struct{}{}
		names = append(names, env.name)
	}

	return names
}

// builtinArity gives the total argument count of each builtin function
// the evaluator supplies.
var builtinArity = map[string]int{
	BuiltinID.Name:                    1,
	BuiltinComp.Name:                  3,
	BuiltinStringAppend.Name:          2,
	BuiltinDictLookup.Name:            2,
	BuiltinDictMergePreferLeft.Name:   2,
	BuiltinDictDisallowExtraKeys.Name: 2,
}

// Evaluate reduces a lowered term to a value under the builtin environment.
func Evaluate(t Term) (Value, error) {
	return evalTerm(t, nil)
}

func termThunk(t Term, env *environment) *Thunk {
	return newThunk(func() (Value, error) {
		return evalTerm(t, env)
	})
}

func evalTerm(t Term, env *environment) (Value, error) {
	switch x := t.(type) {
	case TermVar:
		if thunk, ok := env.lookup(x.Name); ok {
			return thunk.Force()
		}

		if _, ok := builtinArity[x.Name]; ok {
			return BuiltinValue{Name: x.Name}, nil
		}

		return nil, unboundError(x.Name, env)

	case TermLambda:
		return ClosureValue{param: x.Param, body: x.Body, env: env}, nil

	case TermLambdaDict:
		return DictClosureValue{
			names:    x.Names,
			ellipsis: x.Ellipsis,
			body:     x.Body,
			env:      env,
		}, nil

	case TermApply:
		fn, err := evalTerm(x.Func, env)
		if err != nil {
			return nil, err
		}

		return applyValue(fn, termThunk(x.Arg, env))

	case TermData:
		if x.Tag == "string" {
			return StringValue{Text: x.Text}, nil
		}

		return DataValue{Tag: x.Tag, Text: x.Text}, nil

	case TermList:
		items := make([]*Thunk, len(x.Items))
		for i, item := range x.Items {
			items[i] = termThunk(item, env)
		}

		return ListValue{Items: items}, nil

	case TermDict:
		entries := make([]DictEntry, len(x.Pairs))
		for i, pair := range x.Pairs {
			entries[i] = DictEntry{Key: pair.Key, Value: termThunk(pair.Value, env)}
		}

		return DictValue{Entries: entries}, nil
	}

	return nil, ErrWrongType.With(slog.String("term", t.String()))
}

func applyValue(fn Value, arg *Thunk) (Value, error) {
	switch f := fn.(type) {
	case ClosureValue:
		return evalTerm(f.body, f.env.bind(f.param, arg))

	case DictClosureValue:
		return applyDictClosure(f, arg)

	case BuiltinValue:
		args := make([]*Thunk, len(f.args), len(f.args)+1)
		copy(args, f.args)
		args = append(args, arg)

		if len(args) < builtinArity[f.Name] {
			return BuiltinValue{Name: f.Name, args: args}, nil
		}

		return callBuiltin(f.Name, args)
	}

	return nil, ErrNotAFunction.
		With(slog.String("value", valueKind(fn)))
}

// applyDictClosure destructures the argument dict: every declared name must
// be present, and without ellipsis no other key may appear.
func applyDictClosure(f DictClosureValue, arg *Thunk) (Value, error) {
	v, err := arg.Force()
	if err != nil {
		return nil, err
	}

	dict, ok := v.(DictValue)
	if !ok {
		return nil, ErrDictKeyMismatch.
			With(slog.String("value", valueKind(v)))
	}

	if !f.ellipsis {
		declared := make(map[string]struct{}, len(f.names))
		for _, name := range f.names {
			declared[name] = struct{}{}
		}

		for _, entry := range dict.Entries {
			if _, ok := declared[entry.Key]; !ok {
				return nil, ErrDictKeyMismatch.
					With(slog.String("extra_key", entry.Key))
			}
		}
	}

	env := f.env

	for _, name := range f.names {
		thunk, ok := dict.lookup(name)
		if !ok {
			return nil, ErrDictKeyMismatch.
				With(slog.String("missing_key", name))
		}

		env = env.bind(name, thunk)
	}

	return evalTerm(f.body, env)
}

func callBuiltin(name string, args []*Thunk) (Value, error) {
	switch name {
	case BuiltinID.Name:
		return args[0].Force()

	case BuiltinComp.Name:
		f, err := args[0].Force()
		if err != nil {
			return nil, err
		}

		inner := newThunk(func() (Value, error) {
			g, err := args[1].Force()
			if err != nil {
				return nil, err
			}

			return applyValue(g, args[2])
		})

		return applyValue(f, inner)

	case BuiltinStringAppend.Name:
		left, err := forceString(args[0])
		if err != nil {
			return nil, err
		}

		right, err := forceString(args[1])
		if err != nil {
			return nil, err
		}

		return StringValue{Text: left + right}, nil

	case BuiltinDictLookup.Name:
		return builtinDictLookup(args[0], args[1])

	case BuiltinDictMergePreferLeft.Name:
		return builtinMergePreferLeft(args[0], args[1])

	case BuiltinDictDisallowExtraKeys.Name:
		return builtinDisallowExtraKeys(args[0], args[1])
	}

	return nil, ErrUnboundVariable.With(slog.String("name", name))
}

func builtinDictLookup(dictArg, keyArg *Thunk) (Value, error) {
	v, err := dictArg.Force()
	if err != nil {
		return nil, err
	}

	dict, ok := v.(DictValue)
	if !ok {
		return nil, ErrDictLookup.
			With(slog.String("value", valueKind(v)))
	}

	key, err := forceString(keyArg)
	if err != nil {
		return nil, err
	}

	thunk, ok := dict.lookup(key)
	if !ok {
		return nil, ErrDictLookup.
			With(slog.String("missing_key", key))
	}

	return thunk.Force()
}

func builtinMergePreferLeft(leftArg, rightArg *Thunk) (Value, error) {
	left, err := forceDict(leftArg)
	if err != nil {
		return nil, err
	}

	right, err := forceDict(rightArg)
	if err != nil {
		return nil, err
	}

	entries := make([]DictEntry, 0, len(left.Entries)+len(right.Entries))
	entries = append(entries, left.Entries...)

	for _, entry := range right.Entries {
		if _, ok := left.lookup(entry.Key); !ok {
			entries = append(entries, entry)
		}
	}

	return DictValue{Entries: entries}, nil
}

func builtinDisallowExtraKeys(keysArg, dictArg *Thunk) (Value, error) {
	v, err := keysArg.Force()
	if err != nil {
		return nil, err
	}

	list, ok := v.(ListValue)
	if !ok {
		return nil, ErrWrongType.
			With(slog.String("value", valueKind(v)))
	}

	allowed := make(map[string]struct{}, len(list.Items))

	for _, item := range list.Items {
		key, err := forceString(item)
		if err != nil {
			return nil, err
		}

		allowed[key] = struct{}{}
	}

	dict, err := forceDict(dictArg)
	if err != nil {
		return nil, err
	}

	for _, entry := range dict.Entries {
		if _, ok := allowed[entry.Key]; !ok {
			return nil, ErrDictKeyMismatch.
				With(slog.String("extra_key", entry.Key))
		}
	}

	return dict, nil
}

func forceString(t *Thunk) (string, error) {
	v, err := t.Force()
	if err != nil {
		return "", err
	}

	s, ok := v.(StringValue)
	if !ok {
		return "", ErrWrongType.
			With(
				slog.String("want", "string"),
				slog.String("got", valueKind(v)),
			)
	}

	return s.Text, nil
}

func forceDict(t *Thunk) (DictValue, error) {
	v, err := t.Force()
	if err != nil {
		return DictValue{}, err
	}

	d, ok := v.(DictValue)
	if !ok {
		return DictValue{}, ErrWrongType.
			With(
				slog.String("want", "dict"),
				slog.String("got", valueKind(v)),
			)
	}

	return d, nil
}

func valueKind(v Value) string {
	switch v.(type) {
	case StringValue:
		return "string"

	case DataValue:
		return "data"

	case ListValue:
		return "list"

	case DictValue:
		return "dict"

	case ClosureValue, DictClosureValue:
		return "lambda"

	case BuiltinValue:
		return "builtin"

	default:
		return "unknown"
	}
}

// unboundError builds an unbound-variable error, attaching the closest
// in-scope name as a suggestion when a fuzzy match exists.
func unboundError(name string, env *environment) error {
	err := ErrUnboundVariable.With(slog.String("name", name))

	candidates := env.names()
	for builtin := range builtinArity {
		candidates = append(candidates, builtin)
	}

	if matches := fuzzy.Find(name, candidates); len(matches) > 0 {
		err = err.With(slog.String("did_you_mean", matches[0].Str))
	}

	return err
}

// FormatValue renders a fully forced value in surface-like syntax for
// display: strings quoted, lists and dicts in literal form, functions as
// placeholders.
func FormatValue(v Value) (string, error) {
	var b strings.Builder

	if err := writeValue(&b, v); err != nil {
		return "", err
	}

	return b.String(), nil
}

func writeValue(b *strings.Builder, v Value) error {
	switch x := v.(type) {
	case StringValue:
		b.WriteString(`"` + escaper.Replace(x.Text) + `"`)

	case DataValue:
		b.WriteString("<" + x.Tag + ":" + x.Text + ">")

	case ListValue:
		if len(x.Items) == 0 {
			b.WriteString("[ ]")

			return nil
		}

		b.WriteString("[ ")

		for _, item := range x.Items {
			forced, err := item.Force()
			if err != nil {
				return err
			}

			if err := writeValue(b, forced); err != nil {
				return err
			}

			b.WriteString(" ")
		}

		b.WriteString("]")

	case DictValue:
		if len(x.Entries) == 0 {
			b.WriteString("{ }")

			return nil
		}

		b.WriteString("{ ")

		for _, entry := range x.Entries {
			forced, err := entry.Value.Force()
			if err != nil {
				return err
			}

			b.WriteString(entry.Key)
			b.WriteString(" = ")

			if err := writeValue(b, forced); err != nil {
				return err
			}

			b.WriteString("; ")
		}

		b.WriteString("}")

	case ClosureValue, DictClosureValue:
		b.WriteString("<lambda>")

	case BuiltinValue:
		b.WriteString("<builtin " + x.Name + ">")
	}

	return nil
}
