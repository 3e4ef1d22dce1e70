package lang

import "log/slog"

// mergeArgName is the fresh name bound by the defaults-merge stage of a
// dict-pattern lowering. The apostrophe keeps it out of the surface
// identifier space, so it can never capture a user variable.
const mergeArgName = "arg'"

// Lower translates a surface expression into the term representation
// consumed by the evaluator.
//
// The translation is structural and total except for two documented gaps:
// recursive dict literals and dict literals with interpolated keys both
// return ErrUnsupportedLowering. Let expressions lower to a chain of
// immediately-applied abstractions with sequential scoping (each binding
// sees the names bound before it).
func Lower(e Expression) (Term, error) {
	switch x := e.(type) {
	case Var:
		return TermVar{Name: x.Name.String()}, nil

	case Str:
		return lowerDynamic(x.Value)

	case List:
		items := make([]Term, len(x.Items))

		for i, item := range x.Items {
			term, err := Lower(item)
			if err != nil {
				return nil, err
			}

			items[i] = term
		}

		return TermList{Items: items}, nil

	case Dict:
		return lowerDict(x)

	case Dot:
		dict, err := Lower(x.Dict)
		if err != nil {
			return nil, err
		}

		key, err := Lower(x.Key)
		if err != nil {
			return nil, err
		}

		return apply2(BuiltinDictLookup, dict, key), nil

	case Lambda:
		return lowerLambda(x)

	case Apply:
		fn, err := Lower(x.Func)
		if err != nil {
			return nil, err
		}

		arg, err := Lower(x.Arg)
		if err != nil {
			return nil, err
		}

		return TermApply{Func: fn, Arg: arg}, nil

	case Let:
		return lowerLet(x)
	}

	return nil, ErrUnsupportedLowering.
		With(slog.String("kind", e.Kind()))
}

// lowerDynamic lowers a quoted string. The empty string becomes literal
// data, a lone literal becomes its data term, a lone antiquote becomes the
// lowered sub-expression directly, and multiple parts become a right fold of
// string'append applications in original left-to-right order.
func lowerDynamic(d Dynamic) (Term, error) {
	d = Normalize(d)

	switch len(d.Parts) {
	case 0:
		return StringData(""), nil

	case 1:
		return lowerPart(d.Parts[0])
	}

	last, err := lowerPart(d.Parts[len(d.Parts)-1])
	if err != nil {
		return nil, err
	}

	term := last

	for i := len(d.Parts) - 2; i >= 0; i-- {
		part, err := lowerPart(d.Parts[i])
		if err != nil {
			return nil, err
		}

		term = apply2(BuiltinStringAppend, part, term)
	}

	return term, nil
}

func lowerPart(part Part) (Term, error) {
	switch p := part.(type) {
	case LiteralPart:
		return StringData(string(p.Text)), nil

	case AntiquotePart:
		return Lower(p.Expr)
	}

	return nil, ErrUnsupportedLowering.
		With(slog.String("kind", "string part"))
}

func lowerLambda(l Lambda) (Term, error) {
	body, err := Lower(l.Body)
	if err != nil {
		return nil, err
	}

	switch p := l.Param.(type) {
	case ParamName:
		return TermLambda{Param: p.Name.String(), Body: body}, nil

	case ParamDict:
		return lowerDictPattern(p.Pattern, body)

	case ParamBoth:
		pipeline, err := lowerDictPattern(p.Pattern, body)
		if err != nil {
			return nil, err
		}

		// The argument is bound to the plain name and, redundantly at
		// application time, destructured by the pattern pipeline.
		name := p.Name.String()

		return TermLambda{
			Param: name,
			Body:  TermApply{Func: pipeline, Arg: TermVar{Name: name}},
		}, nil
	}

	return nil, ErrUnsupportedLowering.
		With(slog.String("kind", "lambda parameter"))
}

// lowerDictPattern builds the function term for a dict-pattern abstraction:
// up to three stages composed with comp, applied right to left to the
// incoming argument.
//
//  1. Only without ellipsis: a key-set guard failing on any key outside the
//     pattern's declared names.
//  2. Only with defaults: a merge binding the argument over the defaults
//     dict; the argument's own values win on key conflicts, defaults fill in
//     missing keys.
//  3. The destructuring abstraction binding each declared name.
func lowerDictPattern(pattern DictPattern, body Term) (Term, error) {
	names := make([]string, len(pattern.Items))
	seen := make(map[string]struct{}, len(pattern.Items))

	var defaults []TermPair

	for i, item := range pattern.Items {
		name := item.Name.String()

		if _, dup := seen[name]; dup {
			return nil, ErrDuplicatePatternName.
				With(slog.String("name", name))
		}

		seen[name] = struct{}{}
		names[i] = name

		if item.Default != nil {
			value, err := Lower(item.Default)
			if err != nil {
				return nil, err
			}

			defaults = append(defaults, TermPair{Key: name, Value: value})
		}
	}

	var stages []Term

	if !pattern.Ellipsis {
		keys := make([]Term, len(names))
		for i, name := range names {
			keys[i] = StringData(name)
		}

		stages = append(stages, TermApply{
			Func: BuiltinDictDisallowExtraKeys,
			Arg:  TermList{Items: keys},
		})
	}

	if len(defaults) > 0 {
		stages = append(stages, TermLambda{
			Param: mergeArgName,
			Body: apply2(
				BuiltinDictMergePreferLeft,
				TermVar{Name: mergeArgName},
				TermDict{Pairs: defaults},
			),
		})
	}

	destructure := Term(TermLambdaDict{
		Names:    names,
		Ellipsis: pattern.Ellipsis,
		Body:     body,
	})

	// Stages were appended outermost-last relative to the argument: the
	// guard runs first, then the merge, then the destructuring. comp f g
	// applies g before f.
	term := destructure
	for i := len(stages) - 1; i >= 0; i-- {
		term = apply2(BuiltinComp, term, stages[i])
	}

	return term, nil
}

// lowerLet lowers a let expression to a chain of immediately-applied
// single-name abstractions, one per bound name in binding order. Each
// binding's value is evaluated in the scope of the bindings before it.
func lowerLet(l Let) (Term, error) {
	type bound struct {
		name  string
		value Term
	}

	var binds []bound

	for _, binding := range l.Bindings {
		switch b := binding.(type) {
		case LetBind:
			value, err := Lower(b.Value)
			if err != nil {
				return nil, err
			}

			binds = append(binds, bound{name: string(b.Name), value: value})

		case LetInherit:
			inherited, err := lowerInherit(b.Inherit)
			if err != nil {
				return nil, err
			}

			for _, pair := range inherited {
				binds = append(binds, bound{name: pair.Key, value: pair.Value})
			}
		}
	}

	term, err := Lower(l.Body)
	if err != nil {
		return nil, err
	}

	for i := len(binds) - 1; i >= 0; i-- {
		term = TermApply{
			Func: TermLambda{Param: binds[i].name, Body: term},
			Arg:  binds[i].value,
		}
	}

	return term, nil
}

// lowerInherit expands an inherit clause into key/value pairs: lookups on
// the source dict when present, re-bindings of the same names from the
// enclosing scope otherwise.
func lowerInherit(inherit Inherit) ([]TermPair, error) {
	pairs := make([]TermPair, 0, len(inherit.Names))

	var from Term

	if inherit.From != nil {
		lowered, err := Lower(inherit.From)
		if err != nil {
			return nil, err
		}

		from = lowered
	}

	for _, name := range inherit.Names {
		key := string(name)

		if from == nil {
			pairs = append(pairs, TermPair{Key: key, Value: TermVar{Name: key}})

			continue
		}

		pairs = append(pairs, TermPair{
			Key:   key,
			Value: apply2(BuiltinDictLookup, from, StringData(key)),
		})
	}

	return pairs, nil
}

// lowerDict lowers a dict literal whose keys are statically known. A rec
// dict or a dict with an interpolated key is a documented gap and returns
// ErrUnsupportedLowering.
func lowerDict(d Dict) (Term, error) {
	if d.Rec {
		return nil, ErrUnsupportedLowering.
			With(slog.String("kind", "recursive dict"))
	}

	var pairs []TermPair

	for _, binding := range d.Bindings {
		switch b := binding.(type) {
		case BindingPair:
			key, ok := staticDictKey(b.Key)
			if !ok {
				return nil, ErrUnsupportedLowering.
					With(
						slog.String("kind", "dict"),
						slog.String("reason", "interpolated key"),
					)
			}

			value, err := Lower(b.Value)
			if err != nil {
				return nil, err
			}

			pairs = append(pairs, TermPair{Key: key, Value: value})

		case BindingInherit:
			inherited, err := lowerInherit(b.Inherit)
			if err != nil {
				return nil, err
			}

			pairs = append(pairs, inherited...)
		}
	}

	return TermDict{Pairs: pairs}, nil
}

// staticDictKey extracts the exact text of a dict-binding key when it is
// statically known.
func staticDictKey(key Expression) (string, bool) {
	s, ok := key.(Str)
	if !ok {
		return "", false
	}

	static, ok := ToStatic(Normalize(s.Value))
	if !ok {
		return "", false
	}

	return string(static), true
}
