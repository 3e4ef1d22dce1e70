// Package lang implements the Bricks configuration language: a small lazy
// functional language with string interpolation, lists, dicts, lambdas with
// destructuring parameters, let bindings, and the inherit shorthand.
//
// The package provides four layers:
//
//   - The surface syntax tree ([Expression] and its variants), built by the
//     parser or by hand, immutable and acyclic.
//   - A renderer ([Render]) producing source text that reparses to a
//     structurally equivalent tree, with minimal parenthesization and
//     bare-identifier keys where possible.
//   - A lowering pass ([Lower]) desugaring the surface tree into a minimal
//     lambda-calculus representation ([Term]): dict patterns become guarded,
//     default-merged destructuring abstractions; interpolated strings become
//     chains of string'append applications; let bindings become applied
//     abstractions.
//   - A lazy evaluator ([Evaluate]) reducing terms to values under the
//     builtin functions the lowered form references (id, comp,
//     string'append, dict'lookup, dict'merge'preferLeft,
//     dict'disallowExtraKeys).
//
// Parsing source text:
//
//	expr, err := lang.ParseString(ctx, `greeting: "hello ${greeting}"`)
//
// Rendering, lowering, and evaluating:
//
//	text := lang.Render(expr)
//	term, err := lang.Lower(expr)
//	value, err := lang.Evaluate(term)
//
// Rendering, lowering, and evaluation are pure: they perform no I/O, share
// no mutable state, and may be called concurrently on shared (read-only)
// inputs without coordination.
package lang
