package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
)

// ExpressionToNative converts a fully static expression (strings, lists,
// non-recursive dicts with static keys) to native Go values suitable for
// JSON or YAML encoding. Lambdas, applications, lets, variables, dotted
// lookups, inherit clauses, and interpolated strings are not static
// documents and return ErrNotStatic.
func ExpressionToNative(e Expression) (any, error) {
	switch x := e.(type) {
	case Str:
		static, ok := ToStatic(Normalize(x.Value))
		if !ok {
			return nil, ErrNotStatic.
				With(slog.String("reason", "interpolated string"))
		}

		return string(static), nil

	case List:
		items := make([]any, len(x.Items))

		for i, item := range x.Items {
			native, err := ExpressionToNative(item)
			if err != nil {
				return nil, err
			}

			items[i] = native
		}

		return items, nil

	case Dict:
		if x.Rec {
			return nil, ErrNotStatic.
				With(slog.String("reason", "recursive dict"))
		}

		result := make(map[string]any, len(x.Bindings))

		for _, binding := range x.Bindings {
			pair, ok := binding.(BindingPair)
			if !ok {
				return nil, ErrNotStatic.
					With(slog.String("reason", "inherit binding"))
			}

			key, ok := staticDictKey(pair.Key)
			if !ok {
				return nil, ErrNotStatic.
					With(slog.String("reason", "interpolated key"))
			}

			value, err := ExpressionToNative(pair.Value)
			if err != nil {
				return nil, err
			}

			result[key] = value
		}

		return result, nil
	}

	return nil, ErrNotStatic.With(slog.String("kind", e.Kind()))
}

// ValueToNative converts an evaluated value to native Go values, forcing
// thunks deeply. Functions cannot be exported and return ErrNotStatic.
func ValueToNative(v Value) (any, error) {
	switch x := v.(type) {
	case StringValue:
		return x.Text, nil

	case DataValue:
		return x.Text, nil

	case ListValue:
		items := make([]any, len(x.Items))

		for i, item := range x.Items {
			forced, err := item.Force()
			if err != nil {
				return nil, err
			}

			native, err := ValueToNative(forced)
			if err != nil {
				return nil, err
			}

			items[i] = native
		}

		return items, nil

	case DictValue:
		result := make(map[string]any, len(x.Entries))

		for _, entry := range x.Entries {
			forced, err := entry.Value.Force()
			if err != nil {
				return nil, err
			}

			native, err := ValueToNative(forced)
			if err != nil {
				return nil, err
			}

			result[entry.Key] = native
		}

		return result, nil
	}

	return nil, ErrNotStatic.With(slog.String("kind", valueKind(v)))
}

// FormatJSON writes a native document as JSON to the writer.
func FormatJSON(w io.Writer, doc any, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(doc, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(doc)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes a native document as YAML to the writer.
func FormatYAML(ctx context.Context, w io.Writer, doc any, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, doc, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}
