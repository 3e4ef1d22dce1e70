package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/expr-lang/expr"

	"github.com/bef0/bricks/lang"
)

// Export parses, lowers, and evaluates a source file, then encodes the
// resulting document as JSON or YAML. An optional query expression selects
// a portion of the document before encoding.
type Export struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`

	Format string `default:"json" enum:"json,yaml" help:"Output encoding (${enum})."      short:"f"`
	Indent int    `default:"2"    help:"Indentation width; 0 selects compact output."     short:"i"`
	Query  string `help:"Expression selecting a portion of the document (e.g. 'doc.a')." short:"q"`

	out io.Writer
}

func (e *Export) stdout() io.Writer {
	if e.out == nil {
		return os.Stdout
	}

	return e.out
}

// Run executes the export command.
func (e *Export) Run(ctx context.Context) error {
	source, err := parseSource(ctx, e.Source)
	if err != nil {
		return err
	}

	term, err := lang.Lower(source)
	if err != nil {
		return err
	}

	value, err := lang.Evaluate(term)
	if err != nil {
		return err
	}

	doc, err := lang.ValueToNative(value)
	if err != nil {
		return err
	}

	if e.Query != "" {
		doc, err = e.query(doc)
		if err != nil {
			return err
		}
	}

	if e.Format == "yaml" {
		return lang.FormatYAML(ctx, e.stdout(), doc, e.Indent)
	}

	return lang.FormatJSON(e.stdout(), doc, e.Indent)
}

// query evaluates the query expression against the exported document. The
// whole document is bound as "doc", and top-level dict keys are bound
// directly when the document is a dict.
func (e *Export) query(doc any) (any, error) {
	env := map[string]any{"doc": doc}

	if dict, ok := doc.(map[string]any); ok {
		for key, value := range dict {
			if _, taken := env[key]; !taken {
				env[key] = value
			}
		}
	}

	result, err := expr.Eval(e.Query, env)
	if err != nil {
		return nil, lang.ErrQueryFailed.
			Wrap(err).
			With(slog.String("query", e.Query))
	}

	return result, nil
}
