package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bef0/bricks/lang"
)

// Eval parses a source file, lowers it to the term representation, and
// evaluates the result.
type Eval struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`

	out io.Writer
}

func (e *Eval) stdout() io.Writer {
	if e.out == nil {
		return os.Stdout
	}

	return e.out
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) error {
	expr, err := parseSource(ctx, e.Source)
	if err != nil {
		return err
	}

	logger := loggerFrom(ctx)

	term, err := lang.Lower(expr)
	if err != nil {
		return err
	}

	logger.TraceContext(ctx, "lowered", slog.String("term", term.String()))

	value, err := lang.Evaluate(term)
	if err != nil {
		return err
	}

	formatted, err := lang.FormatValue(value)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(e.stdout(), formatted)

	return err
}
