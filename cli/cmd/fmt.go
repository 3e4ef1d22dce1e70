package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bef0/bricks/lang"
)

// Fmt parses a source file and re-renders it in canonical form.
type Fmt struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`

	out io.Writer
}

func (f *Fmt) stdout() io.Writer {
	if f.out == nil {
		return os.Stdout
	}

	return f.out
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) error {
	expr, err := parseSource(ctx, f.Source)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(f.stdout(), lang.Render(expr))

	return err
}
