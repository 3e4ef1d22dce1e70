// Package cmd implements the bricks subcommands.
package cmd

import (
	"context"
	"io"
	"os"

	"github.com/bef0/bricks/lang"
	"github.com/bef0/bricks/log"
)

// loggerKey is used to store a [log.Logger] value in [context.Context].
type loggerKey struct{}

// WithLogger returns a new context.Context containing the given logger.
func WithLogger(ctx context.Context, logger log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// loggerFrom returns the logger stored in the context, or the zero-value
// (no-op) logger when none is present.
func loggerFrom(ctx context.Context) log.Logger {
	logger, ok := ctx.Value(loggerKey{}).(log.Logger)
	if !ok {
		return log.Logger{}
	}

	return logger
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// readSource reads the full contents of the named source file, or stdin
// when the name is "-".
func readSource(source string) (string, error) {
	if source == stdinSource {
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", lang.ErrReadInput.Wrap(err)
		}

		return string(input), nil
	}

	input, err := os.ReadFile(source)
	if err != nil {
		return "", lang.ErrReadInput.Wrap(err)
	}

	return string(input), nil
}

// parseSource reads and parses the named source file.
func parseSource(
	ctx context.Context,
	source string,
) (lang.Expression, error) {
	input, err := readSource(source)
	if err != nil {
		return nil, err
	}

	expr, err := lang.ParseString(ctx, input, lang.WithLogger(loggerFrom(ctx)))
	if err != nil {
		printDiagnostic(os.Stderr, err)

		return nil, err
	}

	return expr, nil
}
