package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/bef0/bricks/cli"
	"github.com/bef0/bricks/lang"
	"github.com/bef0/bricks/log"
)

func main() {
	if err := cli.Run(context.Background(), os.Exit, os.Args[1:]...); err != nil {
		// Parse errors are already rendered with a source snippet.
		pe := &lang.ParseError{}
		if !errors.As(err, &pe) {
			log.Error("run failed", slog.Any("error", err))
		}

		os.Exit(1)
	}
}
