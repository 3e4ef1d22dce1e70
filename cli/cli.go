// Package cli defines the command-line interface for the bricks tool.
package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/bef0/bricks/cli/cmd"
	"github.com/bef0/bricks/pkg"
)

// CLI is the top-level command-line interface for bricks.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Fmt    cmd.Fmt    `cmd:"" default:"withargs" help:"Parse source and re-render it (round-trip formatter)."`
	Eval   cmd.Eval   `cmd:""                    help:"Parse, lower, and evaluate source."`
	Export cmd.Export `cmd:""                    help:"Evaluate source and export the result as JSON or YAML."`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`
}

// Run executes the bricks CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	vars := kong.Vars{
		"version": pkg.Version,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact: true,
				Summary: true,
			}),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Stuff the configured logger for use by commands.
	ctx = cmd.WithLogger(ctx, cli.Log.make())

	// [pprofConfig.start] is a no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start()()

	// Execute the selected command
	return ktx.Run(ctx, &cli)
}
