package cli

import (
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/bef0/bricks/log"
)

// logConfig holds the logging flags shared by all commands.
type logConfig struct {
	Level  string `default:"info" enum:"${logLevelEnum}"  help:"Minimum log level."   placeholder:"${enum}"`
	Format string `default:"text" enum:"${logFormatEnum}" help:"Log output format."   placeholder:"${enum}"`
}

func (logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelEnum":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormatEnum": strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging"

	return group
}

// make builds the logger described by the parsed flags.
func (c logConfig) make() log.Logger {
	level, _ := log.ParseLevel(c.Level)
	format, _ := log.ParseFormat(c.Format)

	return log.Make(
		os.Stderr,
		log.WithLevel(level),
		log.WithFormat(format),
	)
}
