//go:build pprof

package cli

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/bef0/bricks/profile"
)

// pprofConfig holds the profiling flags available when built with the pprof
// build tag.
type pprofConfig struct {
	Mode string `default:"" enum:",${pprofModeEnum}" help:"Enable profiling"         placeholder:"${enum}" short:"p"`
	Dir  string `default:""                          help:"Profile output directory" type:"path"`
}

func (pprofConfig) vars() kong.Vars {
	return kong.Vars{
		"pprofModeEnum": strings.Join(profile.Modes(), ","),
	}
}

func (pprofConfig) group() kong.Group {
	var group kong.Group

	group.Key = "pprof"
	group.Title = "Profiling (pprof)"

	return group
}

// start starts profiling if configured.
func (f pprofConfig) start() (stop func()) {
	if f.Mode == "" {
		return func() {}
	}

	return profile.Start(f.Mode, f.Dir)
}
