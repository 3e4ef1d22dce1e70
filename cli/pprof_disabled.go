//go:build !pprof

package cli

import "github.com/alecthomas/kong"

// pprofConfig is empty when built without the pprof build tag; profiling
// flags and their dependency stay out of the binary.
type pprofConfig struct{}

func (pprofConfig) vars() kong.Vars { return kong.Vars{} }

func (pprofConfig) group() kong.Group {
	var group kong.Group

	group.Key = "pprof"
	group.Title = "Profiling (pprof)"

	return group
}

func (pprofConfig) start() (stop func()) { return func() {} }
