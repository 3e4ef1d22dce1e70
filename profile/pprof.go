//go:build pprof

package profile

import (
	"maps"
	"slices"

	"github.com/pkg/profile"

	_ "net/http/pprof" // register HTTP handlers
)

var mode = map[string]func(*profile.Profile){
	"block":     profile.BlockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"mem":       profile.MemProfile,
	"allocs":    profile.MemProfileAllocs,
	"heap":      profile.MemProfileHeap,
	"mutex":     profile.MutexProfile,
	"trace":     profile.TraceProfile,
}

// Modes returns the list of supported profiling modes when built with the
// pprof build tag.
func Modes() []string {
	return slices.Sorted(maps.Keys(mode))
}

// Start begins profiling in the given mode, writing output under dir.
// The returned function stops profiling; it is safe to call when no
// profiling was started.
func Start(m, dir string) (stop func()) {
	fn, ok := mode[m]
	if !ok {
		return func() {}
	}

	opts := []func(*profile.Profile){fn, profile.Quiet}
	if dir != "" {
		opts = append(opts, profile.ProfilePath(dir))
	}

	p := profile.Start(opts...)

	return p.Stop
}
