//go:build !pprof

package profile

// Modes returns no profiling modes when built without the pprof build tag.
func Modes() []string { return nil }

// Start is a no-op when built without the pprof build tag.
func Start(string, string) (stop func()) { return func() {} }
