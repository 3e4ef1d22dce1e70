// Package profile provides optional runtime profiling for the bricks CLI.
//
// This package integrates [github.com/pkg/profile] to provide runtime
// profiling when the binary is built with the "pprof" build tag. Without
// the tag, all functions are no-ops and the profiling dependency stays out
// of the binary.
package profile
