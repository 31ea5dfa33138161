// Package profile provides optional runtime profiling for lmx.
//
// Profiling is backed by [github.com/pkg/profile] and is compiled in only
// with the "pprof" build tag:
//
//	go build -tags pprof .
//	lmx --pprof-mode cpu expand -p template.lmx -d vars.def
//
// Without the tag, [Start] always returns a no-op [Stopper] and [Modes]
// returns nil. Profile files are written to the directory given by
// [WithPath], named after the mode (cpu.pprof, mem.pprof, ...), and can be
// inspected with "go tool pprof".
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
