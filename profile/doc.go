// Package profile provides optional runtime profiling for devrc.
//
// Profiling is backed by [github.com/pkg/profile] and compiled in only with
// the "pprof" build tag:
//
//	go build -tags pprof .
//	./devrc --pprof-mode cpu run main.devrc
//	go tool pprof -http=: ~/.cache/devrc/pprof/cpu.pprof
//
// Without the tag every [Profiler] is a no-op and [Modes] is empty.
//
// Supported modes: allocs, block, clock, cpu, goroutine, heap, mem, mutex,
// thread and trace. Profiles are written to [Profiler.Path] with names
// matching the mode (cpu.pprof, mem.pprof, ...).
package profile
