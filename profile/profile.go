package profile

// Tag is the build tag that enables profiling, also used as the name of the
// default output subdirectory.
const Tag = "pprof"

// Profiler describes one profiling session.
type Profiler struct {
	// Mode is one of [Modes]. An empty mode disables profiling.
	Mode string
	// Path is the output directory. Empty means the working directory.
	Path string
	// Quiet suppresses the profiler's own start and stop messages.
	Quiet bool
}

// Start starts profiling and returns a handle for stopping it.
//
// If the binary was built without the pprof tag, or Mode is empty or unknown,
// Start returns a no-op handle. Both Start and Stop are always safely callable.
func (p Profiler) Start() interface{ Stop() } {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
