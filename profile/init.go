package profile

// Settings are the parameters of one profiling session.
type Settings struct {
	Mode  string
	Path  string
	Quiet bool
}

// Option modifies profiling settings.
type Option func(Settings) Settings

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Start begins a profiling session configured by opts.
//
// If the pprof build tag is unset, or the mode is empty or unknown, Start
// returns a no-op implementation. Both Start and Stop are always safely
// callable.
func Start(opts ...Option) Stopper {
	var s Settings

	for _, opt := range opts {
		s = opt(s)
	}

	if s.Mode == "" {
		return ignore{}
	}

	return start(s)
}

// WithMode selects the profiling mode (see [Modes]).
func WithMode(mode string) Option {
	return func(s Settings) Settings {
		s.Mode = mode

		return s
	}
}

// WithPath sets the output directory.
func WithPath(path string) Option {
	return func(s Settings) Settings {
		s.Path = path

		return s
	}
}

// WithQuiet suppresses the profiler's own log messages.
func WithQuiet(quiet bool) Option {
	return func(s Settings) Settings {
		s.Quiet = quiet

		return s
	}
}

type ignore struct{}

func (ignore) Stop() {}
