package peak

import "log"

const (
	// DefaultMaxIterations bounds the nonlinear fit.
	DefaultMaxIterations = 100
	// DefaultTolerance is the relative chi-squared decrease at which the
	// nonlinear fit stops.
	DefaultTolerance = 1e-8
	// DefaultInitialLinewidth seeds every axis linewidth of a nonlinear fit.
	DefaultInitialLinewidth = 2.0
)

// LinewidthMethod selects how the locator measures a candidate's linewidth.
type LinewidthMethod int

const (
	// LinewidthParabolic uses a three-point parabola through the candidate.
	LinewidthParabolic LinewidthMethod = iota
	// LinewidthHalfMax walks outward to the interpolated half-height
	// crossings, see [HalfMaxLinewidth].
	LinewidthHalfMax
)

func (m LinewidthMethod) String() string {
	switch m {
	case LinewidthParabolic:
		return "parabolic"
	case LinewidthHalfMax:
		return "half-max"
	default:
		return "unknown"
	}
}

// Config holds locator and fitter settings.
type Config struct {
	LinewidthMethod  LinewidthMethod
	MaxIterations    int
	Tolerance        float64
	InitialLinewidth float64
	// Logger receives diagnostics when non-nil.
	Logger *log.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the reference settings.
func DefaultConfig() Config {
	return Config{
		LinewidthMethod:  LinewidthParabolic,
		MaxIterations:    DefaultMaxIterations,
		Tolerance:        DefaultTolerance,
		InitialLinewidth: DefaultInitialLinewidth,
	}
}

// WithLinewidthMethod selects the locator linewidth measurement.
func WithLinewidthMethod(m LinewidthMethod) Option {
	return func(cfg *Config) {
		if m == LinewidthParabolic || m == LinewidthHalfMax {
			cfg.LinewidthMethod = m
		}
	}
}

// WithMaxIterations sets the nonlinear fit iteration cap.
func WithMaxIterations(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.MaxIterations = n
		}
	}
}

// WithTolerance sets the nonlinear fit convergence tolerance.
func WithTolerance(tol float64) Option {
	return func(cfg *Config) {
		if tol > 0 {
			cfg.Tolerance = tol
		}
	}
}

// WithInitialLinewidth sets the starting linewidth of every fitted axis.
func WithInitialLinewidth(lw float64) Option {
	return func(cfg *Config) {
		if lw > 0 {
			cfg.InitialLinewidth = lw
		}
	}
}

// WithLogger enables diagnostic logging.
func WithLogger(l *log.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = l
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (cfg Config) logf(format string, args ...any) {
	if cfg.Logger != nil {
		cfg.Logger.Printf(format, args...)
	}
}
