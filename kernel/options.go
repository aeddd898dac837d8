package kernel

import (
	"github.com/cwbudde/algo-nmr/contour"
	"github.com/cwbudde/algo-nmr/peak"
)

// Config selects the implementations behind a Kernel.
type Config struct {
	ContourOptions []contour.Option
	LocatorOptions []peak.Option
	FitterOptions  []peak.Option
	// FitBackend enables the nonlinear fitter. Without it FitPeaks returns
	// ErrNotImplemented.
	FitBackend bool
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a configuration with every component enabled and
// default settings.
func DefaultConfig() Config {
	return Config{FitBackend: true}
}

// WithContourOptions configures the contour tracer.
func WithContourOptions(opts ...contour.Option) Option {
	return func(cfg *Config) {
		cfg.ContourOptions = append(cfg.ContourOptions, opts...)
	}
}

// WithLocatorOptions configures the peak locator.
func WithLocatorOptions(opts ...peak.Option) Option {
	return func(cfg *Config) {
		cfg.LocatorOptions = append(cfg.LocatorOptions, opts...)
	}
}

// WithFitterOptions configures the nonlinear fitter.
func WithFitterOptions(opts ...peak.Option) Option {
	return func(cfg *Config) {
		cfg.FitterOptions = append(cfg.FitterOptions, opts...)
	}
}

// WithoutFitBackend disables the nonlinear fitter.
func WithoutFitBackend() Option {
	return func(cfg *Config) {
		cfg.FitBackend = false
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
