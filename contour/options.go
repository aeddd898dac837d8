package contour

// DefaultLinkDistance is the vertex grouping threshold in grid units.
const DefaultLinkDistance = 2.0

// Linker selects the vertex grouping strategy.
type Linker int

const (
	// LinkSpatialIndex buckets vertices on a grid with cell size equal to the
	// link distance and only compares vertices in adjacent buckets.
	LinkSpatialIndex Linker = iota
	// LinkPairwise compares every vertex against every other vertex.
	LinkPairwise
)

// String returns the strategy name.
func (l Linker) String() string {
	switch l {
	case LinkSpatialIndex:
		return "spatial-index"
	case LinkPairwise:
		return "pairwise"
	default:
		return "unknown"
	}
}

// Config holds tracer settings.
type Config struct {
	LinkDistance float64
	Linker       Linker
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the reference settings.
func DefaultConfig() Config {
	return Config{
		LinkDistance: DefaultLinkDistance,
		Linker:       LinkSpatialIndex,
	}
}

// WithLinkDistance sets the vertex grouping threshold. Non-positive values
// are ignored.
func WithLinkDistance(d float64) Option {
	return func(cfg *Config) {
		if d > 0 {
			cfg.LinkDistance = d
		}
	}
}

// WithLinker selects the vertex grouping strategy. Unknown values are
// ignored.
func WithLinker(l Linker) Option {
	return func(cfg *Config) {
		if l == LinkSpatialIndex || l == LinkPairwise {
			cfg.Linker = l
		}
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
