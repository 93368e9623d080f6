package streamer

import (
	"github.com/kbukum/streamkit/logger"
	"github.com/kbukum/streamkit/observability"
	"github.com/kbukum/streamkit/validation"
)

// Config carries the engine knobs a service typically loads from its
// configuration file. The zero value selects the unbounded engine.
type Config struct {
	// Prefetch bounds the number of concurrently outstanding, unyielded
	// requests. Zero or absent disables the bound.
	Prefetch int `yaml:"prefetch" mapstructure:"prefetch" validate:"gte=0"`
	// Debug enables counter diagnostics during windowed streaming.
	Debug bool `yaml:"debug" mapstructure:"debug"`
}

// Validate validates the configuration.
func (c Config) Validate() error {
	return validation.Validate(c)
}

// settings holds the assembled engine options.
type settings struct {
	prefetch int
	debug    bool
	tracing  bool
	service  string
	log      *logger.Logger
	metrics  *observability.Metrics
}

func defaultSettings() settings {
	return settings{
		service: "streamer",
		log:     logger.Get("streamer"),
	}
}

// Option configures a Streamer.
type Option func(*settings)

// WithPrefetch bounds concurrently outstanding, unyielded requests to n.
// Values <= 0 select the unbounded engine.
func WithPrefetch(n int) Option {
	return func(s *settings) {
		if n < 0 {
			n = 0
		}
		s.prefetch = n
	}
}

// WithDebug toggles counter diagnostics during windowed streaming. The
// diagnostics are reported only when the logger has debug enabled and
// the dispatcher exposes Counters.
func WithDebug(enabled bool) Option {
	return func(s *settings) { s.debug = enabled }
}

// WithLogger sets the logger used for engine diagnostics.
func WithLogger(log *logger.Logger) Option {
	return func(s *settings) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetrics enables metric recording through the given instruments.
// A nil handle disables recording.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// WithTracing enables a span per stream.
func WithTracing() Option {
	return func(s *settings) { s.tracing = true }
}

// WithServiceName sets the service name attached to spans and metrics.
func WithServiceName(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.service = name
		}
	}
}

// FromConfig applies a loaded Config.
func FromConfig(cfg Config) Option {
	return func(s *settings) {
		if cfg.Prefetch >= 0 {
			s.prefetch = cfg.Prefetch
		}
		s.debug = cfg.Debug
	}
}
