package tracelet

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultMaxSpansPerTrace caps how many spans a single trace may accumulate
// before StartSpan starts refusing. Pathological instrumentation (an
// unbounded recursion, say) should degrade the trace, not the process.
const DefaultMaxSpansPerTrace = 10000

// Config holds recorder configuration. The zero value is usable; fields left
// at their zero value fall back to defaults.
//
// Config can be populated from a YAML file with LoadConfig, with
// TRACELET_* environment variables taking precedence over file values.
type Config struct {
	// Environment labels the traces produced by this recorder
	// (e.g. "production", "staging").
	Environment string `yaml:"environment"`

	// MaxSpansPerTrace caps the span count of a single trace.
	// Defaults to DefaultMaxSpansPerTrace.
	MaxSpansPerTrace int `yaml:"max_spans_per_trace"`

	// Evaluate marks spans recorded by this recorder as belonging to an
	// evaluation-harness run; it is the flag passed to the ambient
	// request-id resolution on span start.
	Evaluate bool `yaml:"evaluate"`
}

// Validate checks the configuration for impossible values.
func (c *Config) Validate() error {
	if c.MaxSpansPerTrace < 0 {
		return fmt.Errorf("%w: max_spans_per_trace must be non-negative", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads a Config from a YAML file and applies environment
// variable overrides. Recognized variables:
//
//	TRACELET_ENVIRONMENT
//	TRACELET_MAX_SPANS_PER_TRACE
//	TRACELET_EVALUATE
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapErrorf(err, "reading config %s", path)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, WrapErrorf(err, "parsing config %s", path)
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnvOverrides overlays TRACELET_* environment variables onto cfg.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TRACELET_ENVIRONMENT"); v != "" {
		cfg.Environment = v
	}
	if v := os.Getenv("TRACELET_MAX_SPANS_PER_TRACE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxSpansPerTrace = n
		}
	}
	if v := os.Getenv("TRACELET_EVALUATE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Evaluate = b
		}
	}
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithConfig applies a full Config to the recorder.
func WithConfig(cfg Config) Option {
	return func(r *Recorder) { r.cfg = cfg }
}

// WithEnvironment sets the environment label for recorded traces.
func WithEnvironment(env string) Option {
	return func(r *Recorder) { r.cfg.Environment = env }
}

// WithMaxSpansPerTrace caps the span count of a single trace.
func WithMaxSpansPerTrace(n int) Option {
	return func(r *Recorder) { r.cfg.MaxSpansPerTrace = n }
}

// WithEvaluateMode marks the recorder as recording evaluation-harness runs;
// ambient request ids are then resolved with the evaluation flag set.
func WithEvaluateMode() Option {
	return func(r *Recorder) { r.cfg.Evaluate = true }
}

// WithLogger sets the structured logger used by the recorder.
// Defaults to NopLogger.
func WithLogger(logger StructuredLogger) Option {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithSignatureRegistry sets the signature registry consulted when capturing
// call inputs. Defaults to the package-level registry.
func WithSignatureRegistry(reg *SignatureRegistry) Option {
	return func(r *Recorder) {
		if reg != nil {
			r.registry = reg
		}
	}
}
