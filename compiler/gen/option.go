package gen

import (
	"errors"
	"strings"

	"go.uber.org/zap"
)

// Default configuration values.
const (
	// DefaultHeader is the comment placed at the top of each generated file.
	DefaultHeader = "Code generated by multiver. DO NOT EDIT."
	// DefaultSuffix names generated files: <enum label><suffix>.
	DefaultSuffix = "_multiver.go"
	// DefaultWorkers is the number of files written concurrently.
	DefaultWorkers = 4
)

// Import paths referenced by the generated code.
const (
	// RuntimePkg is the runtime package the generated code depends on.
	RuntimePkg = "github.com/multiver-io/multiver"
	// SemverPkg provides the version type the generated methods take.
	SemverPkg = "github.com/Masterminds/semver/v3"
)

// Config holds the global codegen configuration.
type Config struct {
	// Header is the comment placed at the top of each generated file.
	Header string
	// Suffix names generated files: <enum label><suffix>.
	Suffix string
	// Target is the output directory. Empty writes each file next to the
	// package its enum was loaded from.
	Target string
	// Runtime is the import path of the runtime package. Override it when
	// the runtime is vendored under another path.
	Runtime string
	// Workers is the number of files written concurrently.
	Workers int
	// Logger used during generation.
	Logger *zap.Logger
}

// normalize returns a copy of the config with zero fields filled from the
// defaults. A nil receiver yields the default configuration.
func (c *Config) normalize() *Config {
	if c == nil {
		return MustNewConfig()
	}
	out := *c
	if out.Header == "" {
		out.Header = DefaultHeader
	}
	if out.Suffix == "" {
		out.Suffix = DefaultSuffix
	}
	if out.Runtime == "" {
		out.Runtime = RuntimePkg
	}
	if out.Workers <= 0 {
		out.Workers = DefaultWorkers
	}
	if out.Logger == nil {
		out.Logger = zap.NewNop()
	}
	return &out
}

// Option configures code generation.
type Option func(*Config) error

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithSuffix sets the generated file suffix.
// For example: "_versions.go".
func WithSuffix(suffix string) Option {
	return func(c *Config) error {
		if !strings.HasSuffix(suffix, ".go") {
			return NewConfigError("Suffix", suffix, "suffix must end in .go")
		}
		c.Suffix = suffix
		return nil
	}
}

// WithTarget sets the output directory.
// The directory where generated code will be written.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithRuntime sets the import path of the runtime package.
// For example: "github.com/org/project/vendored/multiver".
func WithRuntime(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return NewConfigError("Runtime", nil, "runtime import path cannot be empty")
		}
		c.Runtime = path
		return nil
	}
}

// WithWorkers sets the number of files written concurrently.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "worker count must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithLogger sets the logger used during generation.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) error {
		if logger == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = logger
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options applied over the
// defaults.
func NewConfig(opts ...Option) (*Config, error) {
	c := (&Config{}).normalize()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
