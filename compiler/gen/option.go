package gen

import (
	"errors"
)

// Option configures code generation.
type Option func(*Config) error

// WithNaming replaces the whole naming policy.
func WithNaming(n NamingPolicy) Option {
	return func(c *Config) error {
		if err := n.Validate(); err != nil {
			return err
		}
		c.Naming = n
		return nil
	}
}

// WithClassesPrefix sets the prefix shared by repository and service names.
func WithClassesPrefix(prefix string) Option {
	return func(c *Config) error {
		c.Naming.ClassesPrefix = prefix
		return nil
	}
}

// WithRepositorySuffix sets the suffix of repository names.
func WithRepositorySuffix(suffix string) Option {
	return func(c *Config) error {
		if suffix == "" {
			return NewNamingError("repository suffix", suffix, "must not be empty")
		}
		c.Naming.RepositorySuffix = suffix
		return nil
	}
}

// WithServiceSuffix sets the suffix of service names.
func WithServiceSuffix(suffix string) Option {
	return func(c *Config) error {
		if suffix == "" {
			return NewNamingError("service suffix", suffix, "must not be empty")
		}
		c.Naming.ServiceSuffix = suffix
		return nil
	}
}

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithRuntimePackage sets the import path of the crud runtime types.
// For example: "github.com/org/project/crud".
func WithRuntimePackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("RuntimePackage", nil, "package cannot be empty")
		}
		c.RuntimePackage = pkg
		return nil
	}
}

// WithHeader sets the file header comment.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithWorkers sets the number of entities built in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigError("Workers", n, "workers cannot be negative")
		}
		c.Workers = n
		return nil
	}
}

// WithHooks adds build hooks.
func WithHooks(hooks ...Hook) Option {
	return func(c *Config) error {
		c.Hooks = append(c.Hooks, hooks...)
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

// NewConfig creates a Config with default naming and runtime package,
// then applies the given options and validates the result.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Naming:         DefaultNaming(),
		RuntimePackage: DefaultRuntimePackage,
		Header:         DefaultHeader,
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
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
