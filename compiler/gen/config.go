package gen

import (
	"unicode"
)

// DefaultRuntimePackage is the import path of the runtime types referenced
// by emitted Go code.
const DefaultRuntimePackage = "github.com/syssam/crudgen/crud"

// DefaultHeader is the header comment of emitted files.
const DefaultHeader = "Code generated by crudgen, DO NOT EDIT."

// NamingPolicy derives the names of generated artifacts.
type NamingPolicy struct {
	// RepositorySuffix is appended to repository artifact names.
	RepositorySuffix string `yaml:"repository_suffix" json:"repository_suffix"`
	// ServiceSuffix is appended to service artifact names.
	ServiceSuffix string `yaml:"service_suffix" json:"service_suffix"`
	// ClassesPrefix is prepended to the names of both artifact kinds.
	ClassesPrefix string `yaml:"classes_prefix" json:"classes_prefix"`
}

// DefaultNaming returns the naming policy used when none is configured.
func DefaultNaming() NamingPolicy {
	return NamingPolicy{
		RepositorySuffix: "Repository",
		ServiceSuffix:    "Service",
	}
}

// Validate reports a NamingError if the policy cannot produce distinct,
// valid artifact names.
func (n NamingPolicy) Validate() error {
	if n.RepositorySuffix == "" {
		return NewNamingError("repository suffix", n.RepositorySuffix, "must not be empty")
	}
	if n.ServiceSuffix == "" {
		return NewNamingError("service suffix", n.ServiceSuffix, "must not be empty")
	}
	if n.RepositorySuffix == n.ServiceSuffix {
		return NewNamingError("service suffix", n.ServiceSuffix, "must differ from the repository suffix")
	}
	for _, part := range []struct{ option, value string }{
		{"repository suffix", n.RepositorySuffix},
		{"service suffix", n.ServiceSuffix},
		{"classes prefix", n.ClassesPrefix},
	} {
		if !identPart(part.value) {
			return NewNamingError(part.option, part.value, "must contain only letters, digits and underscores")
		}
	}
	if n.ClassesPrefix != "" && unicode.IsDigit([]rune(n.ClassesPrefix)[0]) {
		return NewNamingError("classes prefix", n.ClassesPrefix, "must not start with a digit")
	}
	return nil
}

// RepositoryName returns the repository artifact name of an entity:
// <classesPrefix><entityName><repositorySuffix>.
func (n NamingPolicy) RepositoryName(entity string) string {
	return n.ClassesPrefix + entity + n.RepositorySuffix
}

// ServiceName returns the service artifact name of an entity:
// <classesPrefix><entityName><serviceSuffix>.
func (n NamingPolicy) ServiceName(entity string) string {
	return n.ClassesPrefix + entity + n.ServiceSuffix
}

func identPart(s string) bool {
	for _, r := range s {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

// Config holds the configuration of a generation run.
type Config struct {
	// Naming derives the artifact names.
	Naming NamingPolicy
	// Target is the output directory of emitted files. Empty means the
	// directory of each entity's package is not known and emitters must
	// be given one explicitly.
	Target string
	// RuntimePackage is the import path of the crud runtime types.
	RuntimePackage string
	// Header is the comment placed at the top of emitted files.
	Header string
	// Workers bounds the number of entities built in parallel.
	// Zero means GOMAXPROCS.
	Workers int
	// Hooks wrap the per-entity build step.
	Hooks []Hook
}

// Validate checks the configuration for degenerate values.
func (c *Config) Validate() error {
	if c == nil {
		return NewConfigError("Config", nil, "config is nil")
	}
	if err := c.Naming.Validate(); err != nil {
		return err
	}
	if c.RuntimePackage == "" {
		return NewConfigError("RuntimePackage", nil, "runtime package cannot be empty")
	}
	if c.Workers < 0 {
		return NewConfigError("Workers", c.Workers, "workers cannot be negative")
	}
	return nil
}
