// Package config loads the crudgen.yaml file of a project.
//
// Values may reference environment variables as ${VAR}; a .env file in the
// working directory is loaded first. Missing values take the defaults of
// the `default` struct tags and the result is checked with the `validate`
// tags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/code19m/errx"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/syssam/crudgen/compiler/gen"
	"github.com/syssam/crudgen/internal/logger"
)

// DefaultFile is the config file looked up when none is given.
const DefaultFile = "crudgen.yaml"

// Config is the project configuration of the crudgen command.
type Config struct {
	// Schema is a YAML schema file or a directory of Go sources.
	Schema string `yaml:"schema" validate:"required"`
	// Target is the output directory. Defaults to the schema directory
	// for Go sources.
	Target string `yaml:"target"`
	// Package overrides the import path of entities loaded from Go sources.
	Package string `yaml:"package"`

	RuntimePackage string `yaml:"runtime_package" default:"github.com/syssam/crudgen/crud" validate:"required"`
	Header         string `yaml:"header" default:"Code generated by crudgen, DO NOT EDIT."`
	Workers        int    `yaml:"workers" validate:"gte=0"`

	Naming Naming        `yaml:"naming"`
	Log    logger.Config `yaml:"log"`
}

// Naming configures artifact names.
type Naming struct {
	RepositorySuffix string `yaml:"repository_suffix" default:"Repository" validate:"required"`
	ServiceSuffix    string `yaml:"service_suffix" default:"Service" validate:"required,nefield=RepositorySuffix"`
	ClassesPrefix    string `yaml:"classes_prefix"`
}

// Policy returns the naming policy of the generator.
func (n Naming) Policy() gen.NamingPolicy {
	return gen.NamingPolicy{
		RepositorySuffix: n.RepositorySuffix,
		ServiceSuffix:    n.ServiceSuffix,
		ClassesPrefix:    n.ClassesPrefix,
	}
}

// Load reads the config file at path.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errx.Wrap(err, errx.WithDetails(errx.D{"path": path}))
	}
	return Parse(data)
}

// Parse decodes, defaults and validates config data.
func Parse(data []byte) (Config, error) {
	var cfg Config
	data = []byte(os.ExpandEnv(string(data)))
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errx.Wrap(err)
	}
	if err := defaults.Set(&cfg); err != nil {
		return Config{}, errx.Wrap(err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the defaults for the given schema.
func Default(schema string) (Config, error) {
	cfg := Config{Schema: schema}
	if err := defaults.Set(&cfg); err != nil {
		return Config{}, errx.Wrap(err)
	}
	return cfg, nil
}

// Validate checks the struct tags of cfg.
func Validate(cfg Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(cfg)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return errx.Wrap(err)
	}
	failedFields := make([]string, 0, len(errs))
	for _, e := range errs {
		tagErr := e.Tag()
		if e.Param() != "" {
			tagErr += fmt.Sprintf("=%s", e.Param())
		}
		failedFields = append(failedFields, fmt.Sprintf("%s: %s", e.Namespace(), tagErr))
	}
	return errx.New("[config]: invalid fields -> " + strings.Join(failedFields, ", "))
}

// Options returns the generator options of the config.
func (c Config) Options() []gen.Option {
	opts := []gen.Option{
		gen.WithNaming(c.Naming.Policy()),
		gen.WithRuntimePackage(c.RuntimePackage),
		gen.WithHeader(c.Header),
		gen.WithWorkers(c.Workers),
	}
	if c.Target != "" {
		opts = append(opts, gen.WithTarget(c.Target))
	}
	return opts
}
