package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/lo"

	"github.com/syssam/crudgen/compiler/gen"
	"github.com/syssam/crudgen/compiler/load"
	"github.com/syssam/crudgen/internal/config"
	"github.com/syssam/crudgen/internal/logger"
)

// env is the resolved state of one command run.
type env struct {
	cfg config.Config
	log logger.Logger
}

// setup loads the config file, applies the flag overrides and creates
// the logger. A missing config file is only an error if it was named
// explicitly.
func setup(opts *options, explicitConfig bool) (*env, error) {
	var (
		cfg config.Config
		err error
	)
	_, statErr := os.Stat(opts.configFile)
	switch {
	case statErr == nil:
		cfg, err = config.Load(opts.configFile)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", opts.configFile, err)
		}
	case errors.Is(statErr, os.ErrNotExist) && !explicitConfig:
		if opts.schema == "" {
			return nil, fmt.Errorf("no %s found: pass --schema or create one", opts.configFile)
		}
		cfg, err = config.Default(opts.schema)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("config %s: %w", opts.configFile, statErr)
	}

	if opts.schema != "" {
		cfg.Schema = opts.schema
	}
	if opts.target != "" {
		cfg.Target = opts.target
	}
	if opts.pkg != "" {
		cfg.Package = opts.pkg
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.Log.Encoding = opts.logFormat
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log.Named("crudgen")}, nil
}

// loadSchemas reads the entities of the configured schema: a directory is
// parsed as Go sources, anything else as a YAML schema file.
func (e *env) loadSchemas() ([]*load.Schema, error) {
	info, err := os.Stat(e.cfg.Schema)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return load.ParseDir(e.cfg.Schema, e.cfg.Package)
	}
	return load.LoadFile(e.cfg.Schema)
}

// types loads the entity descriptors.
func (e *env) types() ([]*gen.Type, error) {
	schemas, err := e.loadSchemas()
	if err != nil {
		return nil, err
	}
	types, err := gen.NewTypes(schemas...)
	if err != nil {
		return nil, err
	}
	e.log.Debugw("entities loaded", "schema", e.cfg.Schema, "entities", lo.Map(types, func(t *gen.Type, _ int) string {
		return t.Name()
	}))
	return types, nil
}

// genConfig returns the generator config. Generated Go code goes next to
// the annotated sources unless a target is set.
func (e *env) genConfig() (*gen.Config, error) {
	opts := append(e.cfg.Options(), gen.WithHooks(logHook(e.log)))
	if e.cfg.Target == "" {
		dir := e.cfg.Schema
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			dir = filepath.Dir(dir)
		}
		opts = append(opts, gen.WithTarget(dir))
	}
	return gen.NewConfig(opts...)
}

// logHook logs the build of every entity.
func logHook(log logger.Logger) gen.Hook {
	return func(next gen.Builder) gen.Builder {
		return gen.BuildFunc(func(ctx context.Context, t *gen.Type) (*gen.Artifacts, error) {
			start := time.Now()
			a, err := next.Build(ctx, t)
			if err != nil {
				log.Errorw("build failed", "entity", t.QualifiedName(), "error", err)
				return nil, err
			}
			log.Debugw("built", "entity", t.QualifiedName(),
				"repository", a.Repository.Name,
				"service", a.Service.Name,
				"took", time.Since(start))
			return a, nil
		})
	}
}
