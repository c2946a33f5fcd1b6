package gen

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Artifacts holds the artifacts generated for one entity.
type Artifacts struct {
	Entity     *Type
	Repository *Artifact
	Service    *Artifact
}

// List returns the artifacts in emission order.
func (a *Artifacts) List() []*Artifact {
	return []*Artifact{a.Repository, a.Service}
}

type (
	// Builder builds the artifacts of one entity.
	Builder interface {
		Build(ctx context.Context, t *Type) (*Artifacts, error)
	}

	// BuildFunc adapts a function to the Builder interface.
	BuildFunc func(ctx context.Context, t *Type) (*Artifacts, error)

	// Hook wraps a Builder, e.g. to log or time the build of each entity.
	//
	//	func logHook(next gen.Builder) gen.Builder {
	//		return gen.BuildFunc(func(ctx context.Context, t *gen.Type) (*gen.Artifacts, error) {
	//			log.Println("building", t.Name())
	//			return next.Build(ctx, t)
	//		})
	//	}
	Hook func(Builder) Builder

	// Emitter turns the artifacts of an entity into output.
	Emitter interface {
		Emit(ctx context.Context, a *Artifacts) error
	}
)

// Build calls f(ctx, t).
func (f BuildFunc) Build(ctx context.Context, t *Type) (*Artifacts, error) {
	return f(ctx, t)
}

// Build builds the repository and service artifacts of t with the
// options declared on t. No artifact is returned if either build fails.
func (c *Config) Build(t *Type) (*Artifacts, error) {
	repo, err := BuildRepository(c.Naming, t.Crud, t)
	if err != nil {
		return nil, err
	}
	svc, err := BuildService(c.Naming, t.Crud, t)
	if err != nil {
		return nil, err
	}
	return &Artifacts{Entity: t, Repository: repo, Service: svc}, nil
}

// Generator builds and emits the artifacts of many entities in parallel.
type Generator struct {
	cfg     *Config
	emitter Emitter
	builder Builder
	workers int
}

// NewGenerator creates a Generator. Hooks of the config wrap the
// per-entity build, the first hook being the outermost.
func NewGenerator(cfg *Config) *Generator {
	var b Builder = BuildFunc(func(_ context.Context, t *Type) (*Artifacts, error) {
		return cfg.Build(t)
	})
	for i := len(cfg.Hooks) - 1; i >= 0; i-- {
		b = cfg.Hooks[i](b)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Generator{cfg: cfg, builder: b, workers: workers}
}

// WithEmitter sets the emitter used by Generate.
func (g *Generator) WithEmitter(e Emitter) *Generator {
	g.emitter = e
	return g
}

// Config returns the generator configuration.
func (g *Generator) Config() *Config {
	return g.cfg
}

// Build builds the artifacts of all types. The result keeps the order of
// types. The first failure cancels the remaining builds.
func (g *Generator) Build(ctx context.Context, types []*Type) ([]*Artifacts, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}
	out := make([]*Artifacts, len(types))
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.workers)
	for i, t := range types {
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a, err := g.builder.Build(ctx, t)
			if err != nil {
				return NewGenerationError(t.QualifiedName(), "", "build artifacts", err)
			}
			out[i] = a
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Generate builds the artifacts of all types and hands them to the emitter.
// Nothing is emitted if any build fails.
func (g *Generator) Generate(ctx context.Context, types []*Type) error {
	if g.emitter == nil {
		return NewConfigError("Emitter", nil, "no emitter set: call WithEmitter() before Generate()")
	}
	artifacts, err := g.Build(ctx, types)
	if err != nil {
		return err
	}
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.workers)
	for _, a := range artifacts {
		errg.Go(func() error {
			return g.emitter.Emit(ctx, a)
		})
	}
	return errg.Wait()
}
