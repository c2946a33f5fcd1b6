package gen

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/crudgen/compiler/load"
)

type recordingEmitter struct {
	mu    sync.Mutex
	names []string
	err   error
}

func (r *recordingEmitter) Emit(_ context.Context, a *Artifacts) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, a.Repository.Name, a.Service.Name)
	return r.err
}

func testTypes(t *testing.T, names ...string) []*Type {
	t.Helper()
	types := make([]*Type, 0, len(names))
	for _, name := range names {
		s := userSchema(&load.Crud{Fields: []string{"name"}})
		s.Name = name
		typ, err := NewType(s)
		require.NoError(t, err)
		types = append(types, typ)
	}
	return types
}

func TestConfigBuild(t *testing.T) {
	cfg := MustNewConfig()
	typ := userType(t, &load.Crud{Fields: []string{"name"}})

	a, err := cfg.Build(typ)
	require.NoError(t, err)
	assert.Same(t, typ, a.Entity)
	assert.Equal(t, "UserRepository", a.Repository.Name)
	assert.Equal(t, "UserService", a.Service.Name)
	assert.Equal(t, []*Artifact{a.Repository, a.Service}, a.List())

	typ.Crud = Crud{Filter: NewFilter(LikeNone, "missing")}
	a, err = cfg.Build(typ)
	require.Error(t, err)
	assert.Nil(t, a)
}

func TestGeneratorBuild(t *testing.T) {
	t.Run("keeps order", func(t *testing.T) {
		g := NewGenerator(MustNewConfig(WithWorkers(2)))
		out, err := g.Build(context.Background(), testTypes(t, "A", "B", "C", "D"))
		require.NoError(t, err)
		require.Len(t, out, 4)
		for i, name := range []string{"A", "B", "C", "D"} {
			assert.Equal(t, name+"Repository", out[i].Repository.Name)
		}
	})

	t.Run("wraps failures", func(t *testing.T) {
		types := testTypes(t, "A", "B")
		types[1].Crud = Crud{Filter: NewFilter(LikeNone, "nope")}
		_, err := NewGenerator(MustNewConfig()).Build(context.Background(), types)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrGenerationFailed)
		assert.ErrorIs(t, err, ErrUnresolvedFieldType)
		assert.Contains(t, err.Error(), "example.com/app/model.B")
	})

	t.Run("invalid config", func(t *testing.T) {
		g := NewGenerator(&Config{Naming: DefaultNaming()})
		_, err := g.Build(context.Background(), nil)
		require.ErrorIs(t, err, ErrMissingConfig)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewGenerator(MustNewConfig()).Build(ctx, testTypes(t, "A"))
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestGeneratorHooks(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []string
	)
	hook := func(name string) Hook {
		return func(next Builder) Builder {
			return BuildFunc(func(ctx context.Context, typ *Type) (*Artifacts, error) {
				mu.Lock()
				calls = append(calls, name+":"+typ.Name())
				mu.Unlock()
				return next.Build(ctx, typ)
			})
		}
	}
	g := NewGenerator(MustNewConfig(WithWorkers(1), WithHooks(hook("outer"), hook("inner"))))
	_, err := g.Build(context.Background(), testTypes(t, "A"))
	require.NoError(t, err)
	assert.Equal(t, []string{"outer:A", "inner:A"}, calls)

	failing := func(Builder) Builder {
		return BuildFunc(func(context.Context, *Type) (*Artifacts, error) {
			return nil, errors.New("hook failed")
		})
	}
	_, err = NewGenerator(MustNewConfig(WithHooks(failing))).Build(context.Background(), testTypes(t, "A"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hook failed")
}

func TestGeneratorGenerate(t *testing.T) {
	t.Run("requires emitter", func(t *testing.T) {
		err := NewGenerator(MustNewConfig()).Generate(context.Background(), testTypes(t, "A"))
		require.ErrorIs(t, err, ErrMissingConfig)
	})

	t.Run("emits every entity", func(t *testing.T) {
		em := &recordingEmitter{}
		g := NewGenerator(MustNewConfig()).WithEmitter(em)
		require.NoError(t, g.Generate(context.Background(), testTypes(t, "A", "B")))
		assert.ElementsMatch(t, []string{"ARepository", "AService", "BRepository", "BService"}, em.names)
	})

	t.Run("nothing emitted on build failure", func(t *testing.T) {
		em := &recordingEmitter{}
		types := testTypes(t, "A", "B")
		types[0].Crud = Crud{Filter: NewFilter(LikeNone, "nope")}
		err := NewGenerator(MustNewConfig()).WithEmitter(em).Generate(context.Background(), types)
		require.Error(t, err)
		assert.Empty(t, em.names)
	})

	t.Run("emitter failure", func(t *testing.T) {
		em := &recordingEmitter{err: errors.New("disk full")}
		err := NewGenerator(MustNewConfig()).WithEmitter(em).Generate(context.Background(), testTypes(t, "A"))
		require.EqualError(t, err, "disk full")
	})
}
