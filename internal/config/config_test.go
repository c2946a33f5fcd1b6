package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/crudgen/compiler/gen"
)

func TestParse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Parse([]byte("schema: ./model\n"))
		require.NoError(t, err)

		assert.Equal(t, "./model", cfg.Schema)
		assert.Equal(t, gen.DefaultRuntimePackage, cfg.RuntimePackage)
		assert.Equal(t, gen.DefaultHeader, cfg.Header)
		assert.Equal(t, gen.DefaultNaming(), cfg.Naming.Policy())
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Encoding)
	})

	t.Run("explicit values", func(t *testing.T) {
		cfg, err := Parse([]byte(`
schema: schema.yaml
target: ./out
workers: 3
naming:
  repository_suffix: Dao
  service_suffix: Manager
  classes_prefix: Gen
log:
  level: debug
  encoding: json
`))
		require.NoError(t, err)
		assert.Equal(t, "./out", cfg.Target)
		assert.Equal(t, 3, cfg.Workers)
		assert.Equal(t, gen.NamingPolicy{RepositorySuffix: "Dao", ServiceSuffix: "Manager", ClassesPrefix: "Gen"}, cfg.Naming.Policy())
		assert.Equal(t, "json", cfg.Log.Encoding)
	})

	t.Run("expands environment", func(t *testing.T) {
		t.Setenv("CRUDGEN_TEST_OUT", "/tmp/gen")
		cfg, err := Parse([]byte("schema: s.yaml\ntarget: ${CRUDGEN_TEST_OUT}\n"))
		require.NoError(t, err)
		assert.Equal(t, "/tmp/gen", cfg.Target)
	})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"missing schema", "target: out\n", "Config.Schema: required"},
		{"negative workers", "schema: s.yaml\nworkers: -1\n", "Config.Workers: gte=0"},
		{"same suffixes", "schema: s.yaml\nnaming:\n  repository_suffix: X\n  service_suffix: X\n", "Config.Naming.ServiceSuffix: nefield=RepositorySuffix"},
		{"bad log level", "schema: s.yaml\nlog:\n  level: loud\n", "Config.Log.Level: oneof"},
		{"bad yaml", "schema: [", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			if tt.want != "" {
				assert.Contains(t, err.Error(), tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("schema: entities.yaml\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "entities.yaml", cfg.Schema)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg, err := Default("./model")
	require.NoError(t, err)
	assert.Equal(t, "./model", cfg.Schema)
	require.NoError(t, Validate(cfg))
}

func TestOptions(t *testing.T) {
	cfg, err := Default("./model")
	require.NoError(t, err)
	cfg.Naming.ClassesPrefix = "Gen"
	cfg.Workers = 2

	g, err := gen.NewConfig(cfg.Options()...)
	require.NoError(t, err)
	assert.Equal(t, "GenUserRepository", g.Naming.RepositoryName("User"))
	assert.Equal(t, 2, g.Workers)
	assert.Empty(t, g.Target)

	cfg.Target = "./out"
	g, err = gen.NewConfig(cfg.Options()...)
	require.NoError(t, err)
	assert.Equal(t, "./out", g.Target)
}
