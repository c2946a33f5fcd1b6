package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamingPolicyNames(t *testing.T) {
	n := NamingPolicy{RepositorySuffix: "Repository", ServiceSuffix: "Service", ClassesPrefix: "Gen"}

	assert.Equal(t, "GenUserRepository", n.RepositoryName("User"))
	assert.Equal(t, "GenUserService", n.ServiceName("User"))
}

func TestNamingPolicyValidate(t *testing.T) {
	tests := []struct {
		name    string
		policy  NamingPolicy
		wantErr bool
	}{
		{"default", DefaultNaming(), false},
		{"with prefix", NamingPolicy{RepositorySuffix: "Repo", ServiceSuffix: "Svc", ClassesPrefix: "Gen_"}, false},
		{"empty repository suffix", NamingPolicy{ServiceSuffix: "Service"}, true},
		{"empty service suffix", NamingPolicy{RepositorySuffix: "Repository"}, true},
		{"same suffixes", NamingPolicy{RepositorySuffix: "Dao", ServiceSuffix: "Dao"}, true},
		{"invalid character", NamingPolicy{RepositorySuffix: "Repo-sitory", ServiceSuffix: "Service"}, true},
		{"prefix with dot", NamingPolicy{RepositorySuffix: "Repository", ServiceSuffix: "Service", ClassesPrefix: "a.b"}, true},
		{"prefix starting with digit", NamingPolicy{RepositorySuffix: "Repository", ServiceSuffix: "Service", ClassesPrefix: "1x"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidNamingPolicy)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	var nilConfig *Config
	require.Error(t, nilConfig.Validate())

	c := &Config{Naming: DefaultNaming()}
	err := c.Validate()
	require.Error(t, err)
	assert.True(t, IsConfigError(err))

	c.RuntimePackage = DefaultRuntimePackage
	require.NoError(t, c.Validate())

	c.Workers = -1
	require.Error(t, c.Validate())
}
