package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
env:
  serviceName: shelf
  log:
    level: debug
http:
  port: 9090
  timeouts:
    readTimeout: 3s
storage:
  driver: memory
jwt:
  secret: ""
auth:
  bcryptCost: 4
`

func TestLoadWithEnv_OverlaysEnvironment(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shelftest.yaml"), []byte(testYAML), 0o600))
	t.Chdir(dir)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("HTTP_PORT", "7070")

	cfg, err := LoadWithEnv[Config]("shelftest")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 7070, cfg.HTTP.Port)
	assert.Equal(t, 3*time.Second, cfg.HTTP.Timeouts.ReadTimeout)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.Equal(t, "debug", cfg.Env.Log.Level)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("does-not-exist")
	assert.Error(t, err)
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, DefaultBcryptCost, cfg.Auth.BcryptCost)
	assert.Equal(t, DefaultCollectionMaxSize, cfg.Collections.MaxSize)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid memory config", mutate: func(*Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.JWT.Secret = "  " }, wantErr: "jwt.secret"},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "mongo" }, wantErr: "unknown storage driver"},
		{name: "postgres without connection", mutate: func(c *Config) { c.Storage.Driver = StorageDriverPostgres }, wantErr: "postgres configuration"},
		{name: "negative cap", mutate: func(c *Config) { c.Collections.MaxSize = -1 }, wantErr: "maxSize"},
		{name: "lowered cap", mutate: func(c *Config) { c.Collections.MaxSize = 10 }},
		{name: "cap above hard limit", mutate: func(c *Config) { c.Collections.MaxSize = DefaultCollectionMaxSize + 1 }, wantErr: "collections.maxSize must be between 0 and 50"},
		{name: "bcrypt cost changed", mutate: func(c *Config) { c.Auth.BcryptCost = 4 }, wantErr: "auth.bcryptCost must be 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.JWT.Secret = "secret"
			cfg.Storage.Driver = StorageDriverMemory
			cfg.applyDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
