package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into dir so no stray config.yaml or .env is picked up
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "meetocure", cfg.Database.Name)
	assert.Equal(t, 30*time.Second, cfg.Settings.CacheTTL)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, ":8000", cfg.Addr())
}

func TestLoadFileAndEnv(t *testing.T) {
	chdir(t, t.TempDir())
	path := writeConfig(t, `
server:
  port: 9100
database:
  driver: memory
settings:
  cache_ttl: 5s
`)
	t.Setenv("ADMIN_API_LOG_LEVEL", "debug")
	t.Setenv("MONGO_URI", "mongodb://db:27017")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 5*time.Second, cfg.Settings.CacheTTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "mongodb://db:27017", cfg.Database.URI)
}

func TestLoadPortFromPlainEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "7000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:   ServerConfig{Port: 8000},
			Database: DatabaseConfig{Driver: DriverMongo, URI: "mongodb://localhost", Name: "meetocure"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"memory needs no uri", func(c *Config) { c.Database = DatabaseConfig{Driver: DriverMemory} }, ""},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "invalid server port"},
		{"no uri", func(c *Config) { c.Database.URI = "" }, "database.uri is required"},
		{"no name", func(c *Config) { c.Database.Name = "" }, "database.name is required"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "postgres" }, "unknown database driver"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
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
