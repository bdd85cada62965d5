package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, ":5000", cfg.Server.Addr())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "employees.db", cfg.DB.Path)
	assert.Equal(t, 60*time.Second, cfg.DB.ConnectTimeout)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "http://localhost:5000/api", cfg.Client.BaseURL)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 8081
db:
  driver: postgres
  host: db.internal
  name: staff
redis:
  enabled: true
  ttl: 30s
log:
  format: console
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("EMPLOYEE_SERVER_PORT", "9090")
	t.Setenv("EMPLOYEE_DB_PASSWORD", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port, "env wins over file")
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "staff", cfg.DB.Name)
	assert.Equal(t, "secret", cfg.DB.Password)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		return Config{
			Server: ServerConfig{Port: 5000},
			DB:     DBConfig{Driver: "sqlite", Path: "employees.db"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid sqlite", mutate: func(c *Config) {}},
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
		{name: "sqlite without path", mutate: func(c *Config) { c.DB.Path = "" }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.DB.Driver = "mysql" }, wantErr: true},
		{
			name:   "valid postgres",
			mutate: func(c *Config) { c.DB = DBConfig{Driver: "postgres", Host: "localhost", Name: "employees"} },
		},
		{
			name:    "postgres without host",
			mutate:  func(c *Config) { c.DB = DBConfig{Driver: "postgres", Name: "employees"} },
			wantErr: true,
		},
		{
			name:    "redis enabled without addr",
			mutate:  func(c *Config) { c.Redis = RedisConfig{Enabled: true} },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
