package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		env         map[string]string
		expectError bool
		validate    func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults applied",
			body: `
database:
  dsn: "postgres://localhost/portfolio"
session:
  secret: "s3cret"
`,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "8080", cfg.Port)
				assert.Equal(t, "session", cfg.SessionCookie)
				assert.Equal(t, 2*time.Minute, cfg.SessionDuration)
				assert.Equal(t, time.Minute, cfg.SessionActiveDuration)
				assert.Equal(t, 10, cfg.PasswordCost)
				assert.Equal(t, cfg.DSN, cfg.AccountsDSN, "accounts dsn falls back to dsn")
				assert.Equal(t, "public", cfg.StaticDir)
			},
		},
		{
			name: "explicit values",
			body: `
app:
  port: 3000
database:
  dsn: "postgres://localhost/projects"
  accounts_dsn: "postgres://localhost/accounts"
session:
  secret: "s3cret"
  duration: 10m
  active_duration: 5m
password:
  cost: 12
`,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "3000", cfg.Port)
				assert.Equal(t, "postgres://localhost/accounts", cfg.AccountsDSN)
				assert.Equal(t, 10*time.Minute, cfg.SessionDuration)
				assert.Equal(t, 5*time.Minute, cfg.SessionActiveDuration)
				assert.Equal(t, 12, cfg.PasswordCost)
			},
		},
		{
			name: "environment overrides file",
			body: `
database:
  dsn: "postgres://localhost/portfolio"
session:
  secret: "from-file"
`,
			env: map[string]string{
				"PORT":           "9090",
				"SESSION_SECRET": "from-env",
				"REDIS_ADDR":     "redis:6379",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "9090", cfg.Port)
				assert.Equal(t, "from-env", cfg.SessionSecret)
				assert.Equal(t, "redis:6379", cfg.RedisAddr)
			},
		},
		{
			name: "invalid duration",
			body: `
database:
  dsn: "postgres://localhost/portfolio"
session:
  secret: "s3cret"
  duration: "two minutes"
`,
			expectError: true,
		},
		{
			name: "missing secret",
			body: `
database:
  dsn: "postgres://localhost/portfolio"
`,
			expectError: true,
		},
		{
			name:        "malformed yaml",
			body:        "app: [",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadFile(writeConfig(t, tt.body))
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}
