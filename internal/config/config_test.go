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
api:
  port: "9090"
  jwt_signing_key: secret
data:
  backend: mock
production:
  refresh_interval: 10s
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	conf, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, "9090", conf.API.Port)
	assert.Equal(t, "secret", conf.API.JWTSigningKey)
	assert.Equal(t, 24*time.Hour, conf.API.TokenTTL)
	assert.Equal(t, BackendMock, conf.Data.Backend)
	assert.Equal(t, 10*time.Second, conf.Production.RefreshInterval)
	assert.Equal(t, "floor", conf.Loyalty.Rounding)
	assert.Equal(t, "localhost", conf.Postgres.Host)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("API_PORT", "7070")
	t.Setenv("DATA_BACKEND", "live")

	conf, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, "7070", conf.API.Port)
	assert.Equal(t, BackendLive, conf.Data.Backend)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing signing key", "data:\n  backend: mock\n"},
		{"unknown backend", "api:\n  jwt_signing_key: k\ndata:\n  backend: memory\n"},
		{"zero refresh interval", "api:\n  jwt_signing_key: k\nproduction:\n  refresh_interval: 0s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestPostgresConfig_DSN(t *testing.T) {
	c := PostgresConfig{Host: "db", Port: "5432", User: "u", Password: "p", DB: "app", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=app sslmode=disable", c.DSN())
}
