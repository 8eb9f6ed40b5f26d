package config_test

import (
	"testing"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/regeo/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")

	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 8080, cfg.MetricsPort)
	assert.Equal(t, 45, cfg.RateLimit)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Empty(t, cfg.Database.Host)
	assert.Empty(t, cfg.ResolverKey)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("REGEO_ENV", "local")
	t.Setenv("REGEO_METRICS_PORT", "9091")
	t.Setenv("REGEO_RESOLVER_API_KEY", "testAPIKey")
	t.Setenv("REGEO_RESOLVER_RATE_LIMIT", "30")
	t.Setenv("REGEO_DATABASE_HOST", "testHost")
	t.Setenv("REGEO_DATABASE_PORT", "12345")
	t.Setenv("REGEO_DATABASE_USER", "admin")
	t.Setenv("REGEO_DATABASE_PASSWORD", "adminpass")
	t.Setenv("REGEO_DATABASE_NAME", "testName")

	cfg, err := config.Load("")

	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, 9091, cfg.MetricsPort)
	assert.Equal(t, "testAPIKey", cfg.ResolverKey)
	assert.Equal(t, 30, cfg.RateLimit)
	assert.Equal(t, "testHost", cfg.Database.Host)
	assert.Equal(t, "12345", cfg.Database.Port)
	assert.Equal(t, "admin", cfg.Database.User)
	assert.Equal(t, "adminpass", cfg.Database.Password)
	assert.Equal(t, "testName", cfg.Database.Name)
}

func TestLoad_FromFile(t *testing.T) {
	defer filet.CleanUp(t)

	file := filet.TmpFile(t, "", `
env: development
metrics_port: 9100
resolver:
  api_key: fileKey
  rate_limit: 10
database:
  host: db.internal
  user: regeo
  password: secret
  name: visits
`)

	cfg, err := config.Load(file.Name())

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 9100, cfg.MetricsPort)
	assert.Equal(t, "fileKey", cfg.ResolverKey)
	assert.Equal(t, 10, cfg.RateLimit)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "visits", cfg.Database.Name)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	defer filet.CleanUp(t)
	t.Setenv("REGEO_DATABASE_HOST", "envHost")

	file := filet.TmpFile(t, "", "database:\n  host: fileHost\n")

	cfg, err := config.Load(file.Name())

	require.NoError(t, err)
	assert.Equal(t, "envHost", cfg.Database.Host)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := config.Load("/nonexistent/regeo.yaml")

	require.Error(t, err)
	require.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}
