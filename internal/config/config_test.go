package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	origURL := os.Getenv("DATABASE_URL")
	origPort := os.Getenv("PORT")
	defer func() {
		os.Setenv("DATABASE_URL", origURL)
		os.Setenv("PORT", origPort)
	}()

	os.Unsetenv("PORT")
	os.Setenv("DATABASE_URL", "postgres://u:p@test-host:5432/drone")
	os.Setenv("DATABASE_NAME", "drone")
	os.Setenv("DB_MAX_OPEN_CONNS", "20")
	os.Setenv("MINIO_USE_SSL", "true")

	cfg := Load()

	assert.Equal(t, "8000", cfg.Port, "PORT defaults to 8000")
	assert.Equal(t, "postgres://u:p@test-host:5432/drone", cfg.Database.URL)
	assert.Equal(t, "drone", cfg.Database.Name)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, "gallery", cfg.MinIO.Bucket, "bucket has a default")
	assert.True(t, cfg.MinIO.UseSSL)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
