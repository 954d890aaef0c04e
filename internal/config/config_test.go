package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	require.NotNil(t, cfg)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "/api/v2/productos", cfg.API.ProductPrefix)
	assert.Equal(t, "/api/v2/categorias", cfg.API.CategoryPrefix)
	assert.Equal(t, StoreMongo, cfg.Store.Driver)
	assert.Equal(t, "catalog", cfg.Mongo.Database)
	assert.Equal(t, UploadLocal, cfg.Upload.Driver)
	assert.Equal(t, "./uploads", cfg.Upload.Dir)
	assert.Equal(t, int64(32<<20), cfg.Upload.MaxMemory)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.SeedData)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_ENV", "production")
	t.Setenv("API_PREFIX", "api/v1/productos/")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DB_USER", "catalog")
	t.Setenv("UPLOAD_DRIVER", "s3")
	t.Setenv("S3_BUCKET", "photos")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SEED_DATA", "true")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "/api/v1/productos", cfg.API.ProductPrefix)
	assert.Equal(t, StorePostgres, cfg.Store.Driver)
	assert.Equal(t, "catalog", cfg.Database.User)
	assert.Equal(t, UploadS3, cfg.Upload.Driver)
	assert.Equal(t, "photos", cfg.S3.Bucket)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 5*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.SeedData)
}

func TestNormalizePrefix(t *testing.T) {
	tests := map[string]string{
		"/api/v2/productos":  "/api/v2/productos",
		"api/v2/productos":   "/api/v2/productos",
		"/api/v2/productos/": "/api/v2/productos",
		" /api ":             "/api",
	}

	for in, want := range tests {
		assert.Equal(t, want, normalizePrefix(in), "prefix %q", in)
	}
}
