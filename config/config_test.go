package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{"POSTGRES_URL": "postgres://localhost/railshift"}))
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBType)
	assert.Equal(t, "railshift", cfg.MongoDatabase)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "file://db/migrations", cfg.MigrationsPath)
	assert.Equal(t, "local", cfg.StorageType)
	assert.Equal(t, "./documents", cfg.DocumentDir)
	assert.Equal(t, 30*time.Second, cfg.LocomotiveCacheTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 5, cfg.PostgresMaxOpenConns)
	assert.Equal(t, 2, cfg.PostgresMaxIdleConns)
	assert.Equal(t, 30*time.Minute, cfg.PostgresConnMaxLifetime)
	assert.Equal(t, 10*time.Second, cfg.DBConnectTimeout)
}

func TestFromEnvPoolSettings(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"POSTGRES_URL":               "postgres://localhost/railshift",
		"POSTGRES_MAX_OPEN_CONNS":    "20",
		"POSTGRES_MAX_IDLE_CONNS":    "50",
		"POSTGRES_CONN_MAX_LIFETIME": "5m",
		"DB_CONNECT_TIMEOUT":         "3s",
	}))
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.PostgresMaxOpenConns)
	assert.Equal(t, 20, cfg.PostgresMaxIdleConns, "idle connections never exceed open ones")
	assert.Equal(t, 5*time.Minute, cfg.PostgresConnMaxLifetime)
	assert.Equal(t, 3*time.Second, cfg.DBConnectTimeout)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"DB_TYPE":                  "memory",
		"NEXT_PUBLIC_API_BASE_URL": "https://api.example.com/",
		"LOCOMOTIVE_CACHE_TTL":     "2m",
		"LOG_FORMAT":               "console",
	}))
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.DBType)
	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, 2*time.Minute, cfg.LocomotiveCacheTTL)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestFromEnvPrefersAPIBaseURL(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"DB_TYPE":                  "memory",
		"API_BASE_URL":             "https://primary",
		"NEXT_PUBLIC_API_BASE_URL": "https://fallback",
	}))
	require.NoError(t, err)
	assert.Equal(t, "https://primary", cfg.APIBaseURL)
}

func TestFromEnvValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want []string
	}{
		{
			name: "postgres without url",
			env:  map[string]string{},
			want: []string{"POSTGRES_URL is required when DB_TYPE is postgres"},
		},
		{
			name: "unknown db type",
			env:  map[string]string{"DB_TYPE": "sqlite"},
			want: []string{`DB_TYPE "sqlite" is not supported`},
		},
		{
			name: "r2 without credentials",
			env:  map[string]string{"DB_TYPE": "memory", "STORAGE_TYPE": "r2", "R2_BUCKET": "docs"},
			want: []string{"R2_ACCOUNT_ID is required", "R2_ACCESS_KEY_ID is required", "R2_SECRET_ACCESS_KEY is required"},
		},
		{
			name: "bad ttl and log format",
			env:  map[string]string{"DB_TYPE": "memory", "LOCOMOTIVE_CACHE_TTL": "soon", "LOG_FORMAT": "xml"},
			want: []string{`LOCOMOTIVE_CACHE_TTL "soon" is not a duration`, `LOG_FORMAT "xml" is not supported`},
		},
		{
			name: "bad pool settings",
			env:  map[string]string{"DB_TYPE": "memory", "POSTGRES_MAX_OPEN_CONNS": "many", "DB_CONNECT_TIMEOUT": "10"},
			want: []string{`POSTGRES_MAX_OPEN_CONNS "many" is not a non-negative integer`, `DB_CONNECT_TIMEOUT "10" is not a duration`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(env(tt.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config: validation failed: ")
			for _, w := range tt.want {
				assert.Contains(t, err.Error(), w)
			}
		})
	}
}
