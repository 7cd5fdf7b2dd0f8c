package config

import (
	"os"
	"path/filepath"
	"strings"
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

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.True(t, cfg.Metrics.Enable)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Len(t, cfg.Legal.Sources, 4)
	assert.Equal(t, DevJWTSecret, cfg.Secret())
	assert.Equal(t, ":3001", cfg.Addr())
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
port: 8080
env: Production
jwt_secret: "  s3cret  "
allowed_origins: [" *.example.com ", ""]
database:
  driver: SQLite
  dsn: file:test.db
metrics:
  path: stats
legal:
  cache_ttl: 30s
  import_interval: 1h
  sources:
    - kind: RSS
      url: https://feeds.example.com/rss
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "s3cret", cfg.Secret())
	assert.Equal(t, []string{"*.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "file:test.db", cfg.Database.DSNValue())
	assert.Equal(t, "/stats", cfg.Metrics.Path)
	assert.Equal(t, 30*time.Second, cfg.Legal.CacheTTL)
	assert.Equal(t, time.Hour, cfg.Legal.ImportInterval)
	require.Len(t, cfg.Legal.Sources, 1)
	src := cfg.Legal.Sources[0]
	assert.Equal(t, SourceRSS, src.Kind)
	assert.Equal(t, "https://feeds.example.com/rss", src.Name)
	assert.Equal(t, 5, src.Limit)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "port: 3001\nmystery: true\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mystery")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", "file::memory:")
	t.Setenv("REDIS_URL", "localhost:6379/1")

	cfg, err := Load(writeConfig(t, "port: 5000\njwt_secret: from-file\n"))
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, "from-env", cfg.Secret())
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "file::memory:", cfg.Database.DSNValue())
	assert.Equal(t, "redis://localhost:6379/1", cfg.Redis.URL)
}

func TestLoadInvalidPortEnv(t *testing.T) {
	t.Setenv("PORT", "abc")

	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*AppConfig) {}},
		{name: "port out of range", mutate: func(c *AppConfig) { c.Port = 70000 }, wantErr: "invalid port"},
		{name: "unknown driver", mutate: func(c *AppConfig) { c.Database.Driver = "oracle" }, wantErr: "unsupported database.driver"},
		{name: "production without secret", mutate: func(c *AppConfig) { c.Env = "production" }, wantErr: "jwt_secret"},
		{
			name:    "unknown legal source kind",
			mutate:  func(c *AppConfig) { c.Legal.Sources = []LegalSourceConfig{{Kind: "atom", URL: "http://x"}} },
			wantErr: "unknown kind",
		},
		{
			name:    "legal source without url",
			mutate:  func(c *AppConfig) { c.Legal.Sources = []LegalSourceConfig{{Kind: SourceRSS}} },
			wantErr: "url is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultAppConfig()
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

func TestMySQLDSNValue(t *testing.T) {
	cfg := normalizeDatabaseConfig(DatabaseConfig{
		Driver:   DriverMySQL,
		Host:     "db.internal",
		Port:     3307,
		User:     "app",
		Password: "pw",
		Name:     "articles",
		Params:   map[string]string{"timeout": "5s"},
	})

	dsn := cfg.DSNValue()
	assert.True(t, strings.HasPrefix(dsn, "app:pw@tcp(db.internal:3307)/articles?"), dsn)
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
	assert.Contains(t, dsn, "timeout=5s")
	assert.Contains(t, dsn, "clientFoundRows=true")
}

func TestSQLiteDSNDefault(t *testing.T) {
	cfg := normalizeDatabaseConfig(DatabaseConfig{Driver: DriverSQLite})
	assert.Equal(t, "legalcurrent.db", cfg.DSNValue())
}
