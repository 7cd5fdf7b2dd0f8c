package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML config at configPath (a missing file yields defaults),
// then applies .env and process environment overrides.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	loadEnvFile()

	cfg := defaultAppConfig()
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decodeYAML(content, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	normalize(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return &cfg, nil
}

func decodeYAML(content []byte, cfg *AppConfig) error {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil
	}
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	return decoder.Decode(cfg)
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseConfig{
			Driver:       defaultDBDriver,
			Host:         defaultDBHost,
			Port:         defaultDBPort,
			User:         defaultDBUser,
			Name:         defaultDBName,
			Charset:      defaultDBCharset,
			MaxOpenConns: defaultMaxOpenConns,
			MaxIdleConns: defaultMaxIdleConns,
			AutoMigrate:  true,
		},
		Log: LogConfig{Level: defaultLogLevel},
		Metrics: MetricsConfig{
			Enable: true,
			Path:   defaultMetricsPath,
		},
		Legal: LegalConfig{
			Enable:         true,
			CacheTTL:       defaultLegalCacheTTL,
			FetchTimeout:   defaultLegalFetchTimeout,
			ImportCategory: defaultLegalImportCategory,
			Sources:        defaultLegalSources(),
		},
	}
}

func loadEnvFile() {
	if err := godotenv.Load(".env"); err == nil {
		return
	}
	_ = godotenv.Load(filepath.Join(ExecutableDir(), ".env"))
}

func applyEnv(cfg *AppConfig) error {
	if v := getEnv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := getEnv("ENV"); v != "" {
		cfg.Env = v
	}
	if v := getEnv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := getEnv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := getEnv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := getEnv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := getEnv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// Validate reports configuration that cannot be served.
func (c *AppConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", c.Port)
	}
	switch c.Database.Driver {
	case DriverMySQL:
		if c.Database.DSN == "" && (c.Database.Port < 1 || c.Database.Port > 65535) {
			return fmt.Errorf("invalid database.port %d, expected 1-65535", c.Database.Port)
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	if c.IsProduction() && c.JWTSecret == "" {
		return errors.New("jwt_secret is required in production")
	}
	for i, src := range c.Legal.Sources {
		switch src.Kind {
		case SourceRSS, SourceAustLII, SourceFedCourt, SourceLawSociety:
		default:
			return fmt.Errorf("legal.sources[%d]: unknown kind %q", i, src.Kind)
		}
		if src.URL == "" {
			return fmt.Errorf("legal.sources[%d]: url is required", i)
		}
	}
	return nil
}

func (c *AppConfig) IsDev() bool { return c.Env == "development" }

func (c *AppConfig) IsProduction() bool { return c.Env == "production" }

// Addr returns the listen address.
func (c *AppConfig) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// Secret returns the token signing secret, falling back to DevJWTSecret.
func (c *AppConfig) Secret() string {
	if c.JWTSecret != "" {
		return c.JWTSecret
	}
	return DevJWTSecret
}
