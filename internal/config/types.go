package config

import "time"

// AppConfig holds runtime startup configuration loaded from YAML and the environment.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	JWTSecret      string         `yaml:"jwt_secret"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
	Database       DatabaseConfig `yaml:"database"`
	Redis          RedisConfig    `yaml:"redis"`
	Log            LogConfig      `yaml:"log"`
	Metrics        MetricsConfig  `yaml:"metrics"`
	Legal          LegalConfig    `yaml:"legal"`
}

type DatabaseConfig struct {
	Driver       string            `yaml:"driver"` // "mysql" | "sqlite"
	DSN          string            `yaml:"dsn"`
	Host         string            `yaml:"host"`
	Port         int               `yaml:"port"`
	User         string            `yaml:"user"`
	Password     string            `yaml:"password"`
	Name         string            `yaml:"name"`
	Charset      string            `yaml:"charset"`
	Params       map[string]string `yaml:"params"`
	MaxOpenConns int               `yaml:"max_open_conns"`
	MaxIdleConns int               `yaml:"max_idle_conns"`
	AutoMigrate  bool              `yaml:"auto_migrate"`
}

type RedisConfig struct {
	URL string `yaml:"url"`
}

type LogConfig struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
}

type MetricsConfig struct {
	Enable bool   `yaml:"enable"`
	Path   string `yaml:"path"`
}

type LegalConfig struct {
	Enable         bool                `yaml:"enable"`
	CacheTTL       time.Duration       `yaml:"cache_ttl"`
	FetchTimeout   time.Duration       `yaml:"fetch_timeout"`
	ImportInterval time.Duration       `yaml:"import_interval"`
	ImportCategory string              `yaml:"import_category"`
	Sources        []LegalSourceConfig `yaml:"sources"`
}

// LegalSourceConfig describes one upstream the aggregator pulls from.
type LegalSourceConfig struct {
	Name    string `yaml:"name"`
	Kind    string `yaml:"kind"`
	URL     string `yaml:"url"`
	BaseURL string `yaml:"base_url"` // used to absolutize relative links
	Limit   int    `yaml:"limit"`
}
