package config

import "strings"

func normalize(cfg *AppConfig) {
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)
	cfg.AllowedOrigins = normalizeOrigins(cfg.AllowedOrigins)
	cfg.Database = normalizeDatabaseConfig(cfg.Database)
	cfg.Redis.URL = normalizeRedisRawURL(cfg.Redis.URL)
	cfg.Log.Dir = strings.TrimSpace(cfg.Log.Dir)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaultLogLevel
	}
	cfg.Metrics.Path = strings.TrimSpace(cfg.Metrics.Path)
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = defaultMetricsPath
	}
	if !strings.HasPrefix(cfg.Metrics.Path, "/") {
		cfg.Metrics.Path = "/" + cfg.Metrics.Path
	}
	cfg.Legal = normalizeLegalConfig(cfg.Legal)
}

func normalizeDatabaseConfig(cfg DatabaseConfig) DatabaseConfig {
	cfg.Driver = strings.ToLower(strings.TrimSpace(cfg.Driver))
	cfg.DSN = strings.TrimSpace(cfg.DSN)
	cfg.Host = strings.TrimSpace(cfg.Host)
	cfg.User = strings.TrimSpace(cfg.User)
	cfg.Name = strings.TrimSpace(cfg.Name)
	cfg.Charset = strings.TrimSpace(cfg.Charset)

	if cfg.Driver == "" {
		cfg.Driver = defaultDBDriver
	}
	if cfg.Host == "" {
		cfg.Host = defaultDBHost
	}
	if cfg.Port == 0 {
		cfg.Port = defaultDBPort
	}
	if cfg.User == "" {
		cfg.User = defaultDBUser
	}
	if cfg.Name == "" {
		cfg.Name = defaultDBName
	}
	if cfg.Charset == "" {
		cfg.Charset = defaultDBCharset
	}
	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = defaultMaxOpenConns
	}
	if cfg.MaxIdleConns < 0 {
		cfg.MaxIdleConns = 0
	}
	cfg.Params = copyStringMap(cfg.Params)
	return cfg
}

func normalizeRedisRawURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "redis://") || strings.HasPrefix(trimmed, "rediss://") {
		return trimmed
	}
	return "redis://" + trimmed
}

func normalizeLegalConfig(cfg LegalConfig) LegalConfig {
	if cfg.CacheTTL < 0 {
		cfg.CacheTTL = 0
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultLegalFetchTimeout
	}
	if cfg.ImportInterval < 0 {
		cfg.ImportInterval = 0
	}
	cfg.ImportCategory = strings.TrimSpace(cfg.ImportCategory)
	if cfg.ImportCategory == "" {
		cfg.ImportCategory = defaultLegalImportCategory
	}
	sources := make([]LegalSourceConfig, 0, len(cfg.Sources))
	for _, src := range cfg.Sources {
		src.Name = strings.TrimSpace(src.Name)
		src.Kind = strings.ToLower(strings.TrimSpace(src.Kind))
		src.URL = strings.TrimSpace(src.URL)
		src.BaseURL = strings.TrimRight(strings.TrimSpace(src.BaseURL), "/")
		if src.Limit <= 0 {
			src.Limit = defaultLegalItemLimit
		}
		if src.Name == "" {
			src.Name = src.URL
		}
		sources = append(sources, src)
	}
	cfg.Sources = sources
	return cfg
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(env string) string {
	trimmed := strings.ToLower(strings.TrimSpace(env))
	if trimmed == "" {
		return defaultEnv
	}
	return trimmed
}

func copyStringMap(input map[string]string) map[string]string {
	if input == nil {
		return nil
	}
	out := make(map[string]string, len(input))
	for key, value := range input {
		k := strings.TrimSpace(key)
		v := strings.TrimSpace(value)
		if k != "" && v != "" {
			out[k] = v
		}
	}
	return out
}
