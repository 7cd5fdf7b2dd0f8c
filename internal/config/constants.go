package config

import "time"

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 3001
	defaultEnv        = "development"

	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"

	defaultDBDriver     = DriverMySQL
	defaultDBHost       = "127.0.0.1"
	defaultDBPort       = 3306
	defaultDBUser       = "root"
	defaultDBName       = "legalcurrent"
	defaultDBCharset    = "utf8mb4"
	defaultSQLiteFile   = "legalcurrent.db"
	defaultMaxOpenConns = 10
	defaultMaxIdleConns = 5

	defaultLogLevel    = "info"
	defaultMetricsPath = "/metrics"

	defaultLegalCacheTTL       = 10 * time.Minute
	defaultLegalFetchTimeout   = 15 * time.Second
	defaultLegalImportCategory = "News"
	defaultLegalItemLimit      = 5

	// DevJWTSecret signs tokens when no secret is configured outside production.
	DevJWTSecret = "legalcurrent-dev-secret-change-me"
)

// Legal source kinds understood by the aggregator.
const (
	SourceRSS        = "rss"
	SourceAustLII    = "austlii"
	SourceFedCourt   = "fedcourt"
	SourceLawSociety = "lawsociety"
)

func defaultLegalSources() []LegalSourceConfig {
	return []LegalSourceConfig{
		{Name: "Lawyers Weekly", Kind: SourceRSS, URL: "https://www.lawyersweekly.com.au/rss"},
		{Name: "AustLII", Kind: SourceAustLII, URL: "http://www.austlii.edu.au/cgi-bin/viewdb/au/cases/cth/FCA/", BaseURL: "http://www.austlii.edu.au"},
		{Name: "Federal Court", Kind: SourceFedCourt, URL: "http://www.fedcourt.gov.au/digital-law-library/judgments", BaseURL: "http://www.fedcourt.gov.au"},
		{Name: "Law Society NSW", Kind: SourceLawSociety, URL: "https://www.lawsociety.com.au/news-amp-events/news"},
	}
}
