package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/legalcurrent/core/internal/config"
	"github.com/legalcurrent/core/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the configured database and runs auto-migration when enabled.
func Connect(cfg *config.AppConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := openDB(cfg.Database, NewGormLogger(log, resolveLogLevel(cfg)))
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}
	return db, nil
}

func resolveLogLevel(cfg *config.AppConfig) logger.LogLevel {
	if cfg.IsDev() {
		return logger.Info
	}
	return logger.Warn
}

func openDB(dbCfg config.DatabaseConfig, gormLogger logger.Interface) (*gorm.DB, error) {
	var dialector gorm.Dialector
	dsn := dbCfg.DSNValue()
	switch dbCfg.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(dsn)
	case config.DriverMySQL:
		dialector = mysql.New(mysql.Config{
			DSN:               dsn,
			DefaultStringSize: 191,
		})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", dbCfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("resolve sql db: %w", err)
	}
	if isMemorySQLite(dbCfg.Driver, dsn) {
		// every pooled connection would get its own empty in-memory database
		sqlDB.SetMaxOpenConns(1)
	} else {
		if dbCfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(dbCfg.MaxOpenConns)
		}
		if dbCfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(dbCfg.MaxIdleConns)
		}
	}
	return db, nil
}

func isMemorySQLite(driver, dsn string) bool {
	return driver == config.DriverSQLite && strings.Contains(dsn, ":memory:")
}

// Migrate creates or updates the Users and Articles tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Article{})
}

// Ping checks that the database answers within the context deadline.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("resolve sql db: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return sqlDB.PingContext(pingCtx)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
