/*
Package gormrepo is the GORM implementation of the shopping store.

Three dialects are supported: mysql, postgres (pgx underneath) and sqlite
(pure Go, used for tests and single-node setups). Aggregates are saved and
loaded by hand, never through GORM associations.
*/
package gormrepo

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"shopping-api/config"
	"shopping-api/infrastructure/persistence/gormrepo/po"
	"shopping-api/infrastructure/persistence/retry"
	"shopping-api/pkg/logger"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	DefaultMaxOpenConns    = 25
	DefaultMaxIdleConns    = 10
	DefaultConnMaxLifetime = 10 * time.Minute
	DefaultConnMaxIdleTime = 5 * time.Minute
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Driver          string
	Host            string
	Port            string
	Username        string
	Password        string
	Database        string // file path or ":memory:" for sqlite
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	LogLevel        string
	AutoMigrate     bool
}

func FromAppConfig(cfg *config.Config) Config {
	db := cfg.Database
	return Config{
		Driver:          db.Driver,
		Host:            db.Host,
		Port:            db.Port,
		Username:        db.Username,
		Password:        db.Password,
		Database:        db.Database,
		SSLMode:         db.SSLMode,
		MaxOpenConns:    db.MaxOpenConns,
		MaxIdleConns:    db.MaxIdleConns,
		ConnMaxLifetime: db.ConnMaxLifetime,
		LogLevel:        db.LogLevel,
		AutoMigrate:     db.AutoMigrate,
	}
}

// DSN renders the driver specific connection string. Times travel in UTC.
func (c *Config) DSN() string {
	switch c.Driver {
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4&collation=utf8mb4_unicode_ci&readTimeout=10s&writeTimeout=10s",
			c.Username, c.Password, c.Host, c.Port, c.Database)
	case DriverPostgres:
		sslMode := c.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.Username, c.Password),
			Host:     c.Host + ":" + c.Port,
			Path:     c.Database,
			RawQuery: "sslmode=" + sslMode + "&TimeZone=UTC",
		}
		return u.String()
	case DriverSQLite:
		if c.Database == "" {
			return "file::memory:?cache=shared"
		}
		return c.Database
	}
	return ""
}

func (c *Config) dialector() (gorm.Dialector, error) {
	switch c.Driver {
	case DriverMySQL:
		return mysql.Open(c.DSN()), nil
	case DriverPostgres:
		return postgres.Open(c.DSN()), nil
	case DriverSQLite:
		return sqlite.Open(c.DSN()), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
}

func (c *Config) applyDefaults() {
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = DefaultMaxOpenConns
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = DefaultMaxIdleConns
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		c.MaxIdleConns = c.MaxOpenConns
	}
	if c.ConnMaxLifetime <= 0 {
		c.ConnMaxLifetime = DefaultConnMaxLifetime
	}
	if c.ConnMaxIdleTime <= 0 {
		c.ConnMaxIdleTime = DefaultConnMaxIdleTime
	}
	// one connection keeps an in-memory sqlite database alive and consistent
	if c.Driver == DriverSQLite {
		c.MaxOpenConns, c.MaxIdleConns = 1, 1
		c.ConnMaxLifetime, c.ConnMaxIdleTime = 0, 0
	}
}

// Connect opens the pool, pings it and migrates when AutoMigrate is set.
// Transient failures are retried with rc.
func (c *Config) Connect(ctx context.Context, rc retry.Config) (*gorm.DB, error) {
	c.applyDefaults()

	dialector, err := c.dialector()
	if err != nil {
		return nil, err
	}
	gormConfig := &gorm.Config{
		Logger:         logger.NewGormLoggerAdapter(logger.ParseGormLevel(c.LogLevel)),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}

	var db *gorm.DB
	err = retry.ExecuteWithRetry(ctx, rc, func(ctx context.Context) error {
		opened, err := gorm.Open(dialector, gormConfig)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		sqlDB, err := opened.DB()
		if err != nil {
			return fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return fmt.Errorf("failed to ping database: %w", err)
		}
		db = opened
		return nil
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(c.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(c.ConnMaxIdleTime)

	if c.AutoMigrate {
		if err := Migrate(db.WithContext(ctx)); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	logger.Info("Database connected",
		zap.String("driver", c.Driver),
		zap.String("host", c.Host),
		zap.String("database", c.Database),
		zap.Int("max_open_conns", c.MaxOpenConns),
		zap.Int("max_idle_conns", c.MaxIdleConns),
		zap.Duration("conn_max_lifetime", c.ConnMaxLifetime),
	)

	return db, nil
}

// Migrate creates or updates the shopping tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&po.ShoppingPO{}, &po.ShoppingItemPO{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
