// Package retry re-runs database work that failed for transient reasons:
// deadlocks, lock timeouts, serialization failures and dropped connections.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"time"

	"shopping-api/config"
	"shopping-api/pkg/logger"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Config struct {
	Enabled         bool
	MaxAttempts     int
	InitialDelay    time.Duration
	MaxDelay        time.Duration
	BackoffFactor   float64
	JitterEnabled   bool
	RetryOnDeadlock bool
	RetryPredicate  func(error) bool
}

var DefaultConfig = Config{
	Enabled:         true,
	MaxAttempts:     3,
	InitialDelay:    100 * time.Millisecond,
	MaxDelay:        2 * time.Second,
	BackoffFactor:   2.0,
	JitterEnabled:   true,
	RetryOnDeadlock: true,
}

func FromAppConfig(appConfig *config.Config) Config {
	rc := appConfig.Database.Retry
	return Config{
		Enabled:         rc.Enabled,
		MaxAttempts:     rc.MaxAttempts,
		InitialDelay:    rc.InitialDelay,
		MaxDelay:        rc.MaxDelay,
		BackoffFactor:   rc.BackoffFactor,
		JitterEnabled:   rc.JitterEnabled,
		RetryOnDeadlock: rc.RetryOnDeadlock,
	}
}

func ExponentialBackoffWithJitter(attempt int, config Config) time.Duration {
	if attempt <= 0 {
		return 0
	}
	delay := float64(config.InitialDelay) * math.Pow(config.BackoffFactor, float64(attempt-1))
	if delay > float64(config.MaxDelay) {
		delay = float64(config.MaxDelay)
	}
	if config.JitterEnabled {
		jitterFactor := 0.8 + rand.Float64()*0.4
		delay = delay * jitterFactor
	}
	if delay < 0 {
		delay = 0
	}

	return time.Duration(delay)
}

// Postgres SQLSTATE codes worth another attempt.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

func IsRetryableError(err error, config Config) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if config.RetryPredicate != nil && config.RetryPredicate(err) {
		return true
	}

	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1213, 1205:
			return config.RetryOnDeadlock
		}
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return config.RetryOnDeadlock
		}
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false
	}

	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "deadlock") ||
		strings.Contains(errStr, "lock wait timeout") ||
		strings.Contains(errStr, "database is locked") {
		return config.RetryOnDeadlock
	}
	if errors.Is(err, gorm.ErrInvalidTransaction) ||
		strings.Contains(errStr, "connection refused") ||
		(strings.Contains(errStr, "connection") && strings.Contains(errStr, "lost")) {
		return true
	}

	return false
}

func ExecuteWithRetry(ctx context.Context, config Config, fn func(ctx context.Context) error) error {
	if !config.Enabled || config.MaxAttempts <= 1 {
		return fn(ctx)
	}

	var lastErr error
	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err := fn(ctx)
		if err == nil {
			return nil
		}

		lastErr = err
		if !IsRetryableError(err, config) || attempt == config.MaxAttempts {
			break
		}

		delay := ExponentialBackoffWithJitter(attempt, config)
		logger.FromContext(ctx).Warn("Retrying database operation",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}
	}

	return lastErr
}
