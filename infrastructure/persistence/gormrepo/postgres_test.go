package gormrepo

import (
	"context"
	"testing"
	"time"

	"shopping-api/infrastructure/persistence/retry"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// TestShoppingRepository_Postgres runs the repository suite against a real
// Postgres in a container. Needs Docker; skipped with -short.
func TestShoppingRepository_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("postgres container test skipped in short mode")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("shopping"),
		postgres.WithUsername("shopping"),
		postgres.WithPassword("shopping"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	base := Config{
		Driver:   DriverPostgres,
		Host:     host,
		Port:     port.Port(),
		Username: "shopping",
		Password: "shopping",
		Database: "shopping",
		LogLevel: "silent",
	}

	connect := func(t *testing.T) *gorm.DB {
		t.Helper()
		cfg := base
		cfg.AutoMigrate = true
		rc := retry.DefaultConfig
		rc.InitialDelay = 200 * time.Millisecond

		db, err := cfg.Connect(context.Background(), rc)
		require.NoError(t, err)
		// every test starts from empty tables with fresh sequences
		require.NoError(t, db.Exec("TRUNCATE shopping_items, shoppings RESTART IDENTITY").Error)
		t.Cleanup(func() { _ = Close(db) })
		return db
	}

	suite.Run(t, &repositorySuite{connect: connect})
}
