package gormrepo

import (
	"context"
	"fmt"

	"shopping-api/domain/shared"
	"shopping-api/infrastructure/persistence"
	"shopping-api/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// UnitOfWork runs business logic inside one GORM transaction and retries the
// whole attempt on transient database errors.
type UnitOfWork struct {
	db          *gorm.DB
	retryConfig retry.Config
}

func NewUnitOfWork(db *gorm.DB, retryConfig retry.Config) *UnitOfWork {
	return &UnitOfWork{db: db, retryConfig: retryConfig}
}

// Execute begins a transaction, injects it into ctx for repositories,
// runs fn and commits on success. A nested call joins the outer transaction.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if persistence.TxFromContext(ctx) != nil {
		return fn(ctx)
	}

	executeOnce := func(ctx context.Context) error {
		tx := u.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			return fmt.Errorf("failed to begin transaction: %w", tx.Error)
		}

		if err := fn(persistence.ContextWithTx(ctx, tx)); err != nil {
			tx.Rollback()
			return err
		}

		if err := tx.Commit().Error; err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	}

	return retry.ExecuteWithRetry(ctx, u.retryConfig, executeOnce)
}

// Compile-time check that UnitOfWork implements shared.UnitOfWork
var _ shared.UnitOfWork = (*UnitOfWork)(nil)
