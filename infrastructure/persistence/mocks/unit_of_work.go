package mocks

import (
	"context"
	"sync"

	"shopping-api/domain/shared"
)

// MockUnitOfWork runs fn without a real transaction. Calls are serialised so
// a check-then-act sequence inside fn is not interleaved with another one.
// Nothing is rolled back on error.
type MockUnitOfWork struct {
	mu sync.Mutex

	// Executions counts completed Execute calls, successful or not.
	Executions int
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{}
}

func (u *MockUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.Executions++
	return fn(ctx)
}

// Compile-time check that MockUnitOfWork implements shared.UnitOfWork
var _ shared.UnitOfWork = (*MockUnitOfWork)(nil)
