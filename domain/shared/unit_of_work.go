package shared

import "context"

// UnitOfWork runs fn inside one transaction boundary. Repositories pick the
// transaction up from the context they receive.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}
