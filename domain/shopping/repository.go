package shopping

import (
	"context"

	"github.com/shopspring/decimal"

	"shopping-api/domain/shared"
)

// Specification is a query rule over orders.
type Specification = shared.Specification[*Order]

// Repository persists Order aggregates. There is no update operation.
type Repository interface {
	// Save inserts a new order and returns it with the assigned id.
	Save(ctx context.Context, order *Order) (*Order, error)

	// FindByID returns a not-found error when id does not exist.
	FindByID(ctx context.Context, id int64) (*Order, error)

	FindAll(ctx context.Context) ([]*Order, error)

	FindPage(ctx context.Context, req PageRequest) (*Page, error)

	FindAllByUser(ctx context.Context, userIdentifier string) ([]*Order, error)

	ExistsByID(ctx context.Context, id int64) (bool, error)

	// DeleteByID returns a not-found error when id does not exist.
	DeleteByID(ctx context.Context, id int64) error

	// FindBySpecification lists orders matching spec, ordered by sort.
	FindBySpecification(ctx context.Context, spec Specification, sort Sort) ([]*Order, error)

	// Summarize counts the orders matching spec and sums their totals.
	Summarize(ctx context.Context, spec Specification) (Summary, error)
}

// Summary is the raw aggregate a repository computes.
type Summary struct {
	Count int64
	Total decimal.Decimal
}
