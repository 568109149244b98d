package shopping

import (
	"context"

	"shopping-api/domain/product"
	"shopping-api/domain/user"
)

// UserLookup resolves a user by national id (CPF) in the identity service.
// Any failure is reported as an error satisfying errors.Is(err, shared.ErrNotFound).
type UserLookup interface {
	FindUser(ctx context.Context, cpf string) (*user.User, error)
}

// ProductLookup resolves a product's live price in the catalog.
// Any failure is reported as an error satisfying errors.Is(err, shared.ErrNotFound).
type ProductLookup interface {
	FindProduct(ctx context.Context, productIdentifier string) (*product.Product, error)
}
