package mocks

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"shopping-api/domain/shared"
	"shopping-api/domain/shopping"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// MockShoppingRepository in-memory implementation of shopping.Repository.
// Serves database.driver=memory and the application tests. Specifications
// are evaluated in Go through IsSatisfiedBy.
type MockShoppingRepository struct {
	shoppings map[int64]*shopping.Order
	nextID    atomic.Int64
	mu        sync.RWMutex
}

func NewMockShoppingRepository() *MockShoppingRepository {
	return &MockShoppingRepository{
		shoppings: make(map[int64]*shopping.Order),
	}
}

func (r *MockShoppingRepository) Save(ctx context.Context, o *shopping.Order) (*shopping.Order, error) {
	if !o.IsNew() {
		return nil, shared.NewConflictError(shopping.Entity, "shopping is already stored")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	saved := o.WithID(r.nextID.Add(1))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.shoppings[saved.ID()] = saved
	return saved, nil
}

func (r *MockShoppingRepository) FindByID(ctx context.Context, id int64) (*shopping.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.shoppings[id]
	if !ok {
		return nil, shopping.NewNotFoundError(id)
	}
	return o, nil
}

func (r *MockShoppingRepository) FindAll(ctx context.Context) ([]*shopping.Order, error) {
	return r.FindBySpecification(ctx, nil, shopping.Sort{Field: shopping.SortByID, Direction: shopping.ASC})
}

func (r *MockShoppingRepository) FindPage(ctx context.Context, req shopping.PageRequest) (*shopping.Page, error) {
	all, err := r.FindBySpecification(ctx, nil, req.Sort)
	if err != nil {
		return nil, err
	}

	start := min(req.Offset(), len(all))
	end := min(start+req.LinesPerPage, len(all))

	return &shopping.Page{
		Content:       all[start:end],
		Number:        req.Page,
		Size:          req.LinesPerPage,
		TotalElements: int64(len(all)),
	}, nil
}

func (r *MockShoppingRepository) FindAllByUser(ctx context.Context, userIdentifier string) ([]*shopping.Order, error) {
	return r.FindBySpecification(ctx,
		shopping.NewByUserIdentifierSpecification(userIdentifier),
		shopping.Sort{Field: shopping.SortByID, Direction: shopping.ASC})
}

func (r *MockShoppingRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.shoppings[id]
	return ok, nil
}

func (r *MockShoppingRepository) DeleteByID(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.shoppings[id]; !ok {
		return shopping.NewNotFoundError(id)
	}
	delete(r.shoppings, id)
	return nil
}

func (r *MockShoppingRepository) FindBySpecification(ctx context.Context, spec shopping.Specification, sortBy shopping.Sort) ([]*shopping.Order, error) {
	r.mu.RLock()
	matched := lo.Filter(lo.Values(r.shoppings), func(o *shopping.Order, _ int) bool {
		return spec == nil || spec.IsSatisfiedBy(ctx, o)
	})
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return sortBy.Less(matched[i], matched[j]) })
	return matched, nil
}

func (r *MockShoppingRepository) Summarize(ctx context.Context, spec shopping.Specification) (shopping.Summary, error) {
	matched, err := r.FindBySpecification(ctx, spec, shopping.Sort{Field: shopping.SortByID})
	if err != nil {
		return shopping.Summary{}, err
	}
	total := lo.Reduce(matched, func(acc decimal.Decimal, o *shopping.Order, _ int) decimal.Decimal {
		return acc.Add(o.Total())
	}, decimal.Zero)
	return shopping.Summary{Count: int64(len(matched)), Total: total}, nil
}

// Len number of stored shoppings
func (r *MockShoppingRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.shoppings)
}

var _ shopping.Repository = (*MockShoppingRepository)(nil)
