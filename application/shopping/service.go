/*
Package shopping Application Layer - shopping orchestration and reporting

The application service validates the buyer against the identity service,
prices every item from the catalog and commits the order through the unit
of work. Remote lookups run before the transaction starts so no database
connection is held during network calls.

No idempotency key exists: submitting the same request twice stores two
shoppings.
*/
package shopping

import (
	"context"
	"fmt"
	"time"

	"shopping-api/domain/shared"
	"shopping-api/domain/shopping"
	"shopping-api/pkg/logger"
	"shopping-api/pkg/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultLookupBudget bounds the whole fan-out of one create request.
const DefaultLookupBudget = 10 * time.Second

// Config is fixed at construction.
type Config struct {
	// LookupBudget caps identity plus product lookups of one request.
	LookupBudget time.Duration
	// Location renders response dates and anchors calendar-day filters.
	Location *time.Location
	// Now stamps new shoppings. Defaults to time.Now.
	Now func() time.Time
	// Metrics is optional.
	Metrics *metrics.Metrics
}

func (c Config) withDefaults() Config {
	if c.LookupBudget <= 0 {
		c.LookupBudget = DefaultLookupBudget
	}
	if c.Location == nil {
		c.Location = time.Local
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// ApplicationService coordinates the shopping use cases.
type ApplicationService struct {
	repo     shopping.Repository
	users    shopping.UserLookup
	products shopping.ProductLookup
	uow      shared.UnitOfWork
	cfg      Config
}

func NewApplicationService(
	repo shopping.Repository,
	users shopping.UserLookup,
	products shopping.ProductLookup,
	uow shared.UnitOfWork,
	cfg Config,
) *ApplicationService {
	return &ApplicationService{
		repo:     repo,
		users:    users,
		products: products,
		uow:      uow,
		cfg:      cfg.withDefaults(),
	}
}

// Location used for rendering and day boundaries.
func (s *ApplicationService) Location() *time.Location {
	return s.cfg.Location
}

// CreateShopping validates the user, prices every item from the catalog and
// stores the order. Any failed lookup aborts before anything is written.
func (s *ApplicationService) CreateShopping(ctx context.Context, req CreateShoppingRequest) (*ShoppingResponse, error) {
	if len(req.Items) == 0 {
		return nil, shopping.NewValidationError("items", "shopping must have at least one item")
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.cfg.LookupBudget)
	defer cancel()

	if _, err := s.users.FindUser(lookupCtx, req.UserIdentifier); err != nil {
		return nil, err
	}

	items, err := s.priceItems(lookupCtx, req.Items)
	if err != nil {
		return nil, err
	}

	o, err := shopping.NewOrder(req.UserIdentifier, items, s.cfg.Now())
	if err != nil {
		return nil, err
	}

	var saved *shopping.Order
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		saved, err = s.repo.Save(ctx, o)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("store shopping: %w", err)
	}

	s.cfg.Metrics.ShoppingCreated()
	logger.FromContext(ctx).Info("Shopping created",
		zap.Int64("shopping_id", saved.ID()),
		zap.String("user_identifier", saved.UserIdentifier()),
		zap.Int("items", len(items)),
		zap.String("total", saved.Total().StringFixed(shopping.MoneyScale)),
	)

	resp := toShoppingResponse(saved, s.cfg.Location)
	return &resp, nil
}

// priceItems looks every product up concurrently. Results keep the request
// order; the first failure cancels the remaining lookups.
func (s *ApplicationService) priceItems(ctx context.Context, reqs []ItemRequest) ([]shopping.Item, error) {
	items := make([]shopping.Item, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	for i, r := range reqs {
		g.Go(func() error {
			p, err := s.products.FindProduct(gctx, r.ProductIdentifier)
			if err != nil {
				return err
			}
			item, err := shopping.NewItem(r.ProductIdentifier, p.Price())
			if err != nil {
				return err
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *ApplicationService) GetByID(ctx context.Context, id int64) (*ShoppingResponse, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toShoppingResponse(o, s.cfg.Location)
	return &resp, nil
}

func (s *ApplicationService) FindAll(ctx context.Context) ([]ShoppingResponse, error) {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toShoppingResponses(orders, s.cfg.Location), nil
}

// FindPage validates the paging parameters before querying.
func (s *ApplicationService) FindPage(ctx context.Context, q PageQuery) (*PageResponse, error) {
	req, err := shopping.NewPageRequest(q.Page, q.LinesPerPage, q.Direction, q.OrderBy)
	if err != nil {
		return nil, err
	}
	page, err := s.repo.FindPage(ctx, req)
	if err != nil {
		return nil, err
	}
	return toPageResponse(page, s.cfg.Location), nil
}

func (s *ApplicationService) FindByUser(ctx context.Context, userIdentifier string) ([]ShoppingResponse, error) {
	orders, err := s.repo.FindAllByUser(ctx, userIdentifier)
	if err != nil {
		return nil, err
	}
	return toShoppingResponses(orders, s.cfg.Location), nil
}

// Delete fails with a not-found error when id does not exist.
func (s *ApplicationService) Delete(ctx context.Context, id int64) error {
	return s.uow.Execute(ctx, func(ctx context.Context) error {
		exists, err := s.repo.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return shopping.NewNotFoundError(id)
		}
		if err := s.repo.DeleteByID(ctx, id); err != nil {
			return err
		}
		logger.FromContext(ctx).Info("Shopping deleted", zap.Int64("shopping_id", id))
		return nil
	})
}
