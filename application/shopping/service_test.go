package shopping

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"shopping-api/domain/product"
	"shopping-api/domain/shared"
	"shopping-api/domain/shopping"
	"shopping-api/domain/user"
	"shopping-api/infrastructure/persistence/mocks"
	"shopping-api/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var brt = time.FixedZone("BRT", -3*60*60)

type fakeUsers struct {
	known map[string]bool
	calls atomic.Int32
}

func (f *fakeUsers) FindUser(_ context.Context, cpf string) (*user.User, error) {
	f.calls.Add(1)
	if !f.known[cpf] {
		return nil, shared.NewNotFoundError("user", cpf)
	}
	return user.RebuildFromDTO(user.ReconstructionDTO{CPF: cpf, Name: "buyer"}), nil
}

type fakeProducts struct {
	prices map[string]string
	calls  atomic.Int32

	mu   sync.Mutex
	seen []string
}

func (f *fakeProducts) FindProduct(ctx context.Context, id string) (*product.Product, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.seen = append(f.seen, id)
	f.mu.Unlock()

	price, ok := f.prices[id]
	if !ok {
		return nil, shared.NewNotFoundError("product", id)
	}
	if price == "block" {
		<-ctx.Done()
		return nil, shared.NewNotFoundError("product", id)
	}
	return product.RebuildFromDTO(product.ReconstructionDTO{
		ProductIdentifier: id,
		Price:             decimal.RequireFromString(price),
	}), nil
}

type fixture struct {
	repo     *mocks.MockShoppingRepository
	uow      *mocks.MockUnitOfWork
	users    *fakeUsers
	products *fakeProducts
	metrics  *metrics.Metrics
	service  *ApplicationService
}

var fixedNow = time.Date(2024, 5, 10, 14, 30, 15, 999, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:     mocks.NewMockShoppingRepository(),
		uow:      mocks.NewMockUnitOfWork(),
		users:    &fakeUsers{known: map[string]bool{"12345678900": true}},
		products: &fakeProducts{prices: map[string]string{"mug": "10.10", "pen": "0.20", "book": "39.90", "slow": "block"}},
		metrics:  metrics.New(),
	}
	f.service = NewApplicationService(f.repo, f.users, f.products, f.uow, Config{
		LookupBudget: time.Second,
		Location:     brt,
		Now:          func() time.Time { return fixedNow },
		Metrics:      f.metrics,
	})
	return f
}

func createRequest(user string, products ...string) CreateShoppingRequest {
	req := CreateShoppingRequest{UserIdentifier: user}
	for _, p := range products {
		req.Items = append(req.Items, ItemRequest{ProductIdentifier: p})
	}
	return req
}

func TestCreateShopping(t *testing.T) {
	f := newFixture(t)

	resp, err := f.service.CreateShopping(context.Background(), createRequest("12345678900", "mug", "pen", "book", "pen"))
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, "12345678900", resp.UserIdentifier)
	assert.Equal(t, "50.40", resp.Total.String())
	assert.Equal(t, "10-05-2024 11:30:15", resp.Date)
	require.Len(t, resp.Items, 4)
	assert.Equal(t, ItemResponse{ProductIdentifier: "mug", Price: "10.10"}, resp.Items[0])
	assert.Equal(t, ItemResponse{ProductIdentifier: "pen", Price: "0.20"}, resp.Items[3])

	assert.Equal(t, int32(1), f.users.calls.Load())
	assert.Equal(t, int32(4), f.products.calls.Load())
	assert.Equal(t, 1, f.repo.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ShoppingsCreated))

	stored, err := f.service.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp, stored)
}

func TestCreateShopping_SubCentPricesSumExactly(t *testing.T) {
	f := newFixture(t)
	f.products.prices["bolt"] = "10.005"

	resp, err := f.service.CreateShopping(context.Background(), createRequest("12345678900", "bolt", "bolt"))
	require.NoError(t, err)
	assert.Equal(t, "20.01", resp.Total.String())

	stored, err := f.repo.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.True(t, stored.Total().Equal(decimal.RequireFromString("20.010")))
	assert.Equal(t, "10.005", stored.Items()[0].Price().String())
}

func TestCreateShopping_DuplicateRequestsCreateTwoShoppings(t *testing.T) {
	f := newFixture(t)
	req := createRequest("12345678900", "mug")

	first, err := f.service.CreateShopping(context.Background(), req)
	require.NoError(t, err)
	second, err := f.service.CreateShopping(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, f.repo.Len())
}

func TestCreateShopping_UnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreateShopping(context.Background(), createRequest("000", "mug"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
	assert.Equal(t, "user", shared.EntityOf(err))

	assert.Zero(t, f.products.calls.Load(), "no product lookups after the user check fails")
	assert.Zero(t, f.repo.Len())
	assert.Zero(t, f.uow.Executions)
}

func TestCreateShopping_UnknownProductAbortsWholeShopping(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreateShopping(context.Background(), createRequest("12345678900", "mug", "ghost", "pen"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
	assert.Equal(t, "product", shared.EntityOf(err))
	assert.Equal(t, "product not found: ghost", err.Error())

	assert.Zero(t, f.repo.Len())
	assert.Zero(t, f.uow.Executions)
}

func TestCreateShopping_NoItems(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreateShopping(context.Background(), createRequest("12345678900"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	assert.Zero(t, f.users.calls.Load())
}

func TestCreateShopping_LookupBudget(t *testing.T) {
	f := newFixture(t)
	f.service = NewApplicationService(f.repo, f.users, f.products, f.uow, Config{LookupBudget: 20 * time.Millisecond})

	start := time.Now()
	_, err := f.service.CreateShopping(context.Background(), createRequest("12345678900", "mug", "slow"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
	assert.Less(t, time.Since(start), time.Second)
	assert.Zero(t, f.repo.Len())
}

type failingRepo struct {
	*mocks.MockShoppingRepository
}

func (failingRepo) Save(context.Context, *shopping.Order) (*shopping.Order, error) {
	return nil, errors.New("disk full")
}

func TestCreateShopping_StoreFailure(t *testing.T) {
	f := newFixture(t)
	svc := NewApplicationService(failingRepo{f.repo}, f.users, f.products, f.uow, Config{})

	_, err := svc.CreateShopping(context.Background(), createRequest("12345678900", "mug"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, shared.ErrNotFound))
	assert.Contains(t, err.Error(), "disk full")
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateShopping(ctx, createRequest("12345678900", "mug"))
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(ctx, created.ID))

	_, err = f.service.GetByID(ctx, created.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	err = f.service.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
	assert.Equal(t, "shopping", shared.EntityOf(err))
}

func TestFindByUserAndAll(t *testing.T) {
	f := newFixture(t)
	f.users.known["222"] = true
	ctx := context.Background()

	a, err := f.service.CreateShopping(ctx, createRequest("12345678900", "mug"))
	require.NoError(t, err)
	_, err = f.service.CreateShopping(ctx, createRequest("222", "pen"))
	require.NoError(t, err)
	c, err := f.service.CreateShopping(ctx, createRequest("12345678900", "book"))
	require.NoError(t, err)

	byUser, err := f.service.FindByUser(ctx, "12345678900")
	require.NoError(t, err)
	require.Len(t, byUser, 2)
	assert.Equal(t, a.ID, byUser[0].ID)
	assert.Equal(t, c.ID, byUser[1].ID)

	all, err := f.service.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFindPage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, p := range []string{"book", "pen", "mug"} {
		_, err := f.service.CreateShopping(ctx, createRequest("12345678900", p))
		require.NoError(t, err)
	}

	page, err := f.service.FindPage(ctx, PageQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Number)
	assert.Equal(t, 12, page.Size)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 1, page.TotalPages)
	require.Len(t, page.Content, 3)
	assert.Equal(t, "0.20", page.Content[0].Total.String())
	assert.Equal(t, "39.90", page.Content[2].Total.String())

	zero := 0
	_, err = f.service.FindPage(ctx, PageQuery{LinesPerPage: &zero})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = f.service.FindPage(ctx, PageQuery{OrderBy: "price"})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}
