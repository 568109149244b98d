package cmd

import (
	"context"
	"fmt"
	"net/http"

	"shopping-api/api"
	"shopping-api/api/health"
	apishopping "shopping-api/api/shopping"
	shoppingapp "shopping-api/application/shopping"
	"shopping-api/config"
	"shopping-api/domain/shared"
	"shopping-api/domain/shopping"
	"shopping-api/infrastructure/persistence/gormrepo"
	"shopping-api/infrastructure/persistence/mocks"
	"shopping-api/infrastructure/persistence/retry"
	"shopping-api/infrastructure/remote"
	"shopping-api/pkg/logger"
	"shopping-api/pkg/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppBuilder builds an App with customizable components
type AppBuilder struct {
	cfg          *config.Config
	controllers  []api.ControllerRegister
	middlewares  []api.MiddlewareRegister
	customRoutes []api.Route
	remoteOpts   []remote.Option
}

// NewBuilder creates a new AppBuilder
func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{
		cfg:          cfg,
		controllers:  []api.ControllerRegister{},
		middlewares:  []api.MiddlewareRegister{},
		customRoutes: []api.Route{},
	}
}

// WithController adds a controller to the app
func (b *AppBuilder) WithController(c api.ControllerRegister) *AppBuilder {
	b.controllers = append(b.controllers, c)
	return b
}

// WithMiddleware adds a middleware to the app
func (b *AppBuilder) WithMiddleware(m api.MiddlewareRegister) *AppBuilder {
	b.middlewares = append(b.middlewares, m)
	return b
}

// WithRoute adds a custom route
func (b *AppBuilder) WithRoute(method, path string, handler gin.HandlerFunc) *AppBuilder {
	b.customRoutes = append(b.customRoutes, api.Route{
		Method:  method,
		Path:    path,
		Handler: handler,
	})
	return b
}

// WithRemoteOptions customises both lookup clients, e.g. a shared *http.Client.
func (b *AppBuilder) WithRemoteOptions(opts ...remote.Option) *AppBuilder {
	b.remoteOpts = append(b.remoteOpts, opts...)
	return b
}

// store is what the configured driver provides.
type store struct {
	db   *gorm.DB
	repo shopping.Repository
	uow  shared.UnitOfWork
}

// Build creates the App instance. The logger must already be initialised.
func (b *AppBuilder) Build(ctx context.Context) (*App, error) {
	loc, err := b.cfg.Location()
	if err != nil {
		return nil, err
	}

	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env),
		zap.String("timezone", loc.String()))

	st, err := b.openStore(ctx)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	remoteOpts := append([]remote.Option{remote.WithMetrics(m)}, b.remoteOpts...)
	users := remote.NewIdentityClient(remote.Config{
		BaseURL: b.cfg.Remote.IdentityURL,
		Timeout: b.cfg.Remote.Timeout,
	}, remoteOpts...)
	products := remote.NewCatalogClient(remote.Config{
		BaseURL: b.cfg.Remote.CatalogURL,
		Timeout: b.cfg.Remote.Timeout,
	}, remoteOpts...)

	service := shoppingapp.NewApplicationService(st.repo, users, products, st.uow, shoppingapp.Config{
		LookupBudget: b.cfg.Remote.LookupBudget,
		Location:     loc,
		Metrics:      m,
	})
	reports := shoppingapp.NewReportEngine(st.repo, loc)

	controllers := append([]api.ControllerRegister{
		b.healthController(st.db),
		apishopping.NewController(service, reports),
	}, b.controllers...)

	router := api.NewRouter(b.cfg, m, controllers, b.middlewares, b.customRoutes)
	router.SetupRoutes()

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	return &App{
		config: b.cfg,
		router: router,
		server: server,
		db:     st.db,
	}, nil
}

func (b *AppBuilder) openStore(ctx context.Context) (store, error) {
	if b.cfg.Database.Driver == "memory" {
		logger.Info("Using in-memory persistence layer")
		return store{
			repo: mocks.NewMockShoppingRepository(),
			uow:  mocks.NewMockUnitOfWork(),
		}, nil
	}

	logger.Info("Using GORM persistence layer", zap.String("driver", b.cfg.Database.Driver))

	dbConfig := gormrepo.FromAppConfig(b.cfg)
	retryConfig := retry.FromAppConfig(b.cfg)
	db, err := dbConfig.Connect(ctx, retryConfig)
	if err != nil {
		return store{}, fmt.Errorf("failed to connect to %s: %w", b.cfg.Database.Driver, err)
	}

	return store{
		db:   db,
		repo: gormrepo.NewShoppingRepository(db),
		uow:  gormrepo.NewUnitOfWork(db, retryConfig),
	}, nil
}

func (b *AppBuilder) healthController(db *gorm.DB) *health.Controller {
	if db == nil {
		return health.NewController(b.cfg, nil)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return health.NewController(b.cfg, nil)
	}
	return health.NewController(b.cfg, sqlDB)
}
