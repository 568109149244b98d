package api

import (
	"net/http"

	"shopping-api/api/middleware"
	"shopping-api/api/response"
	"shopping-api/config"
	"shopping-api/pkg/errors"
	"shopping-api/pkg/logger"
	"shopping-api/pkg/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ControllerRegister is implemented by every controller mounted on the router.
type ControllerRegister interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// MiddlewareRegister adds extra middleware after the built-in chain.
type MiddlewareRegister func(engine *gin.Engine)

// Route a custom route outside any controller
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

// Router Route configuration
type Router struct {
	engine       *gin.Engine
	config       *config.Config
	metrics      *metrics.Metrics
	controllers  []ControllerRegister
	customRoutes []Route
}

// NewRouter Create route configuration
func NewRouter(
	cfg *config.Config,
	m *metrics.Metrics,
	controllers []ControllerRegister,
	middlewares []MiddlewareRegister,
	customRoutes []Route,
) *Router {
	// Set Gin mode based on environment
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	response.UseJSONFieldNames()
	if loc, err := cfg.Location(); err == nil {
		response.SetLocation(loc)
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	// Add middleware (order is important)
	engine.Use(middleware.RequestIDMiddleware())                      // 1. Generate request ID first
	engine.Use(middleware.RecoveryMiddleware())                       // 2. Recovery middleware
	engine.Use(middleware.LoggingMiddleware())                        // 3. Logging middleware
	engine.Use(middleware.MetricsMiddleware(m))                       // 4. Request metrics
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))                  // 5. CORS
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit)) // 6. Rate limiting

	for _, register := range middlewares {
		register(engine)
	}

	return &Router{
		engine:       engine,
		config:       cfg,
		metrics:      m,
		controllers:  controllers,
		customRoutes: customRoutes,
	}
}

// SetupRoutes Set up all routes
func (r *Router) SetupRoutes() {
	root := r.engine.Group("")
	for _, c := range r.controllers {
		c.RegisterRoutes(root)
	}

	if r.config.Metrics.Enabled && r.metrics != nil {
		r.engine.GET(r.config.Metrics.Path, gin.WrapH(r.metrics.Handler()))
	}

	for _, route := range r.customRoutes {
		r.engine.Handle(route.Method, route.Path, route.Handler)
		logger.Debug("Custom route registered",
			zap.String("method", route.Method),
			zap.String("path", route.Path))
	}

	r.engine.NoRoute(func(c *gin.Context) {
		response.AbortWithError(c, http.StatusNotFound, errors.CodeNotFound, "route not found")
	})
	r.engine.NoMethod(func(c *gin.Context) {
		response.AbortWithError(c, http.StatusMethodNotAllowed, errors.CodeMethodNotAllowed, "method not allowed")
	})

	// Set root path route
	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":      r.config.App.Name,
			"version":   r.config.App.Version,
			"env":       r.config.App.Env,
			"shoppings": "/shoppings",
			"health":    "/health",
		})
	})
}

// GetEngine Get Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
