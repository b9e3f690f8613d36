package router

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/donorconnect/donor-api/internal/handler"
	"github.com/donorconnect/donor-api/internal/handler/assistant"
	"github.com/donorconnect/donor-api/internal/handler/auth"
	"github.com/donorconnect/donor-api/internal/handler/dashboard"
	"github.com/donorconnect/donor-api/internal/handler/donor"
	"github.com/donorconnect/donor-api/internal/handler/inventory"
	"github.com/donorconnect/donor-api/internal/handler/request"
	"github.com/donorconnect/donor-api/internal/middleware"
	"github.com/donorconnect/donor-api/internal/model"
	"github.com/donorconnect/donor-api/pkg/metrics"
)

type Handlers struct {
	Health    *handler.Handler
	Auth      *auth.Handler
	Requests  *request.Handler
	Donors    *donor.Handler
	Inventory *inventory.Handler
	Assistant *assistant.Handler
	Dashboard *dashboard.Handler
}

type RouterConfig struct {
	Mode           string
	RateLimit      rate.Limit
	RateBurst      int
	RateLimitOn    bool
	CORSConfig     middleware.CORSConfig
	MetricsEnabled bool
	MetricsPath    string
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	handlers Handlers
	metrics  *metrics.Metrics
	config   RouterConfig
}

func NewRouter(auth *middleware.AuthMiddleware, handlers Handlers, m *metrics.Metrics, config RouterConfig) *Router {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}
	middleware.RegisterValidation()

	engine := gin.New()

	r := &Router{
		engine:   engine,
		auth:     auth,
		handlers: handlers,
		metrics:  m,
		config:   config,
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		middleware.CORS(config.CORSConfig),
	)
	if m != nil {
		engine.Use(middleware.Metrics(m))
	}

	return r
}

func (r *Router) Setup() {
	if r.config.MetricsEnabled && r.metrics != nil {
		path := r.config.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.engine.GET(path, gin.WrapH(r.metrics.Handler()))
	}

	api := r.engine.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.handlers.Health.RegisterRoutes(api)

	limited := r.aiLimiter()

	// Public donor-facing routes
	r.handlers.Auth.RegisterRoutes(api)
	r.handlers.Donors.RegisterRoutes(api)
	r.handlers.Assistant.RegisterPublicRoutes(api, limited...)

	// Operator routes
	admin := api.Group("/admin")
	admin.Use(
		r.auth.Authenticate(),
		r.auth.RequireRole(model.RoleAdmin),
	)
	r.handlers.Requests.RegisterRoutes(admin, limited...)
	r.handlers.Inventory.RegisterRoutes(admin)
	r.handlers.Dashboard.RegisterRoutes(admin)
	r.handlers.Assistant.RegisterAdminRoutes(admin, limited...)
}

// aiLimiter returns the middleware guarding routes that call the
// generative service. All of them share one set of buckets.
func (r *Router) aiLimiter() []gin.HandlerFunc {
	if !r.config.RateLimitOn {
		return nil
	}
	rl := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  r.config.RateLimit,
		Burst: r.config.RateBurst,
	})
	return []gin.HandlerFunc{rl.RateLimit()}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
