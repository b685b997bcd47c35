package router

import (
	"github.com/gin-gonic/gin"

	"github.com/meetocure/admin-api/internal/handler/health"
	"github.com/meetocure/admin-api/internal/handler/prometheus"
	"github.com/meetocure/admin-api/internal/middleware"
)

// AdminPrefix is where every back-office route lives
const AdminPrefix = "/admin"

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	Mode         string
	CORSOrigins  []string
	MaxBodyBytes int64
	HSTS         bool
}

type Router struct {
	engine   *gin.Engine
	health   *health.Handler
	metrics  *prometheus.Handler
	handlers []Handler
}

// NewRouter builds the engine with the shared middleware. metrics may be
// nil, in which case neither request metrics nor /metrics are served.
func NewRouter(cfg Config, healthH *health.Handler, metrics *prometheus.Handler, handlers ...Handler) *Router {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.NoRoute(middleware.NoRoute())
	engine.NoMethod(middleware.NoMethod())

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins)),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig(cfg.HSTS)),
		middleware.SizeLimit(cfg.MaxBodyBytes),
		middleware.ErrorHandler(),
	)
	if metrics != nil {
		engine.Use(metrics.Middleware())
	}

	return &Router{
		engine:   engine,
		health:   healthH,
		metrics:  metrics,
		handlers: handlers,
	}
}

func (r *Router) Setup() {
	root := r.engine.Group("")
	if r.health != nil {
		r.health.RegisterRoutes(root)
	}
	if r.metrics != nil {
		root.GET("/metrics", r.metrics.Handler())
	}

	admin := r.engine.Group(AdminPrefix)
	for _, h := range r.handlers {
		h.RegisterRoutes(admin)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
