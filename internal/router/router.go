package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	appointmentHandler "github.com/niramoy/clinic-api/internal/handler/appointment"
	authHandler "github.com/niramoy/clinic-api/internal/handler/auth"
	catalogHandler "github.com/niramoy/clinic-api/internal/handler/catalog"
	healthHandler "github.com/niramoy/clinic-api/internal/handler/health"
	testimonialHandler "github.com/niramoy/clinic-api/internal/handler/testimonial"
	"github.com/niramoy/clinic-api/internal/middleware"
	"github.com/niramoy/clinic-api/internal/model"
	"github.com/niramoy/clinic-api/pkg/metrics"
)

type Config struct {
	RateLimit  rate.Limit
	RateBurst  int
	CORSConfig middleware.CORSConfig
}

type Router struct {
	engine       *gin.Engine
	auth         *middleware.AuthMiddleware
	authH        *authHandler.Handler
	catalogH     *catalogHandler.Handler
	appointmentH *appointmentHandler.Handler
	testimonialH *testimonialHandler.Handler
	healthH      *healthHandler.Handler
	metrics      *metrics.Metrics
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH *authHandler.Handler,
	catalogH *catalogHandler.Handler,
	appointmentH *appointmentHandler.Handler,
	testimonialH *testimonialHandler.Handler,
	healthH *healthHandler.Handler,
	m *metrics.Metrics,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:       engine,
		auth:         auth,
		authH:        authH,
		catalogH:     catalogH,
		appointmentH: appointmentH,
		testimonialH: testimonialH,
		healthH:      healthH,
		metrics:      m,
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

// Setup mounts all routes. The public site consumes the catalog and
// testimonial reads plus the intake submission; the dashboard routes
// require a verified admin token.
func (r *Router) Setup() {
	api := r.engine.Group("")

	requireAdmin := []gin.HandlerFunc{
		r.auth.Authenticate(),
		r.auth.RequireRole(model.RoleAdmin),
	}

	r.authH.RegisterRoutes(api)
	r.catalogH.RegisterRoutes(api, requireAdmin...)
	r.testimonialH.RegisterRoutes(api, requireAdmin...)
	r.appointmentH.RegisterRoutes(api, r.auth.Authenticate())
	r.healthH.RegisterRoutes(api)

	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if r.metrics == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		r.metrics.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		r.metrics.RequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		if c.Writer.Status() >= 400 {
			r.metrics.ErrorTotal.WithLabelValues(c.Request.Method, path).Inc()
		}
	}
}
