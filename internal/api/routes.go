package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jobfolio/profile-intake/internal/handler"
	"github.com/jobfolio/profile-intake/internal/middleware"
	"github.com/jobfolio/profile-intake/internal/ratelimit"
	"github.com/jobfolio/profile-intake/internal/telemetry"
)

// Handlers groups the endpoint handlers for route setup.
type Handlers struct {
	Share    *handler.ShareHandler
	Moderate *handler.ModerateHandler
	Events   *handler.EventsHandler
	Jobs     *handler.JobsHandler
	Health   *handler.HealthHandler
}

// SetupRoutes configures all API routes.
func SetupRoutes(
	router *gin.Engine,
	handlers Handlers,
	limiter *ratelimit.Limiter,
	shareMaxRequests int,
	shareWindow time.Duration,
	metrics *telemetry.Metrics,
) {
	router.GET("/health", handlers.Health.HealthCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	apiGroup := router.Group("/api")

	// Only the intake endpoint is rate limited; moderation is gated by
	// auth and reads are cheap.
	apiGroup.POST("/share",
		middleware.RateLimit(limiter, shareMaxRequests, shareWindow, func() {
			metrics.RateLimitDenials.Inc()
		}),
		handlers.Share.Handle)

	apiGroup.GET("/moderate", handlers.Moderate.List)
	apiGroup.POST("/moderate", handlers.Moderate.Decide)

	apiGroup.POST("/events", handlers.Events.Handle)

	apiGroup.GET("/jobs", handlers.Jobs.List)
	apiGroup.GET("/jobs/:slug", handlers.Jobs.GetBySlug)
}
