package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"unihop/internal/handler"
	"unihop/internal/middleware"
	"unihop/internal/redis"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	OrderHandler   *handler.OrderHandler
	WebhookHandler *handler.WebhookHandler
	ResponseCache  *redis.ResponseCache
	NewRelicApp    *newrelic.Application
	APIKey         string
	WebhookVerify  gin.HandlerFunc
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.ResponseCache))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Webhook ingest, guarded by signature verification.
	webhook := router.Group("/")
	if deps.WebhookVerify != nil {
		webhook.Use(deps.WebhookVerify)
	}
	webhook.POST("/orders", deps.WebhookHandler.HandleJobEvent)

	// Read/patch API, guarded by API key.
	api := router.Group("/")
	api.Use(middleware.APIKeyMiddleware(deps.APIKey))
	{
		api.GET("/orders", deps.OrderHandler.List)
		api.PATCH("/order/:job_id", deps.OrderHandler.Update)
	}

	return router
}
