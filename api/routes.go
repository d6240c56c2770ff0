package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/ruachost/domainstack/api/handlers"
	"github.com/ruachost/domainstack/api/middleware"
	"github.com/ruachost/domainstack/internal/repository"
	"github.com/ruachost/domainstack/internal/tracing"
	"github.com/ruachost/domainstack/services"
)

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(ctx context.Context, r *gin.Engine, s *services.Services, repos *repository.Repositories, internalAPIKey string) {
	if s == nil {
		panic("Services cannot be nil")
	}
	if repos == nil {
		panic("Repositories cannot be nil")
	}

	// Add recovery middlewares
	r.Use(gin.Recovery())
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer()))

	// setup handlers
	apiHandlers := handlers.InitHandlers(s, repos)

	// Health check endpoint (no custom context needed)
	r.GET("/health", handlers.HealthCheck)

	apiKeyMiddleware := middleware.APIKeyMiddleware(middleware.APIKeyConfig{
		HeaderName:  "X-RUACHOST-API-KEY",
		ValidAPIKey: internalAPIKey,
	})

	// Public storefront API
	public := r.Group("/api")
	public.Use(middleware.CustomContextMiddleware("domainstack"))
	public.Use(middleware.TracingMiddleware())
	{
		domains := public.Group("/domains")
		{
			domains.GET("/search", apiHandlers.Domains.IssueSearchChallenge())
			domains.POST("/search", apiHandlers.Domains.SearchDomain())
			domains.GET("/pricing", apiHandlers.Domains.GetPricing())
			domains.GET("/status", apiHandlers.Domains.GetDomainStatus())
			domains.GET("/dns", apiHandlers.Domains.ListDNSRecords())
			domains.POST("/renew", apiHandlers.Domains.RenewDomain())
		}

		public.POST("/connect-domain", apiHandlers.Connections.ConnectDomain())
		public.GET("/verify-domain", apiHandlers.Connections.VerifyDomain())

		public.POST("/orders", apiHandlers.Orders.CreateOrder())

		payments := public.Group("/payments")
		{
			payments.POST("/initialize", apiHandlers.Payments.InitializePayment())
			payments.GET("/verify", apiHandlers.Payments.VerifyPayment())
		}

		public.POST("/webhooks/paystack", apiHandlers.Webhooks.PaystackWebhook())
	}

	// Internal API, key protected
	internal := r.Group("/internal")
	internal.Use(apiKeyMiddleware)
	internal.Use(middleware.CustomContextMiddleware("domainstack"))
	internal.Use(middleware.TracingMiddleware())
	{
		internal.GET("/orders", apiHandlers.Orders.ListRecentOrders())
	}
}
