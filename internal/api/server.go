package api

import (
	"github.com/gin-gonic/gin"

	"github.com/farahcakes/bakery-engine/internal/middleware"
	"github.com/farahcakes/bakery-engine/internal/service"
	"github.com/farahcakes/bakery-engine/internal/service/ai"
	"github.com/farahcakes/bakery-engine/internal/service/images"
	"github.com/farahcakes/bakery-engine/internal/service/pubsub"
	"github.com/farahcakes/bakery-engine/pkg/logger"
)

type Server struct {
	auth       *AuthHandler
	site       *SiteHandler
	storefront *StorefrontHandler
	catalog    *CatalogHandler
	websocket  *WebSocketHandler
	authMW     *middleware.AuthMiddleware
	rateLimit  *middleware.RateLimitMiddleware
	validation *middleware.ValidationMiddleware
}

func NewServer(
	siteService *service.SiteService,
	catalogService *service.CatalogService,
	describer *ai.Describer,
	optimizer *images.Optimizer,
	authMW *middleware.AuthMiddleware,
	rateLimit *middleware.RateLimitMiddleware,
	validation *middleware.ValidationMiddleware,
	logger *logger.Logger,
	pubsub *pubsub.RedisPubSub,
) *Server {
	return &Server{
		auth:       NewAuthHandler(siteService, authMW),
		site:       NewSiteHandler(siteService),
		storefront: NewStorefrontHandler(siteService, catalogService),
		catalog:    NewCatalogHandler(siteService, catalogService, describer, optimizer),
		websocket:  NewWebSocketHandler(siteService, logger, pubsub),
		authMW:     authMW,
		rateLimit:  rateLimit,
		validation: validation,
	}
}

func (s *Server) SetupRoutes(api *gin.RouterGroup) {
	// Apply global rate limiting and input hygiene
	api.Use(s.rateLimit.GlobalRateLimit())
	api.Use(s.validation.BlockSuspiciousPatterns())
	api.Use(s.validation.SanitizeInput())

	{
		// Public surface: navigation, storefronts, checkout, the wizard.
		api.GET("/resolve", s.storefront.Resolve)
		api.POST("/auth/login", s.validation.ValidateContentType("application/json"), s.auth.Login)

		storefront := api.Group("/storefront")
		{
			storefront.GET("/:slug", s.storefront.GetStorefront)
			storefront.GET("/:slug/stream", s.websocket.HandleWebSocket)
			storefront.POST("/:slug/coupons/apply", s.validation.ValidateContentType("application/json"), s.storefront.ApplyCoupon)
		}

		sites := api.Group("/sites")
		{
			// Site creation is the wizard's endpoint and needs no account.
			sites.POST("", s.validation.ValidateContentType("application/json"), s.site.CreateSite)

			admin := sites.Group("", s.authMW.JWTAuth(), s.authMW.RequireRole("admin"))
			{
				admin.GET("", s.site.ListSites)
				admin.DELETE("/:siteId", s.site.DeleteSite)
			}

			manager := sites.Group("/:siteId", s.authMW.JWTAuth(), s.authMW.RequireSiteAccess(), s.rateLimit.SiteRateLimit())
			{
				manager.GET("", s.site.GetSite)
				manager.PUT("", s.site.UpdateSite)
				manager.POST("/cakes", s.catalog.SaveCake)
				manager.DELETE("/cakes/:cakeId", s.catalog.DeleteCake)
				manager.POST("/cakes/describe", s.catalog.DescribeCake)
				manager.POST("/coupons", s.catalog.SaveCoupon)
				manager.DELETE("/coupons/:code", s.catalog.DeleteCoupon)
				manager.POST("/categories", s.catalog.AddCategory)
				manager.PUT("/categories", s.catalog.ReplaceCategories)
				manager.DELETE("/categories/:name", s.catalog.RemoveCategory)
				manager.POST("/images", s.validation.ValidateRequestSize(10*1024*1024), s.catalog.UploadImage)
			}
		}

		defaults := api.Group("/defaults")
		{
			defaults.GET("", s.site.GetDefaults)
			defaults.PUT("", s.authMW.JWTAuth(), s.authMW.RequireRole("admin"), s.site.UpdateDefaults)
		}
	}
}

// StartWebSocketHub starts the WebSocket hub for broadcasting storefront events
func (s *Server) StartWebSocketHub() {
	go s.websocket.Start()
}

// GetWebSocketHandler returns the WebSocket handler for wiring up broadcasting
func (s *Server) GetWebSocketHandler() *WebSocketHandler {
	return s.websocket
}
