package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/luckyroue/wheelplay-backend/internal/config"
	"github.com/luckyroue/wheelplay-backend/internal/handlers"
	"github.com/luckyroue/wheelplay-backend/internal/middleware"
	"github.com/luckyroue/wheelplay-backend/internal/models"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HandlerDependencies bundles the handlers wired in main.
type HandlerDependencies struct {
	GameHandler     *handlers.GameHandler
	CampaignHandler *handlers.CampaignHandler
	RewardHandler   *handlers.RewardHandler
	BanHandler      *handlers.BanHandler
	AuthHandler     *handlers.AuthHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})
		public.GET("/metrics", gin.WrapH(promhttp.Handler()))

		// Player-facing game routes. The play endpoint carries its own
		// transport-level rate limit in front of the ledger velocity check.
		game := public.Group("/game")
		{
			game.GET("/:slug", deps.GameHandler.GetCampaign)
			game.POST("/:slug/play", middleware.RateLimitMiddleware(cfg), deps.GameHandler.Play)
		}

		auth := public.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
		}
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		protected.POST("/auth/register", middleware.RequireRole(models.RoleSuperAdmin), deps.AuthHandler.Register)

		campaigns := protected.Group("/campaigns")
		campaigns.Use(middleware.RequireRole(models.RoleTenantOwner))
		{
			campaigns.POST("", deps.CampaignHandler.Create)
			campaigns.GET("/:id", deps.CampaignHandler.Get)
			campaigns.POST("/:id/status", deps.CampaignHandler.ChangeStatus)
			campaigns.POST("/:id/duplicate", deps.CampaignHandler.Duplicate)
			campaigns.POST("/:id/test-link", deps.CampaignHandler.TestLink)
			campaigns.DELETE("/:id", deps.CampaignHandler.Delete)
		}

		rewards := protected.Group("/rewards")
		rewards.Use(middleware.RequireRole(models.RoleTenantOwner, models.RoleTenantStaff))
		{
			rewards.GET("/:code/verify", deps.RewardHandler.Verify)
			rewards.POST("/:code/redeem", deps.RewardHandler.Redeem)
		}

		bans := protected.Group("/bans")
		bans.Use(middleware.RequireRole(models.RoleSuperAdmin))
		{
			bans.GET("", deps.BanHandler.List)
			bans.POST("", deps.BanHandler.Add)
			bans.DELETE("/:id", deps.BanHandler.Remove)
		}
	}

	return router
}
