package internal

import (
	"umkm-reels/pkg/config"
	"umkm-reels/pkg/engagement"
	"umkm-reels/pkg/jwt"
	"umkm-reels/pkg/logger"
	"umkm-reels/pkg/middleware"
	"umkm-reels/pkg/models"
	"umkm-reels/pkg/server"
	engagementHTTP "umkm-reels/services/engagement/internal/controller/http"
	"umkm-reels/services/engagement/internal/repo/persistent"
	"umkm-reels/services/engagement/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func NewRouter(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, jwtService *jwt.Service) *gin.Engine {
	// Initialize repositories
	eventRepo := persistent.NewEventRepository(db)
	ownerRepo := persistent.NewOwnerRepository(db)

	// Initialize use cases
	engagementUseCase := usecase.NewEngagementUseCase(eventRepo, ownerRepo, engagement.NewAggregator(db), log)

	// Initialize HTTP handlers
	engagementHandler := engagementHTTP.NewEngagementHandler(engagementUseCase, log)

	r := server.NewEngine(cfg)

	api := r.Group("/api/v1")
	{
		// Optional auth runs first so the limiter can key on the user.
		api.POST("/engagement-events",
			middleware.OptionalAuthMiddleware(jwtService),
			middleware.RateLimitMiddleware(redisClient, cfg.EngagementRateLimit, cfg.EngagementRateWindow, log),
			engagementHandler.RecordEvent,
		)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(jwtService))
		{
			protected.GET("/reels/:id/stats", middleware.RequireRole(models.RoleSeller, models.RoleAdmin), engagementHandler.GetReelStats)
			protected.GET("/seller/stats", middleware.RequireRole(models.RoleSeller), engagementHandler.GetSellerStats)
		}
	}

	return r
}
