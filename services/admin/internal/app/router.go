package internal

import (
	"umkm-reels/pkg/config"
	"umkm-reels/pkg/engagement"
	"umkm-reels/pkg/jwt"
	"umkm-reels/pkg/logger"
	"umkm-reels/pkg/middleware"
	"umkm-reels/pkg/models"
	"umkm-reels/pkg/server"
	adminHTTP "umkm-reels/services/admin/internal/controller/http"
	"umkm-reels/services/admin/internal/repo/persistent"
	"umkm-reels/services/admin/internal/usecase"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewRouter wires the admin API. publisher may be nil.
func NewRouter(cfg *config.Config, log *logger.Logger, db *gorm.DB, publisher usecase.Publisher, jwtService *jwt.Service) *gin.Engine {
	// Initialize repositories
	userRepo := persistent.NewUserRepository(db)
	sellerRepo := persistent.NewSellerRepository(db)
	reelRepo := persistent.NewReelRepository(db)
	eventRepo := persistent.NewEventRepository(db)
	aggregator := engagement.NewAggregator(db)

	// Initialize use cases
	moderationUseCase := usecase.NewModerationUseCase(userRepo, sellerRepo, reelRepo, aggregator, publisher, log)
	statsUseCase := usecase.NewStatsUseCase(userRepo, reelRepo, eventRepo, aggregator, log)

	// Initialize HTTP handlers
	adminHandler := adminHTTP.NewAdminHandler(moderationUseCase, statsUseCase, log)

	r := server.NewEngine(cfg)

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtService), middleware.RequireRole(models.RoleAdmin))
	{
		api.GET("/sellers", adminHandler.ListSellers)
		api.POST("/sellers/:id/block", adminHandler.BlockSeller)
		api.POST("/sellers/:id/unblock", adminHandler.UnblockSeller)

		api.POST("/reels/:id/block", adminHandler.BlockReel)
		api.POST("/reels/:id/unblock", adminHandler.UnblockReel)

		api.PUT("/users/:id/role", adminHandler.ChangeRole)

		api.GET("/stats", adminHandler.GetStats)
		api.DELETE("/engagement-events", adminHandler.ResetEngagement)
	}

	return r
}
