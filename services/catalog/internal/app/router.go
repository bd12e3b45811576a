package internal

import (
	"umkm-reels/pkg/config"
	"umkm-reels/pkg/jwt"
	"umkm-reels/pkg/logger"
	"umkm-reels/pkg/middleware"
	"umkm-reels/pkg/models"
	"umkm-reels/pkg/server"
	"umkm-reels/pkg/storage"
	catalogHTTP "umkm-reels/services/catalog/internal/controller/http"
	"umkm-reels/services/catalog/internal/repo/persistent"
	"umkm-reels/services/catalog/internal/usecase"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func NewRouter(cfg *config.Config, log *logger.Logger, db *gorm.DB, store storage.Store, jwtService *jwt.Service) *gin.Engine {
	// Initialize repositories
	userRepo := persistent.NewUserRepository(db)
	profileRepo := persistent.NewProfileRepository(db)
	reelRepo := persistent.NewReelRepository(db)

	// Initialize use cases
	userUseCase := usecase.NewUserUseCase(userRepo)
	profileUseCase := usecase.NewProfileUseCase(userRepo, profileRepo, reelRepo, store, cfg, log)
	reelUseCase := usecase.NewReelUseCase(userRepo, profileRepo, reelRepo, store, log)

	// Initialize HTTP handlers
	userHandler := catalogHTTP.NewUserHandler(userUseCase, log)
	profileHandler := catalogHTTP.NewProfileHandler(profileUseCase, log)
	reelHandler := catalogHTTP.NewReelHandler(reelUseCase, log)

	r := server.NewEngine(cfg)

	// Uploaded media on the local disk driver
	if disk, ok := store.(*storage.Disk); ok {
		r.Static(disk.PublicPath(), disk.Root())
	}

	api := r.Group("/api/v1")
	{
		api.GET("/reels", reelHandler.ListReels)
		api.GET("/reels/:id", reelHandler.GetReel)
		api.GET("/umkm/nearby", profileHandler.Nearby)
		api.GET("/umkm/:id", profileHandler.GetPublicProfile)
		api.GET("/umkm/:id/reels", profileHandler.ListProfileReels)
		api.GET("/umkm/:id/qrcode", profileHandler.QRCode)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(jwtService))
		{
			protected.GET("/me", userHandler.GetMe)

			seller := protected.Group("")
			seller.Use(middleware.RequireRole(models.RoleSeller))
			{
				seller.POST("/umkm-profile", profileHandler.CreateProfile)
				seller.PUT("/umkm-profile", profileHandler.UpdateProfile)
				seller.GET("/umkm-profile", profileHandler.GetOwnProfile)

				seller.POST("/reels", reelHandler.CreateReel)
				seller.PUT("/reels/:id", reelHandler.UpdateReel)
				seller.DELETE("/reels/:id", reelHandler.DeleteReel)
				seller.GET("/seller/reels", reelHandler.ListSellerReels)
			}
		}
	}

	return r
}
