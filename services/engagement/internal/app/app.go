package internal

import (
	"net/http"

	"umkm-reels/pkg/cache"
	"umkm-reels/pkg/config"
	"umkm-reels/pkg/database"
	"umkm-reels/pkg/jwt"
	"umkm-reels/pkg/logger"
	"umkm-reels/pkg/server"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	_ "umkm-reels/services/engagement/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	jwtService  *jwt.Service
	httpServer  *http.Server
	flushSentry func()
}

func NewApp(cfg *config.Config) (*App, error) {
	log := server.NewLogger(cfg, "engagement")
	flushSentry := server.InitSentry(cfg, log)

	db, err := database.NewPostgresDB(cfg, log)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	// The rate limiter cannot work without redis.
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		return nil, err
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		jwtService:  jwt.NewService(cfg.JWTSecret),
		flushSentry: flushSentry,
	}, nil
}

func (a *App) Run() error {
	r := NewRouter(a.cfg, a.log, a.db, a.redisClient, a.jwtService)
	a.httpServer = server.Start(a.cfg, a.log, "Engagement", r)
	return nil
}

func (a *App) Wait() {
	server.WaitForSignal()
	a.log.Info("Shutting down engagement service...")
}

func (a *App) Shutdown() error {
	defer a.flushSentry()

	if err := database.Close(a.db); err != nil {
		a.log.Error("Error closing database: %v", err)
	}

	if err := a.redisClient.Close(); err != nil {
		a.log.Error("Error closing redis: %v", err)
	}

	if err := server.Shutdown(a.httpServer); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Engagement service exited")
	return nil
}
