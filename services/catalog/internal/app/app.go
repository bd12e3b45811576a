package internal

import (
	"net/http"

	"umkm-reels/pkg/config"
	"umkm-reels/pkg/database"
	"umkm-reels/pkg/jwt"
	"umkm-reels/pkg/logger"
	"umkm-reels/pkg/server"
	"umkm-reels/pkg/storage"

	"gorm.io/gorm"

	_ "umkm-reels/services/catalog/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	store       storage.Store
	jwtService  *jwt.Service
	httpServer  *http.Server
	flushSentry func()
}

func NewApp(cfg *config.Config) (*App, error) {
	log := server.NewLogger(cfg, "catalog")
	flushSentry := server.InitSentry(cfg, log)

	db, err := database.NewPostgresDB(cfg, log)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	store, err := storage.New(cfg)
	if err != nil {
		log.Error("Failed to initialize storage: %v", err)
		return nil, err
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		store:       store,
		jwtService:  jwt.NewService(cfg.JWTSecret),
		flushSentry: flushSentry,
	}, nil
}

func (a *App) Run() error {
	r := NewRouter(a.cfg, a.log, a.db, a.store, a.jwtService)
	a.httpServer = server.Start(a.cfg, a.log, "Catalog", r)
	return nil
}

func (a *App) Wait() {
	server.WaitForSignal()
	a.log.Info("Shutting down catalog service...")
}

func (a *App) Shutdown() error {
	defer a.flushSentry()

	if err := database.Close(a.db); err != nil {
		a.log.Error("Error closing database: %v", err)
	}

	if err := server.Shutdown(a.httpServer); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Catalog service exited")
	return nil
}
