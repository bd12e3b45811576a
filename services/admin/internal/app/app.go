package internal

import (
	"net/http"

	"umkm-reels/pkg/config"
	"umkm-reels/pkg/database"
	"umkm-reels/pkg/jwt"
	"umkm-reels/pkg/logger"
	"umkm-reels/pkg/queue"
	"umkm-reels/pkg/server"
	"umkm-reels/services/admin/internal/usecase"

	"gorm.io/gorm"

	_ "umkm-reels/services/admin/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	queueClient *queue.Client
	jwtService  *jwt.Service
	httpServer  *http.Server
	flushSentry func()
}

func NewApp(cfg *config.Config) (*App, error) {
	log := server.NewLogger(cfg, "admin")
	flushSentry := server.InitSentry(cfg, log)

	db, err := database.NewPostgresDB(cfg, log)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("Moderation events disabled: %v", err)
		// RabbitMQ is optional for admin service
		queueClient = nil
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		queueClient: queueClient,
		jwtService:  jwt.NewService(cfg.JWTSecret),
		flushSentry: flushSentry,
	}, nil
}

func (a *App) Run() error {
	// A nil *queue.Client must not become a non-nil interface.
	var publisher usecase.Publisher
	if a.queueClient != nil {
		publisher = a.queueClient
	}

	r := NewRouter(a.cfg, a.log, a.db, publisher, a.jwtService)
	a.httpServer = server.Start(a.cfg, a.log, "Admin", r)
	return nil
}

func (a *App) Wait() {
	server.WaitForSignal()
	a.log.Info("Shutting down admin service...")
}

func (a *App) Shutdown() error {
	defer a.flushSentry()

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	if err := database.Close(a.db); err != nil {
		a.log.Error("Error closing database: %v", err)
	}

	if err := server.Shutdown(a.httpServer); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Admin service exited")
	return nil
}
