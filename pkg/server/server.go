package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"umkm-reels/pkg/config"
	"umkm-reels/pkg/logger"
	"umkm-reels/pkg/middleware"
	"umkm-reels/pkg/validation"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 5 * time.Second

// NewLogger builds the service logger from LOG_LEVEL and LOG_PRETTY.
func NewLogger(cfg *config.Config, service string) *logger.Logger {
	return logger.NewWithOptions(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	}).With("service", service)
}

// InitSentry enables error reporting when SENTRY_DSN is set. The returned
// func flushes pending events and is a no-op otherwise.
func InitSentry(cfg *config.Config, log *logger.Logger) func() {
	if cfg.SentryDSN == "" {
		return func() {}
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.SentryEnvironment,
		EnableTracing:    true,
		TracesSampleRate: 0.2,
	})
	if err != nil {
		log.Error("Sentry init failed: %v", err)
		return func() {}
	}

	return func() { sentry.Flush(2 * time.Second) }
}

// NewEngine returns a gin engine with the middleware and endpoints every
// service exposes: recovery, Sentry, CORS, /health and /swagger.
func NewEngine(cfg *config.Config) *gin.Engine {
	validation.Register()

	r := gin.Default()
	if cfg.SentryDSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// Start serves handler on SERVER_PORT in the background.
func Start(cfg *config.Config, log *logger.Logger, name string, handler http.Handler) *http.Server {
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("%s service starting on port %s", name, cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return srv
}

// WaitForSignal blocks until SIGINT or SIGTERM.
func WaitForSignal() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}

// Shutdown gives in-flight requests five seconds to finish.
func Shutdown(srv *http.Server) error {
	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
