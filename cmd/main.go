package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "books_app/docs"
	"books_app/internal/config"
	"books_app/internal/handlers"
	"books_app/internal/logger"
	"books_app/internal/repository"
	"books_app/internal/repository/db"
	"books_app/internal/server"
	"books_app/internal/service"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// @title        Books API
// @version      1.0
// @description  Book catalog with session login and a token-protected JSON API.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// load configs/config.yml and environment overrides
	cfg, err := config.Load("configs")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Init(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	gin.SetMode(cfg.GinMode)
	if cfg.UsingDevSecrets() {
		log.Warnw("using development secrets; set BOOKS_SESSION_SECRET and BOOKS_JWT_SIGNING_KEY")
	}

	// open DB
	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "path", cfg.DB.Path, "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.AuthOptions{
		SigningKey: cfg.JWT.SigningKey,
		TokenTTL:   cfg.JWT.TTL,
	})

	if cfg.Seed.Demo {
		seeded, err := services.SeedDemo(context.Background())
		if err != nil {
			log.Fatalw("failed to seed demo catalog", "err", err)
		}
		log.Infow("demo catalog", "seeded", seeded)
	}

	h := handlers.NewHandler(services, log, handlers.Config{
		SessionName:    cfg.Session.Name,
		SessionSecret:  cfg.Session.Secret,
		SessionMaxAge:  cfg.Session.MaxAge,
		SecureCookies:  cfg.GinMode == gin.ReleaseMode,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		TrustedProxies: cfg.TrustedProxies,
	})

	// start HTTP server
	srv := server.New(cfg.Port, h.InitRoutes())
	go func() {
		log.Infow("server started", "addr", srv.Addr())
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()

	waitForShutdown(srv, log)
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
