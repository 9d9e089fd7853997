package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"market-auth/cmd"
	"market-auth/internal/data/repository"
	"market-auth/internal/wire"
	"market-auth/pkg/database"
	"market-auth/pkg/mailer"
	"market-auth/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Verification codes go out by SMTP when a relay is configured,
	// otherwise they land in the log for development
	var mail mailer.Mailer = mailer.NewLogMailer(logger)
	if config.Email.Host != "" {
		mail = mailer.NewSMTPMailer(config.Email)
		logger.Info("SMTP mailer configured", zap.String("host", config.Email.Host))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Sweep expired and revoked sessions in the background
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := repos.Session.CleanExpiredSessions(ctx); err != nil {
					logger.Warn("Session cleanup failed", zap.Error(err))
				}
			}
		}
	}()

	// Wire all dependencies
	app := wire.Wiring(repos, mail, config, logger)

	// Serve until interrupted
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
