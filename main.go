// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"salon-booking/cmd"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/jobs"
	"salon-booking/internal/notification"
	"salon-booking/internal/wire"
	"salon-booking/pkg/database"
	"salon-booking/pkg/middleware"
	"salon-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("timezone", config.App.Location().String()),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Rate limiting needs redis; without it the limiter stays disabled
	var limiter *middleware.RateLimiter
	if config.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
		})
		defer client.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			logger.Warn("Redis unreachable, rate limiter will fail open", zap.Error(err))
		}
		cancel()

		limiter = middleware.NewRateLimiter(client, config.Redis.RateLimit, config.Redis.RateLimitEvery, logger)
	} else {
		logger.Info("REDIS_ADDR not set, rate limiting disabled")
	}

	// Notifications go through a background queue
	dispatcher := notification.NewDispatcher(
		notification.NewMailer(config.Email, logger),
		notification.NewSMSSender(config.SMS),
		config.Notify.Workers,
		config.Notify.QueueSize,
		logger,
	)
	dispatcher.Start()

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, dispatcher, limiter, config, logger)

	// Background jobs
	scheduler, err := jobs.NewScheduler(config.Scheduler, config.App.Location(), app.Service.Booking, repos.Session, logger)
	if err != nil {
		logger.Fatal("Failed to schedule jobs", zap.Error(err))
	}
	scheduler.Start()

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))
	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("HTTP server stopped", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := scheduler.Stop(shutdownCtx); err != nil {
		logger.Warn("Scheduler did not stop cleanly", zap.Error(err))
	}
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Notification queue not drained", zap.Error(err))
	}

	logger.Info("Application stopped")
}
