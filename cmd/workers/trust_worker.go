package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"sharaspot/backend/internal/chargers"
	"sharaspot/backend/internal/config"
	"sharaspot/backend/internal/notifications"
	"sharaspot/backend/internal/wallet"
)

// The trust worker recomputes every charger's rolled-up status and trust
// score on a schedule. Scores decay with report age, so they must move even
// when nobody submits; the API only recomputes inline for chargers that
// receive fresh verifications.
func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	db, err := sqlx.Connect("postgres", cfg.Database.GetDatabaseURL())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	cache := chargers.NewNearbyCache(cfg.Trust.NearbyCacheTTL)
	defer cache.Stop()

	walletService := wallet.NewService(wallet.NewPostgresRepository(db), logger)
	chargerService := chargers.NewService(
		chargers.NewPostgresRepository(db),
		walletService,
		notifications.NopPublisher{},
		cache,
		logger,
	)

	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		start := time.Now()
		refreshed, err := chargerService.RefreshAllTrust(ctx)
		if err != nil {
			logger.Error("Trust recompute failed", zap.Error(err))
			return
		}
		logger.Info("Trust recompute finished",
			zap.Int("chargers", refreshed),
			zap.Duration("took", time.Since(start)))
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.Trust.CronSchedule, run); err != nil {
		logger.Fatal("Invalid trust cron schedule",
			zap.Error(err),
			zap.String("schedule", cfg.Trust.CronSchedule))
	}
	c.Start()
	logger.Info("Trust worker started", zap.String("schedule", cfg.Trust.CronSchedule))

	// Run once at startup so a fresh deployment has scores immediately.
	run()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Stopping trust worker...")
	<-c.Stop().Done()
	logger.Info("Trust worker exiting")
}
