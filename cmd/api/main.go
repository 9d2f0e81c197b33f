package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"sharaspot/backend/internal/auth"
	"sharaspot/backend/internal/chargers"
	"sharaspot/backend/internal/config"
	"sharaspot/backend/internal/notifications/websocket"
	"sharaspot/backend/internal/uploads"
	"sharaspot/backend/internal/verification"
	"sharaspot/backend/internal/wallet"
	"sharaspot/backend/pkg/storage"
)

func main() {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging.Level)
	defer logger.Sync()

	// Connect to database
	db, err := sqlx.Connect("postgres", cfg.Database.GetDatabaseURL())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxConnections)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	if cfg.Database.MaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.Database.MaxLifetime)
	}

	// Live feed
	wsManager := websocket.NewManager(logger)
	defer wsManager.Stop()

	// Wire modules
	authService := auth.NewService(auth.NewPostgresRepository(db), logger, cfg.Security.JWTSecret, cfg.Security.TokenTTL)
	authHandler := auth.NewHandler(authService, logger)
	authMW := auth.Middleware(authService)

	walletService := wallet.NewService(wallet.NewPostgresRepository(db), logger)
	walletHandler := wallet.NewHandler(walletService, logger)

	nearbyCache := chargers.NewNearbyCache(cfg.Trust.NearbyCacheTTL)
	defer nearbyCache.Stop()
	chargerService := chargers.NewService(chargers.NewPostgresRepository(db), walletService, wsManager, nearbyCache, logger)
	chargerHandler := chargers.NewHandler(chargerService, logger)

	verificationService := verification.NewService(verification.NewPostgresRepository(db), chargerService, walletService, wsManager, logger)
	verificationHandler := verification.NewHandler(verificationService, logger)

	// Setup Router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS Middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Register Routes
	api := router.Group("/api")
	{
		authHandler.RegisterRoutes(api)
		chargerHandler.RegisterRoutes(api, authMW)
		verificationHandler.RegisterRoutes(api, authMW)
		walletHandler.RegisterRoutes(api, authMW)
	}

	// Photo uploads need S3 credentials; the rest of the API works without
	// them, so a failure here only disables that route.
	if store, err := storage.NewS3PhotoStore(context.Background(), cfg.Storage.S3Bucket, cfg.Storage.S3Region); err != nil {
		logger.Warn("Photo uploads disabled", zap.Error(err))
	} else {
		uploads.NewHandler(store, logger).RegisterRoutes(api, authMW)
	}

	// Live status feed
	router.GET("/ws/status", func(c *gin.Context) {
		userID := ""
		if token := c.Query("token"); token != "" {
			if id, err := authService.VerifyToken(token); err == nil {
				userID = id.String()
			}
		}
		if _, err := wsManager.HandleConnection(c.Writer, c.Request, userID); err != nil {
			logger.Warn("Failed to open live feed connection", zap.Error(err))
		}
	})

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	// Start Server
	srv := &http.Server{
		Addr:         cfg.Server.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("addr", srv.Addr))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}

func newLogger(level string) *zap.Logger {
	if level == "debug" {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}
