package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"quote-service/controllers"
	"quote-service/database"
	"quote-service/events"
	"quote-service/models"
	"quote-service/providers"
	"quote-service/repository"
	"quote-service/routes"
	servicepkg "quote-service/services"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	cfg := LoadConfig()
	engineCfg := cfg.EngineConfig()

	db, err := database.ConnectPostgres(logger,
		&models.Country{},
		&models.TransportMode{},
		&models.Route{},
		&models.CalculationSettings{},
		&models.PickupSettings{},
		&models.Warehouse{},
		&models.QuoteSession{},
		&models.Shipment{},
	)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db) //nolint:errcheck

	// Rate provider with Redis caching; degrade to uncached when Redis is
	// unreachable.
	var rateProvider providers.RateProvider = providers.NewEasyShipProvider(cfg.EasyShipAPIKey, logger)
	if redisClient, err := database.NewRedisClient(cfg.RedisURL); err != nil {
		logger.Warn("Redis unavailable, rate caching disabled", zap.Error(err))
	} else {
		rateProvider = providers.NewCachedRateProvider(rateProvider, redisClient, logger)
	}

	// Event publisher
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.QuoteSNSTopicARN != "" {
		snsPub, err := events.NewSNSPublisher(context.Background(), cfg.QuoteSNSTopicARN, cfg.AWSRegion, logger)
		if err != nil {
			logger.Warn("SNS unavailable, event publishing disabled", zap.Error(err))
		} else {
			publisher = snsPub
		}
	}

	// Repositories and DI chain
	routeRepo := repository.NewGormRouteRepository(db)
	settingsRepo := repository.NewGormSettingsRepository(db)
	pickupRepo := repository.NewGormPickupRepository(db)
	warehouseRepo := repository.NewGormWarehouseRepository(db)
	quoteRepo := repository.NewGormQuoteRepository(db)

	resolver := servicepkg.NewSettingsResolver(settingsRepo, logger)
	pricer := servicepkg.NewFreightPricer(engineCfg, logger)
	pickupCalc := servicepkg.NewPickupCalculator(pickupRepo, logger)

	quoteService := servicepkg.NewQuoteService(
		routeRepo,
		warehouseRepo,
		quoteRepo,
		resolver,
		pricer,
		pickupCalc,
		rateProvider,
		publisher,
		engineCfg,
		logger,
	)
	quoteController := controllers.NewQuoteController(quoteService)

	r := gin.New()

	// Global request-logging middleware
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", duration),
		)
	})

	// 30-second request timeout
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "quote-service"})
	})

	routes.RegisterQuoteRoutes(r, quoteController)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	logger.Info("Quote service started", zap.String("port", cfg.Port))
	<-quit
	logger.Info("Shutting down quote service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited cleanly")
}
