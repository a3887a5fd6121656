package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/app/echo-server/router"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/business/analytics"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/business/orders"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/business/quality"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/domain"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/internal/middleware"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/internal/repository/notification"
	psqlRepo "github.com/Jonathan-Lukwichi/pizzaops-intelligence/internal/repository/postgres"
	redisRepo "github.com/Jonathan-Lukwichi/pizzaops-intelligence/internal/repository/redis"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/internal/rest"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/pkg/config"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/pkg/database"
	redisClient "github.com/Jonathan-Lukwichi/pizzaops-intelligence/pkg/database/redis"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/pkg/logger"
	"github.com/Jonathan-Lukwichi/pizzaops-intelligence/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting PizzaOps Intelligence", "version", cfg.App.Version)

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	if err := db.AutoMigrate(&domain.Order{}, &domain.AnalyticsSnapshot{}); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	logger.Info("Database connected successfully")

	rdb, err := redisClient.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer redisClient.CloseRedisClient(rdb)

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init repo
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	snapshotRepo := psqlRepo.NewSnapshotRepository(db)
	snapshotCache := redisRepo.NewSnapshotCache(rdb)

	// Init service
	analyticsService := analytics.NewService(
		ordersRepo,
		snapshotCache,
		snapshotRepo,
		mailjetEmail,
		analytics.DefaultConfig(),
		time.Duration(cfg.Analytics.SnapshotTTLSeconds)*time.Second,
		cfg.Analytics.AlertDigestEnabled,
		analytics.DigestRecipient{
			Name:  cfg.Mailjet.AlertRecipientName,
			Email: cfg.Mailjet.AlertRecipientEmail,
		},
	)
	ordersService := orders.NewOrdersService(ordersRepo, analyticsService)
	qualityService := quality.NewService(ordersRepo)

	// Drop snapshots past retention before serving
	if cfg.Analytics.SnapshotRetentionDays > 0 {
		retention := time.Duration(cfg.Analytics.SnapshotRetentionDays) * 24 * time.Hour
		pruned, err := analyticsService.PruneSnapshots(context.Background(), retention)
		if err != nil {
			logger.Error("Failed to prune old snapshots", "error", err)
		} else if pruned > 0 {
			logger.Info("Pruned old analytics snapshots", "count", pruned)
		}
	}

	// Init handler
	ordersHandler := rest.NewOrdersHandler(ordersService)
	analyticsHandler := rest.NewAnalyticsHandler(analyticsService)
	scenarioHandler := rest.NewScenarioHandler(analyticsService, qualityService)
	qualityHandler := rest.NewQualityHandler(qualityService)
	forecastHandler := rest.NewForecastHandler(analyticsService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetOrdersRoutes(api, ordersHandler)
	router.SetAnalyticsRoutes(api, analyticsHandler)
	router.SetScenarioRoutes(api, scenarioHandler)
	router.SetQualityRoutes(api, qualityHandler)
	router.SetForecastRoutes(api, forecastHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
