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

	"github.com/Pesokrava/ecommerce_catalog/internal/config"
	"github.com/Pesokrava/ecommerce_catalog/internal/delivery/events"
	httpDelivery "github.com/Pesokrava/ecommerce_catalog/internal/delivery/http"
	"github.com/Pesokrava/ecommerce_catalog/internal/delivery/http/handler"
	"github.com/Pesokrava/ecommerce_catalog/internal/pkg/cache"
	"github.com/Pesokrava/ecommerce_catalog/internal/pkg/database"
	"github.com/Pesokrava/ecommerce_catalog/internal/pkg/logger"
	"github.com/Pesokrava/ecommerce_catalog/internal/repository/postgres"
	"github.com/Pesokrava/ecommerce_catalog/internal/repository/session"
	"github.com/Pesokrava/ecommerce_catalog/internal/usecase/catalog"
	"github.com/Pesokrava/ecommerce_catalog/internal/usecase/review"

	_ "github.com/Pesokrava/ecommerce_catalog/docs"
)

// @title E-commerce Catalog API
// @version 1.0
// @description Catalog and review backend with soft-delete semantics and review-driven product ratings.

// @contact.name API Support
// @contact.url http://github.com/Pesokrava/ecommerce_catalog

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @tag.name Categories
// @tag.description Category management endpoints

// @tag.name Products
// @tag.description Product management endpoints

// @tag.name Reviews
// @tag.description Review management endpoints

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Env)
	appLogger.Info("Starting catalog API...")

	appLogger.Info("Connecting to PostgreSQL...")
	db, err := database.WaitForDB(cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL")

	if err := database.RunMigrations(db); err != nil {
		appLogger.Fatal("Failed to run migrations", err)
	}

	appLogger.Info("Connecting to Redis...")
	redisClient, err := cache.WaitForRedis(cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis")

	appLogger.Info("Connecting to NATS...")
	publisher, err := events.NewPublisher(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create NATS publisher", err)
	}
	defer publisher.Close()

	categoryRepo := postgres.NewCategoryRepository(db)
	productRepo := postgres.NewProductRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	userRepo := postgres.NewUserRepository(db)
	sessions := session.NewStore(redisClient, cfg.Auth.SessionTTL, appLogger)

	catalogService := catalog.NewService(productRepo, categoryRepo, appLogger)
	reviewService := review.NewService(reviewRepo, publisher, appLogger)

	categoryHandler := handler.NewCategoryHandler(catalogService, appLogger)
	productHandler := handler.NewProductHandler(catalogService, appLogger)
	reviewHandler := handler.NewReviewHandler(reviewService, appLogger)

	router := httpDelivery.NewRouter(categoryHandler, productHandler, reviewHandler, sessions, userRepo, cfg, appLogger)
	httpHandler := router.Setup()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Infof("HTTP server listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", err)
	}

	appLogger.Info("Server stopped gracefully")
}
