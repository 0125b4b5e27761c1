package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cartapp "github.com/farmstore/backend/internal/application/cart"
	catalogapp "github.com/farmstore/backend/internal/application/catalog"
	checkoutapp "github.com/farmstore/backend/internal/application/checkout"
	orderapp "github.com/farmstore/backend/internal/application/order"
	"github.com/farmstore/backend/internal/domain/catalog"
	domainidentity "github.com/farmstore/backend/internal/domain/identity"
	"github.com/farmstore/backend/internal/infrastructure/cartstore"
	"github.com/farmstore/backend/internal/infrastructure/config"
	"github.com/farmstore/backend/internal/infrastructure/identity"
	"github.com/farmstore/backend/internal/infrastructure/logger"
	"github.com/farmstore/backend/internal/infrastructure/persistence"
	"github.com/farmstore/backend/internal/interfaces/http/handler"
	"github.com/farmstore/backend/internal/interfaces/http/middleware"
	"github.com/farmstore/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Farm Store Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Wire the product and order store. With driver "none" the catalog
	// serves built-in products and submissions go through the simulated
	// submitter, so the storefront runs without any database at all.
	var productRepo catalog.ProductRepository
	var submitter orderapp.Submitter
	var store handler.Pinger

	if cfg.Database.Driver != "none" {
		gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

		db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Error closing database", zap.Error(err))
			}
		}()
		log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

		productRepo = persistence.NewGormProductRepository(db.DB)
		orderRepo := persistence.NewGormOrderRepository(db.DB)
		submitter = orderapp.NewSubmissionService(orderRepo, nil, log)
		store = db
	} else {
		log.Info("No database configured, serving built-in catalog")
		submitter = orderapp.NewSimulatedSubmitter(cfg.Checkout.SimulatedDelay, log)
	}

	// Cart persistence backend
	cartFactory, err := cartstore.NewStorageFactory(cfg.Cart, log)
	if err != nil {
		log.Fatal("Failed to initialize cart storage", zap.Error(err))
	}

	// Checkout prefill: anonymous unless a demo user is configured
	var users domainidentity.Provider = identity.Anonymous{}
	if cfg.Checkout.DemoUserEmail != "" {
		users = identity.Static{User: domainidentity.User{
			Email:    cfg.Checkout.DemoUserEmail,
			FullName: cfg.Checkout.DemoUserName,
		}}
	}

	// Initialize services
	productService := catalogapp.NewProductService(productRepo, log)
	cartService := cartapp.NewService(cartFactory, log)
	checkoutService := checkoutapp.NewService(cartService, submitter, users, log)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. SessionID - Resolve the storefront session
	// 5. CORS - Handle cross-origin requests
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SessionID())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
		MaxAge:       12 * time.Hour,
	}))

	// Register routes
	router.NewRouter(engine).
		Register(handler.NewProductHandler(productService)).
		Register(handler.NewCartHandler(cartService, productService)).
		Register(handler.NewCheckoutHandler(checkoutService)).
		Register(handler.NewSystemHandler(store)).
		Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
