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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/farahcakes/bakery-engine/docs"
	"github.com/farahcakes/bakery-engine/internal/api"
	"github.com/farahcakes/bakery-engine/internal/config"
	"github.com/farahcakes/bakery-engine/internal/middleware"
	"github.com/farahcakes/bakery-engine/internal/repository"
	"github.com/farahcakes/bakery-engine/internal/repository/localstore"
	"github.com/farahcakes/bakery-engine/internal/repository/postgres"
	"github.com/farahcakes/bakery-engine/internal/repository/remote"
	"github.com/farahcakes/bakery-engine/internal/service"
	"github.com/farahcakes/bakery-engine/internal/service/ai"
	"github.com/farahcakes/bakery-engine/internal/service/images"
	"github.com/farahcakes/bakery-engine/internal/service/pubsub"
	"github.com/farahcakes/bakery-engine/internal/worker"
	"github.com/farahcakes/bakery-engine/pkg/logger"
)

// @title           Bakery Engine Swagger API
// @version         1.0
// @description     Multi-tenant bakery storefront engine with a local-first data layer.

// @host      localhost:10000
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Initialize logger
	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		appLogger.Fatal("Failed to load config", err)
	}

	// The remote store is optional: without Postgres the engine runs in
	// cache-only mode and every reconciled read falls back locally.
	var repo repository.Repository
	db, err := config.NewDatabase()
	if err != nil {
		appLogger.Warnf("Remote store unavailable, running cache-only: %v", err)
	} else {
		if err := postgres.AutoMigrate(db); err != nil {
			appLogger.Fatal("Failed to migrate database", err)
		}
		repo = postgres.NewPostgresRepository(db)
		appLogger.Info("Remote store connected")
	}

	// The local store is not optional. It is the durability floor.
	local, err := localstore.Open(cfg.LocalStorePath)
	if err != nil {
		appLogger.Fatal("Failed to open local store", err)
	}
	defer local.Close()

	remoteStore := remote.NewStore(repo, appLogger, cfg.RemoteTimeout)
	reconciler := service.NewReconciler(remoteStore, local, appLogger)

	// Redis is optional: it backs rate limiting and cross-node event fan-out.
	redisConfig := config.DefaultRedisConfig()
	redisClient, err := redisConfig.GetClient()
	var redisPubSub *pubsub.RedisPubSub
	if err != nil {
		appLogger.Warnf("Redis unavailable, rate limiting and cross-node events disabled: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
		redisPubSub = pubsub.NewRedisPubSub(redisClient, appLogger)
	}

	// S3 is optional: without a bucket, optimized images are inlined.
	s3Config := config.DefaultS3Config()
	s3Client, err := s3Config.GetClient(context.Background())
	if err != nil {
		appLogger.Warnf("S3 client unavailable, images will be inlined: %v", err)
		s3Client = nil
	}

	remoteWriter := worker.NewRemoteWriter(appLogger, 3, 256, cfg.RemoteTimeout)
	remoteWriter.Start()

	// Initialize services
	siteService := service.NewSiteService(reconciler, remoteStore, remoteWriter, nil, appLogger)
	catalogService := service.NewCatalogService(reconciler, remoteStore, remoteWriter, nil, appLogger)

	describer := ai.NewDescriber(cfg.GeminiAPIKey, cfg.GeminiModel, appLogger)
	optimizer := images.NewOptimizer(s3Config, s3Client, appLogger)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(redisClient, cfg, appLogger)
	validationMiddleware := middleware.NewValidationMiddleware(appLogger)

	// Initialize server
	server := api.NewServer(
		siteService,
		catalogService,
		describer,
		optimizer,
		authMiddleware,
		rateLimitMiddleware,
		validationMiddleware,
		appLogger,
		redisPubSub,
	)

	// Wire up WebSocket broadcasting; the hub fans events through Redis when
	// available and in-process otherwise.
	hub := server.GetWebSocketHandler()
	siteService.SetPublisher(hub)
	catalogService.SetPublisher(hub)
	server.StartWebSocketHub()

	// Load (or seed) the site list before accepting traffic.
	siteService.Init(context.Background())

	// Initialize router
	router := gin.Default()

	// Swagger documentation endpoint
	docs.SwaggerInfo.Title = "Bakery Engine API"
	docs.SwaggerInfo.Description = "Multi-tenant bakery storefront engine"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.ServerPort)
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Swagger UI endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"remote": remoteStore.Available(),
		})
	})

	// Setup API routes
	apiGroup := router.Group("/api/v1")
	server.SetupRoutes(apiGroup)

	// Start server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	// Shutdown the HTTP server, then drain pending remote writes.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", err)
	}
	remoteWriter.Stop()
	hub.Stop()

	appLogger.Info("Server exiting")
	appLogger.Sync()
}
