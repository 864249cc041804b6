package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ManaClgLevelUp/revathi-duba/internal/config"
	"github.com/ManaClgLevelUp/revathi-duba/internal/database"
	"github.com/ManaClgLevelUp/revathi-duba/internal/handler"
	"github.com/ManaClgLevelUp/revathi-duba/internal/middleware"
	"github.com/ManaClgLevelUp/revathi-duba/internal/repository"
	"github.com/ManaClgLevelUp/revathi-duba/internal/router"
	"github.com/ManaClgLevelUp/revathi-duba/internal/service"
	cloud "github.com/ManaClgLevelUp/revathi-duba/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL, cfg.AppName)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	}

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	itemRepo := repository.NewGalleryItemRepository(db)
	collectionRepo := repository.NewGalleryCollectionRepository(db)
	contactRepo := repository.NewContactRepository(db)
	uploadRepo := repository.NewUploadRepository(db)

	appCtx, stopServices := context.WithCancel(context.Background())
	defer stopServices()

	feedService := service.NewFeedService(redisClient, natsConn, cfg.FeedChannel, logger)
	feedService.Start(appCtx)

	batchService := service.NewBatchUploadService(uploader, uploadRepo, cfg.UploadMaxMB, logger)
	collectionService := service.NewCollectionService(collectionRepo, itemRepo, batchService, feedService, validate, logger)
	galleryService := service.NewGalleryService(itemRepo, logger)
	adminGalleryService := service.NewAdminGalleryService(itemRepo, feedService, validate, logger)
	contactService := service.NewContactService(contactRepo, redisClient, validate, logger)
	adminContactService := service.NewAdminContactService(contactRepo, logger)
	authService := service.NewAuthService(cfg, validate, logger)

	liveView := service.NewLiveViewService(itemRepo, collectionService, feedService, logger)
	if err := liveView.Start(appCtx); err != nil {
		log.Fatalf("failed to start live gallery view: %v", err)
	}

	deps := router.Dependencies{
		GalleryHandler:      handler.NewGalleryHandler(galleryService, logger),
		CollectionHandler:   handler.NewCollectionHandler(collectionService, liveView, logger),
		FeedHandler:         handler.NewFeedHandler(feedService, liveView, logger),
		ContactHandler:      handler.NewContactHandler(contactService, logger),
		AuthHandler:         handler.NewAuthHandler(authService, logger),
		AdminGalleryHandler: handler.NewAdminGalleryHandler(adminGalleryService, liveView, logger),
		BatchUploadHandler:  handler.NewBatchUploadHandler(batchService, logger),
		AdminContactHandler: handler.NewAdminContactHandler(adminContactService, validate, logger),
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    int(cfg.UploadMaxBytes()) * 2,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowedOrigins: cfg.AllowedOrigins})
	router.Register(app, cfg, deps)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, stopServices)
}

func waitForShutdown(app *fiber.App, stopServices context.CancelFunc) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()
	stopServices()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
