package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seaside_restaurant/internal/config"
	"seaside_restaurant/internal/database"
	"seaside_restaurant/internal/events"
	"seaside_restaurant/internal/handlers"
	"seaside_restaurant/internal/logger"
	"seaside_restaurant/internal/migrations"
	"seaside_restaurant/internal/redis"
	"seaside_restaurant/internal/repository"
	"seaside_restaurant/internal/services"
	"seaside_restaurant/pkg/mailer"
	"seaside_restaurant/pkg/storage"
	"seaside_restaurant/pkg/whatsapp"

	"github.com/gin-gonic/gin"
)

const menuCacheTTL = 10 * time.Minute

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Component: "server"})

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Redis is optional. Without it the menu is not cached and password
	// reset mails are not throttled.
	var (
		tempStore services.TempStore
		throttle  services.Throttle
	)
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Warn("redis unavailable, caching and throttling disabled", "error", err)
	} else {
		defer redisClient.Close()
		tempStore = redisClient
		throttle = redisClient
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL)
		if err != nil {
			log.Warn("rabbitmq unavailable, order events disabled", "error", err)
		} else {
			publisher = amqpPublisher
		}
	}
	defer publisher.Close()

	var mail mailer.Mailer = mailer.Disabled{}
	if cfg.MailEnabled() {
		sesMailer, err := mailer.NewSESMailer(ctx, mailer.Config{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			From:            cfg.FromEmail,
		})
		if err != nil {
			log.Warn("email disabled", "error", err)
		} else {
			mail = sesMailer
		}
	}

	var uploader storage.Uploader
	if cfg.UploadEnabled() {
		s3Uploader, err := storage.NewS3Uploader(ctx, storage.Config{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			Bucket:          cfg.S3Bucket,
			Folder:          cfg.S3Folder,
		})
		if err != nil {
			log.Warn("uploads disabled", "error", err)
		} else {
			uploader = s3Uploader
		}
	}

	var sender services.MessageSender
	if cfg.WhatsAppEnabled() {
		sender = whatsapp.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppUsername, cfg.WhatsAppPassword, cfg.WhatsAppPath)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	menuRepo := repository.NewMenuItemRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo, customerRepo, resetRepo, mail, throttle, services.AuthSettings{
		SiteURL:       cfg.SiteURL,
		ResetTokenTTL: time.Duration(cfg.ResetTokenTTL) * time.Second,
		ResetThrottle: time.Duration(cfg.ResetThrottleSeconds) * time.Second,
	}, log.WithComponent("users").Logger)
	menuCache := services.NewMenuCache(tempStore, menuCacheTTL, log.WithComponent("menu_cache").Logger)
	categoryService := services.NewCategoryService(categoryRepo, menuCache)
	menuService := services.NewMenuService(categoryRepo, menuRepo, menuCache)
	notifier := services.NewNotificationService(sender, log.WithComponent("notifications").Logger)
	orderService := services.NewOrderService(orderRepo, customerRepo, menuRepo, publisher, notifier, log.WithComponent("orders").Logger)
	inquiryService := services.NewInquiryService(inquiryRepo, mail, cfg.AdminEmail, log.WithComponent("inquiries").Logger)
	dashboardService := services.NewDashboardService(orderRepo, customerRepo, menuRepo)

	if err := migrations.RunMigrations(db, userService, migrations.AdminSeed{
		Username: cfg.DefaultAdminUsername,
		Password: cfg.DefaultAdminPassword,
		Email:    cfg.DefaultAdminEmail,
	}, log.WithComponent("migrations").Logger); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	// Setup routes
	router := gin.New()
	router.Use(gin.Recovery(), log.Middleware(), handlers.CORS(cfg.CORSAllowedOrigins))

	handlerLog := log.WithComponent("http").Logger
	handlers.RegisterRoutes(router, handlers.Handlers{
		Auth:      handlers.NewAuthHandler(userService, handlerLog),
		Category:  handlers.NewCategoryHandler(categoryService, handlerLog),
		Menu:      handlers.NewMenuHandler(menuService, handlerLog),
		Order:     handlers.NewOrderHandler(orderService, handlerLog),
		Inquiry:   handlers.NewInquiryHandler(inquiryService, handlerLog),
		Dashboard: handlers.NewDashboardHandler(dashboardService, handlerLog),
		Upload:    handlers.NewUploadHandler(uploader, cfg.MaxUploadMB, handlerLog),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Info("server starting", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
	}
}
