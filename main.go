package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travelbook/config"
	"travelbook/cron"
	"travelbook/database"
	dbcache "travelbook/database/cache"
	bookingRepo "travelbook/database/repository/booking"
	packageRepo "travelbook/database/repository/travelpackage"
	"travelbook/handlers"
	"travelbook/middleware"
	"travelbook/routes"
	"travelbook/services/booking"
	"travelbook/services/notification"
	"travelbook/services/payment"
	"travelbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	bkRepo := bookingRepo.NewMongoBookingRepo()
	pkRepo := packageRepo.NewMongoPackageRepo()

	// Infrastructure.
	cache := dbcache.NewRedisBookingCache(utils.GetCacheClient(), logger)
	provider := payment.NewStripeProvider(
		config.AppConfig.StripeSecretKey,
		config.AppConfig.StripeWebhookSecret,
		logger,
	)
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	})
	defer asynqClient.Close()
	notifier := notification.NewAsynqNotificationService(asynqClient, logger)
	cron.InitEmailWorker(&notification.LogEmailSender{Logger: logger})

	// Services.
	bookingService := &booking.DefaultBookingService{
		Repo:           bkRepo,
		PackageRepo:    pkRepo,
		Cache:          cache,
		Payment:        provider,
		Notifier:       notifier,
		Logger:         logger,
		CacheTTL:       time.Duration(config.AppConfig.CacheTTLSecond) * time.Second,
		Currency:       config.AppConfig.Currency,
		SuccessURLBase: config.AppConfig.CheckoutSuccessURL,
		CancelURLBase:  config.AppConfig.CheckoutCancelURL,
	}

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Booking:  handlers.NewBookingHandler(bookingService, logger),
		Admin:    handlers.NewAdminHandler(bookingService, logger),
		Checkout: handlers.NewCheckoutHandler(bookingService, logger),
		Packages: handlers.NewPackageHandler(pkRepo, cache, time.Duration(config.AppConfig.CacheTTLSecond)*time.Second),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
