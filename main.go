// File: slotbooker/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotbooker/config"
	"slotbooker/cron"
	"slotbooker/database"
	bookingRepoPkg "slotbooker/database/repository/booking"
	"slotbooker/handlers"
	"slotbooker/middleware"
	"slotbooker/routes"
	authSvc "slotbooker/services/auth"
	bookingSvc "slotbooker/services/booking"
	"slotbooker/services/notification"
	"slotbooker/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Email delivery: SendGrid when configured, log-only stub otherwise.
	var sender notification.EmailSender
	if sg := notification.NewSendGridSender(notification.SendGridConfig{
		APIKey:    config.AppConfig.SendgridAPIKey,
		FromEmail: config.AppConfig.SendgridFromEmail,
		FromName:  config.AppConfig.SendgridFromName,
	}); sg != nil {
		sender = sg
	} else {
		logger.Sugar().Warn("main: no SendGrid API key configured, OTP emails will be logged only")
		sender = notification.StubEmailSender{}
	}

	// Background OTP delivery queue.
	queueOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
	queueClient := asynq.NewClient(queueOpts)
	defer queueClient.Close()
	cron.InitOTPWorker(sender)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()

	// services.
	bookingService := &bookingSvc.DefaultBookingService{
		Repo:  bookingRepo,
		Cache: utils.GetCacheClient(),
	}
	authService := &authSvc.DefaultAuthService{
		Queue:  queueClient,
		Sender: sender,
	}

	bookingHandler := handlers.NewBookingHandler(bookingService)
	authHandler := handlers.NewAuthHandler(authService)

	routes.RegisterRoutes(router, bookingHandler, authHandler)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient(), utils.GetOTPCacheClient()},
		database.MongoClient,
	)

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
