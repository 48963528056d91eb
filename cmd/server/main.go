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

	"gemilang-store/config"
	"gemilang-store/internal/api"
	"gemilang-store/internal/auth"
	"gemilang-store/internal/broker"
	"gemilang-store/internal/redisclient"
	"gemilang-store/internal/service"
	"gemilang-store/internal/storage"
	"gemilang-store/internal/store"
	"gemilang-store/internal/util"
	"gemilang-store/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting gemilang store")

	tp, err := util.InitTracer("gemilang-store", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected")

	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Redis connected")

	avatars, err := storage.NewAvatarStorage(
		cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey,
		cfg.Storage.UseSSL, cfg.Storage.AvatarBucket, cfg.Storage.PublicURL)
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}
	log.Println("Object storage connected")

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	eventPublisher := broker.NewEventPublisher(producer)

	sessionTTL := time.Duration(cfg.Auth.SessionTTLSeconds) * time.Second
	sessions := auth.NewSessionStore(redisClient, sessionTTL)
	authService := auth.NewService(db, db, sessions, cfg.Auth.BcryptCost)

	catalogService := service.NewCatalogService(db)
	cartService := service.NewCartService(db)
	checkoutService := service.NewCheckoutService(db, eventPublisher)
	profileService := service.NewProfileService(db, avatars)
	notificationService := service.NewNotificationService(db, redisClient)
	adminService := service.NewAdminService(db, eventPublisher)

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()

	authEvents := redisClient.SubscribeAuthEvents(watchCtx)
	defer authEvents.Close()
	go sessions.Watch(watchCtx, authEvents.Channel())

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	notificationConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder, cfg.Kafka.ConsumerGroup)
	notificationWorker := worker.NewNotificationWorker(notificationConsumer, db, redisClient)
	go func() {
		if err := notificationWorker.Start(workerCtx); err != nil {
			log.Printf("Notification worker error: %v", err)
		}
	}()

	reconcileConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder, "cart-reconcile-group")
	reconcileWorker := worker.NewReconcileWorker(reconcileConsumer, db)
	go func() {
		if err := reconcileWorker.Start(workerCtx); err != nil {
			log.Printf("Reconcile worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(
		sessions, authService,
		catalogService, cartService, checkoutService,
		profileService, notificationService, adminService,
		cfg.Auth.SessionCookie, sessionTTL,
	)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	notificationWorker.Stop()
	reconcileWorker.Stop()

	log.Println("Server exited")
}
