package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/nebulanet/topup-backend/api/routes"
	"github.com/nebulanet/topup-backend/internal/config"
	"github.com/nebulanet/topup-backend/internal/handlers"
	"github.com/nebulanet/topup-backend/internal/repositories"
	mongorepo "github.com/nebulanet/topup-backend/internal/repositories/mongodb"
	"github.com/nebulanet/topup-backend/internal/services"
	"github.com/nebulanet/topup-backend/internal/store"
	"github.com/nebulanet/topup-backend/pkg/mongodb"
	"github.com/nebulanet/topup-backend/pkg/settlement"
)

func main() {
	// .env is optional; real deployments set environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := newLogger(cfg.LogLevel)

	mongoClient, err := mongodb.NewClient(context.Background(), cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error("error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	var transactionRepo repositories.TransactionRepository = mongorepo.NewTransactionRepository(db)
	var userRepo repositories.UserRepository = mongorepo.NewUserRepository(db)

	var provider settlement.Provider
	if cfg.Settlement.MockProvider {
		provider = settlement.NewMockProvider(cfg.Settlement.FailureRate, cfg.Settlement.PendingRate)
	} else {
		// a real provider client would be constructed here; until one is
		// integrated the mock is the only settlement path
		log.Fatal("no real settlement provider configured; set Settlement.MockProvider=true")
	}

	sessionStore := store.New()
	notificationService := services.NewNotificationService(time.Duration(cfg.Store.NotificationTTL) * time.Second)
	userService := services.NewUserService(userRepo)
	purchaseService := services.NewPurchaseService(transactionRepo, userRepo, provider, sessionStore, notificationService, logger)
	transactionService := services.NewTransactionService(transactionRepo, userRepo, logger)

	deps := routes.HandlerDependencies{
		PurchaseHandler:     handlers.NewPurchaseHandler(purchaseService, userService),
		NetworkHandler:      handlers.NewNetworkHandler(),
		TransactionHandler:  handlers.NewTransactionHandler(transactionService, userService, sessionStore),
		NotificationHandler: handlers.NewNotificationHandler(notificationService),
	}

	router := routes.SetupRouter(cfg, logger, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	logger.Info("server exiting")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
