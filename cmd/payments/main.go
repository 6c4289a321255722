package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/checkout"
	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/config"
	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/events"
	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/gateway"
	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/handlers"
	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/messages"
	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/repository"
	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/server"

	_ "github.com/lib/pq"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}
	logger := log.WithField("service", "payments-service")

	logger.WithFields(logrus.Fields{"port": cfg.Server.Port}).Info("Starting payments-service")

	db, err := initDatabase(cfg, logger)
	if err != nil {
		logger.WithFields(logrus.Fields{"error": err.Error()}).Fatal("Failed to connect to database")
	}
	defer db.Close()

	sessionRepo := repository.NewPostgresSessionRepository(db, logger.WithField("component", "session-repository"))
	sessionCache := repository.NewRedisSessionCache(cfg.Redis, logger.WithField("component", "session-cache"))

	tokenManager := gateway.NewTokenManager(cfg.Gateway, logger.WithField("component", "token-manager"))
	gatewayClient := gateway.NewClient(cfg.Gateway, logger.WithField("component", "gateway-client"))

	eventPublisher := events.NewKafkaPublisher(cfg.Kafka, logger.WithField("component", "event-publisher"))
	defer eventPublisher.Close()

	catalog := messages.NewCatalog(cfg.Locale)

	checkoutService := checkout.NewService(
		gatewayClient,
		tokenManager,
		sessionRepo,
		sessionCache,
		eventPublisher,
		catalog,
		cfg,
		logger.WithField("component", "checkout-service"),
	)

	h := handlers.NewHandlers(checkoutService, cfg, logger.WithField("component", "handlers"))

	srv := server.New(h, cfg)

	go func() {
		logger.WithFields(logrus.Fields{
			"port":            cfg.Server.Port,
			"gateway_url":     cfg.Gateway.BaseURL,
			"session_cache":   cfg.Features.EnableSessionCache,
			"checkout_events": cfg.Features.EnableCheckoutEvents,
		}).Info("Server starting")
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.WithFields(logrus.Fields{"error": err.Error()}).Fatal("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithFields(logrus.Fields{"error": err.Error()}).Error("Server forced to shutdown")
	}

	logger.Info("Server exited")
}

func initDatabase(cfg *config.Config, logger *logrus.Entry) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"host": cfg.Database.Host,
		"name": cfg.Database.Name,
	}).Info("Database connected")

	return db, nil
}
