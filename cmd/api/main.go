package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"finanzas/internal/config"
	"finanzas/internal/database"
	"finanzas/internal/events"
	"finanzas/internal/logger"
	"finanzas/internal/metrics"
	"finanzas/internal/server"
	"finanzas/internal/services"
	"finanzas/internal/store"
	"finanzas/internal/validator"
)

// @title           Finanzas API
// @version         1.0
// @description     Finanzas splits a monthly salary across percentage buckets, tracks what was spent in each one and keeps a snapshot per period.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Init(logger.Config{Env: appConfig.Env, Level: appConfig.LogLevel})
	defer logger.Sync()
	log := logger.Get()

	validator.Register()

	// Open the database unless documents live in memory
	var db *gorm.DB
	if appConfig.DataBackend != config.BackendMemory {
		dbManager, err := database.NewManager(database.NewConfig(appConfig))
		if err != nil {
			return fmt.Errorf("failed to create database manager: %w", err)
		}
		defer func() {
			if err := dbManager.Close(); err != nil {
				log.Warnf("failed to close database: %v", err)
			}
		}()

		if err := dbManager.RunMigrations(); err != nil {
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
		db = dbManager.DB()
	}

	docs, err := store.New(appConfig.DataBackend, db)
	if err != nil {
		return fmt.Errorf("failed to create document store: %w", err)
	}

	publisher, err := events.NewPublisher(appConfig.AMQPURL, appConfig.AMQPExchange, appConfig.AMQPRoutingKey)
	if err != nil {
		return fmt.Errorf("failed to create event publisher: %w", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warnf("failed to close event publisher: %v", err)
		}
	}()

	// Initialize services
	m := metrics.New()
	gateway := services.NewPersistenceGateway(docs, publisher, m)
	sessions := services.NewSessionRegistry(gateway, services.SessionConfig{
		SaveDebounce: appConfig.SaveDebounce,
		SaveTimeout:  appConfig.SaveTimeout,
		IdleTTL:      appConfig.SessionIdleTTL,
	}, m)

	router := server.NewRouter(server.Deps{
		Budget:    services.NewBudgetService(sessions),
		Snapshots: services.NewSnapshotService(gateway),
		Audit:     services.NewAuditService(db),
		Metrics:   m,
		JWTSecret: appConfig.JWTSecret,
		JWTIssuer: appConfig.JWTIssuer,
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("Starting Finanzas backend server on port %s (backend %s)", appConfig.Port, appConfig.DataBackend)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return sessions.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	err = g.Wait()

	// Pending debounced saves are written before the store goes away.
	sessions.Shutdown()
	log.Info("Server stopped")
	return err
}
