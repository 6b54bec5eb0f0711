package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"productadmin/config"
	"productadmin/internal/server"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig(logger)
	if logLevel, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(logLevel)
	}

	logger.Info("Starting stand-in product API server...")

	memStore := server.NewMemStore(logger)
	if cfg.SeedDemo {
		if err := memStore.SeedDemoData(); err != nil {
			logger.Fatalf("Failed to seed demo data: %v", err)
		}
	} else {
		if err := memStore.AddUser(1, "admin", "admin123"); err != nil {
			logger.Fatalf("Failed to create admin account: %v", err)
		}
	}

	deps := server.Deps{
		Products:   memStore,
		Categories: memStore,
		Users:      memStore,
		History:    memStore,
		Tokens:     server.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL),
		Log:        logger,
	}

	// With DATABASE_URL set, products persist across restarts; everything
	// else stays in memory.
	if cfg.DatabaseURL != "" {
		db, err := connectDB(cfg.DatabaseURL, logger)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Errorf("Error closing database connection: %v", err)
			}
		}()

		pgStore := server.NewPostgresProductStore(db, logger)
		if err := pgStore.EnsureSchema(); err != nil {
			logger.Fatalf("Failed to prepare database schema: %v", err)
		}
		deps.Products = pgStore
		logger.Info("Product storage backed by postgres")
	}

	router := server.NewRouter(deps)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		logger.Infof("HTTP server listening on %s", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to serve HTTP: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Errorf("Forced shutdown: %v", err)
	}
	logger.Info("Server stopped.")
}

func connectDB(databaseURL string, logger *logrus.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	logger.Info("Database connection established.")
	return db, nil
}
