package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"pagehits/counthub/internal/config"
	"pagehits/counthub/internal/handler"
	"pagehits/counthub/internal/metrics"
	"pagehits/counthub/internal/model"
	"pagehits/counthub/internal/repository"
	"pagehits/counthub/internal/service"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize logger
	var logger *zap.Logger
	if cfg.Log.Format == "json" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	// 3. Initialize counter repository (Postgres or in-memory)
	var (
		counterRepo repository.CounterRepository
		db          *gorm.DB
	)
	switch cfg.Database.Backend {
	case "postgres":
		db, err = config.NewPostgresDB(cfg.Database.Postgres)
		if err != nil {
			logger.Fatal("failed to connect to postgres", zap.Error(err))
		}
		if cfg.Database.Postgres.AutoMigrate {
			if err := model.AutoMigrate(db); err != nil {
				logger.Fatal("failed to auto-migrate", zap.Error(err))
			}
			logger.Info("database migration completed")
		}
		counterRepo = repository.NewPGCounterRepository(db)
		logger.Info("using Postgres counter store")
	case "memory":
		counterRepo = repository.NewMemoryCounterRepository()
		logger.Info("using in-memory counter store")
	default:
		logger.Fatal("unknown database backend", zap.String("backend", cfg.Database.Backend))
	}

	// 4. Register metrics
	metrics.Register()

	// 5. Initialize service and handler
	counterService := service.NewCounterService(counterRepo, db, logger)
	counterHandler := handler.NewCounterHandler(counterService)

	// 6. Setup router
	router := handler.SetupRouter(cfg, logger, counterHandler)

	// 7. Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 8. Start server with graceful shutdown
	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// 9. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited gracefully")
}
