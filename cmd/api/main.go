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

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	statscache "github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/adapter/cache"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/adapter/http/router"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/adapter/repository/postgres"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/infrastructure/cache"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/infrastructure/config"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/infrastructure/database"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/infrastructure/logger"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/infrastructure/metrics"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/infrastructure/scheduler"
	"github.com/EdsonAvelino/StrikeTecAPI-sub001/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	gin.SetMode(cfg.Server.Mode)

	db, err := database.NewPostgresDB(&cfg.Database, &cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()
	log.Info("Connected to database")

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("Database migrations completed")

	// Stats are served uncached when Redis is down.
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Warn("Failed to connect to Redis, continuing without stats cache", zap.Error(err))
		redisClient = nil
	} else {
		defer func() { _ = redisClient.Close() }()
		log.Info("Connected to Redis")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	battleRepo := postgres.NewBattleRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	comboRepo := postgres.NewComboRepository(db)
	statsCache := statscache.NewStatsCache(redisClient, cfg.Stats.CacheTTL)

	battleUC := usecase.NewBattleUsecase(battleRepo, sessionRepo, comboRepo, statsCache, m, log)
	statsUC := usecase.NewStatsUsecase(battleRepo, sessionRepo, comboRepo, statsCache, m, log)

	if cfg.Scheduler.Enabled {
		sched, err := scheduler.New(&cfg.Scheduler, battleUC, log)
		if err != nil {
			return fmt.Errorf("failed to create scheduler: %w", err)
		}
		sched.Start()
		defer func() {
			if err := sched.Shutdown(); err != nil {
				log.Error("Scheduler shutdown failed", zap.Error(err))
			}
		}()
		log.Info("Pending battle finalizer started", zap.Duration("interval", cfg.Scheduler.FinalizeInterval))
	}

	r := router.Setup(router.Deps{
		DB:       db,
		Redis:    redisClient,
		Gatherer: reg,
		BattleUC: battleUC,
		StatsUC:  statsUC,
		Logger:   log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}
