package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-ScoringService/internal/api/handlers/health"
	"github.com/m04kA/SMC-ScoringService/internal/api/handlers/method"
	"github.com/m04kA/SMC-ScoringService/internal/api/middleware"
	"github.com/m04kA/SMC-ScoringService/internal/config"
	"github.com/m04kA/SMC-ScoringService/internal/infra/storage/kvstore"
	"github.com/m04kA/SMC-ScoringService/internal/infra/storage/memstore"
	"github.com/m04kA/SMC-ScoringService/internal/service/dispatch"
	"github.com/m04kA/SMC-ScoringService/internal/service/interests"
	"github.com/m04kA/SMC-ScoringService/internal/service/scoring"
	"github.com/m04kA/SMC-ScoringService/internal/worker"
	"github.com/m04kA/SMC-ScoringService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ScoringService/pkg/logger"
	"github.com/m04kA/SMC-ScoringService/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ScoringService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаем key-value хранилище: PostgreSQL либо память (без БД)
	queryTimeout := time.Duration(cfg.Store.QueryTimeout) * time.Millisecond

	var scoreStore scoring.Store
	var interestsStore interests.Store
	var purger worker.ExpiredPurger

	switch cfg.Store.Type {
	case config.StoreTypePostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		// Проверяем соединение: хранилище best-effort, но старт без БД
		// почти наверняка ошибка конфигурации
		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		var executor kvstore.DBExecutor = db
		if cfg.Metrics.Enabled {
			executor = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
			log.Info("Database metrics collection started")
		}

		repo := kvstore.NewRepository(executor, queryTimeout)
		scoreStore, interestsStore, purger = repo, repo, repo

	case config.StoreTypeMemory:
		mem := memstore.New()
		scoreStore, interestsStore, purger = mem, mem, mem
		log.Info("Using in-memory store (no persistence)")
	}

	// Инициализируем сервисы
	weights := scoring.Weights{
		Phone:    cfg.Scoring.PhoneWeight,
		Email:    cfg.Scoring.EmailWeight,
		Birthday: cfg.Scoring.BirthdayWeight,
		Name:     cfg.Scoring.NameWeight,
	}
	scoringSvc := scoring.NewService(
		scoreStore,
		log,
		weights,
		time.Duration(cfg.Scoring.CacheTTL)*time.Second,
		metricsCollector,
	)
	log.Info("Scoring service initialized")

	interestsSvc := interests.NewService(interestsStore, log)
	log.Info("Interests service initialized")

	dispatcher := dispatch.NewService(cfg.Auth, cfg.Scoring.AdminScore, scoringSvc, interestsSvc, log)
	log.Info("Dispatcher initialized (admin login: %s)", cfg.Auth.AdminLogin)

	// Запускаем фоновую очистку истекших записей хранилища
	cleaner := worker.NewCleaner(purger, log, time.Duration(cfg.Worker.CleanupInterval)*time.Second)
	if err := cleaner.Start(); err != nil {
		log.Fatal("Failed to start store cleaner: %v", err)
	}
	log.Info("Store cleaner started")

	// Инициализируем handlers
	healthHandler := health.NewHandler()
	methodHandler := method.NewHandler(dispatcher, log, metricsCollector)

	// Настраиваем роутер
	r := mux.NewRouter()

	r.Use(middleware.RequestIDMiddleware)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Публичные endpoints
	r.HandleFunc("/health", healthHandler.Handle).Methods(http.MethodGet)
	r.HandleFunc("/method", methodHandler.Handle).Methods(http.MethodPost)

	// Metrics endpoint (публичный)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Запускаем HTTP сервер
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновую очистку перед сервером
	cleaner.Stop()

	// Останавливаем сбор метрик
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	// Graceful shutdown HTTP сервера
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
