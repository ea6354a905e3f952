package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"news_radar/internal/api"
	"news_radar/internal/config"
	"news_radar/internal/dispatch"
	"news_radar/internal/publisher"
	"news_radar/internal/scheduler"
	"news_radar/internal/service"
	"news_radar/internal/source/newsapi"
	"news_radar/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Publisher is optional: without a broker URL new-article events are
	// simply not emitted.
	var pub service.Publisher
	if cfg.RabbitMQ.URL != "" {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		pub = rabbitMQ
	}

	configStore := postgres.NewSearchConfigStore(db)
	articleStore := postgres.NewArticleStore(db)
	userStore := postgres.NewUserStore(db)
	txManager := postgres.NewTransactionManager(db)

	provider := newsapi.New(newsapi.Config{
		BaseURL:        cfg.NewsAPI.BaseURL,
		PageSize:       cfg.NewsAPI.PageSize,
		Timeout:        cfg.NewsAPI.Timeout,
		MaxAttempts:    cfg.NewsAPI.Retry.MaxAttempts,
		InitialBackoff: cfg.NewsAPI.Retry.InitialBackoff,
		MaxBackoff:     cfg.NewsAPI.Retry.MaxBackoff,
	}, logger)

	ingestService := service.NewIngestService(
		configStore,
		articleStore,
		provider,
		pub,
		cfg.NewsAPI.APIKey,
		logger,
	)

	pool := dispatch.NewPool(cfg.Scheduler.Workers, cfg.Scheduler.QueueSize, logger)

	fanoutService := service.NewFanoutService(configStore, ingestService, pool, logger)
	retentionService := service.NewRetentionService(articleStore, cfg.Scheduler.RetentionDays, logger)

	sched := scheduler.NewScheduler(
		fanoutService,
		retentionService,
		cfg.Scheduler.FanoutInterval,
		cfg.Scheduler.RetentionInterval,
		logger,
	)

	server := api.NewServer(
		configStore,
		articleStore,
		userStore,
		txManager,
		pool,
		ingestService,
		logger,
	)

	httpServer := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: server.Router(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
		_ = httpServer.Shutdown(context.Background())
	}()

	go pool.Run(ctx)

	go func() {
		if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("scheduler error", "error", err)
		}
	}()

	logger.Info("starting server",
		"addr", cfg.HTTP.Addr,
		"fanout_interval", cfg.Scheduler.FanoutInterval,
		"retention_days", cfg.Scheduler.RetentionDays,
	)

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
