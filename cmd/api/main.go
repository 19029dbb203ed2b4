package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockwatch/internal/catalog"
	"stockwatch/internal/clock"
	"stockwatch/internal/config"
	"stockwatch/internal/database"
	"stockwatch/internal/handler"
	"stockwatch/internal/metrics"
	"stockwatch/internal/notification"
	"stockwatch/internal/repository"
	"stockwatch/internal/router"
	"stockwatch/internal/service"
	"stockwatch/internal/strategy"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// stores holds the repositories for the configured database driver.
// orderRepo is nil for sqlite.
type stores struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	close       func()
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("db_driver", cfg.Database.Driver).Msg("starting stockwatch API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := openStores(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer st.close()

	if cfg.Catalog.SeedPath != "" {
		if err := seedCatalog(ctx, cfg, st.productRepo, logger); err != nil {
			return err
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	lifecycleMetrics, err := metrics.NewLifecycle(registry)
	if err != nil {
		return err
	}

	clk := clock.New()
	notifier, closeNotifier, err := newNotifier(cfg.Notifier, clk, logger)
	if err != nil {
		return err
	}
	defer closeNotifier()
	notifier = notification.NewInstrumented(notifier, lifecycleMetrics)

	strategies := strategy.NewFactory(st.productRepo, notifier, clk, lifecycleMetrics, logger)
	productService := service.NewProductService(st.productRepo, strategies, logger)

	var orderHandler *handler.OrderHandler
	if st.orderRepo != nil {
		orderService := service.NewOrderService(st.orderRepo, st.productRepo, productService, clk, logger)
		orderHandler = handler.NewOrderHandler(orderService, logger)
	} else {
		logger.Info().Msg("order endpoints disabled for this database driver")
	}
	productHandler := handler.NewProductHandler(productService, logger)

	mux := router.New(productHandler, orderHandler, registry, cfg.Auth.APIKey, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

func openStores(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*stores, error) {
	if cfg.Driver == "sqlite" {
		db, err := database.OpenSQLite(cfg.SQLitePath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return &stores{
			productRepo: repository.NewGormProductRepository(db, logger),
			close: func() {
				if sqlDB, err := db.DB(); err == nil {
					sqlDB.Close()
				}
			},
		}, nil
	}

	pool, err := database.NewPool(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &stores{
		productRepo: repository.NewProductRepository(pool, logger),
		orderRepo:   repository.NewOrderRepository(pool, logger),
		close:       pool.Close,
	}, nil
}

func seedCatalog(ctx context.Context, cfg *config.Config, store catalog.Store, logger zerolog.Logger) error {
	fileLoader := catalog.NewFileLoader(logger)

	var s3Loader catalog.Loader
	if cfg.S3.Enabled {
		l, err := catalog.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			s3Loader = l
		}
	}

	loader := catalog.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, cfg.S3.Enabled, logger)
	if _, err := catalog.NewSeeder(loader, store, logger).Seed(ctx, cfg.Catalog.SeedPath); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	return nil
}

func newNotifier(cfg config.NotifierConfig, clk clock.Clock, logger zerolog.Logger) (notification.Notifier, func(), error) {
	switch cfg.Sink {
	case "log":
		return notification.NewLogNotifier(logger), func() {}, nil
	case "kafka":
		n := notification.NewKafkaNotifier(notification.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic), clk, logger)
		logger.Info().
			Strs("brokers", cfg.KafkaBrokers).
			Str("topic", cfg.KafkaTopic).
			Msg("publishing notifications to kafka")
		return n, func() {
			if err := n.Close(); err != nil {
				logger.Error().Err(err).Msg("failed to close kafka writer")
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown notifier sink %q", cfg.Sink)
	}
}
