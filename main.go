package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tokobaju/internal/config"
	"tokobaju/internal/database"
	"tokobaju/internal/handlers"
	"tokobaju/internal/logger"
	"tokobaju/internal/server"
	"tokobaju/internal/services"
	"tokobaju/pkg/rabbitmq"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const auditQueue = "catalog_audit"

func main() {
	root := &cobra.Command{
		Use:           "tokobaju",
		Short:         "Clothing store catalog API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API",
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or upgrade the schema of the configured store, then exit",
			RunE:  runMigrate,
		},
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger.
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}
	if cfg.JWTSecret == config.DevJWTSecret {
		log.Warn("JWT_SECRET not set, using the development secret")
	}
	return cfg, log, nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := cmd.Context()
	store, err := database.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	if err := store.Migrate(ctx); err != nil {
		return err
	}
	log.Info("migration complete", zap.String("driver", cfg.DBDriver))
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := cmd.Context()

	// --- Store ---
	store, err := database.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Error("error closing store", zap.Error(err))
		}
	}()
	if err := store.Migrate(ctx); err != nil {
		return err
	}

	// --- Catalog events (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQURL,
			Exchange: services.CatalogExchange,
		}, log)
		if err != nil {
			return err
		}
		defer mqClient.Close()
		publisher = mqClient

		err = mqClient.Consume(services.CatalogExchange, auditQueue, "clothes.#", handlers.NewCatalogAuditHandler(log))
		if err != nil {
			log.Error("failed to start catalog audit consumer", zap.Error(err))
		}
	} else {
		log.Info("RABBITMQ_URL not set, catalog events disabled")
	}

	srv := server.New(server.Options{
		Config:    cfg,
		Users:     store.Users,
		Clothes:   store.Clothes,
		Publisher: publisher,
		Logger:    log,
	})

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	listenErr := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", cfg.AppPort))
		listenErr <- srv.App.Listen(cfg.AppPort)
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	log.Info("shutting down server")
	if err := srv.App.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("error during fiber shutdown", zap.Error(err))
	}
	log.Info("server gracefully stopped")
	return nil
}
