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

	"go.uber.org/zap"

	"railshift/cache"
	"railshift/config"
	"railshift/db"
	"railshift/db/mongo"
	"railshift/db/postgres"
	"railshift/handlers"
	"railshift/logging"
	"railshift/models"
	"railshift/repository"
	"railshift/routes"
	"railshift/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, conn, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if conn != nil {
		defer func() {
			if err := conn.Disconnect(); err != nil {
				logger.Warn("disconnect failed", zap.Error(err))
			}
		}()
	}

	if cfg.SeedFile != "" {
		data, err := db.LoadSeed(cfg.SeedFile)
		if err != nil {
			return err
		}
		if err := db.Seed(ctx, repos, data, logger); err != nil {
			return err
		}
	}

	deps := handlers.Deps{
		Repos:           repos,
		LocomotiveCache: cache.New[models.Page[models.Locomotive]](cfg.LocomotiveCacheTTL),
		Logger:          logger,
	}
	switch cfg.StorageType {
	case "r2":
		r2, err := storage.NewR2Store(ctx, storage.R2Config{
			Bucket:          cfg.R2Bucket,
			AccountID:       cfg.R2AccountID,
			PublicURL:       cfg.R2PublicURL,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
		})
		if err != nil {
			return err
		}
		deps.Documents = r2
	default:
		local, err := storage.NewLocalStore(cfg.DocumentDir, cfg.APIBaseURL)
		if err != nil {
			return err
		}
		deps.Documents = local
		deps.LocalDocuments = local
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewRouter(handlers.NewAPI(deps), logger, cfg.APIKeyHash),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running",
			zap.String("port", cfg.Port),
			zap.String("db_type", cfg.DBType),
			zap.String("storage_type", cfg.StorageType))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openRepositories connects the configured backend. The returned connection
// is nil for the in-memory backend.
func openRepositories(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*repository.Repositories, db.DB, error) {
	switch db.DBType(cfg.DBType) {
	case db.Postgres:
		if err := db.RunMigrations(cfg.PostgresURL, cfg.MigrationsPath); err != nil {
			return nil, nil, err
		}
		pg := postgres.NewPostgresDB(cfg.PostgresURL, postgres.Pool{
			MaxOpenConns:    cfg.PostgresMaxOpenConns,
			MaxIdleConns:    cfg.PostgresMaxIdleConns,
			ConnMaxLifetime: cfg.PostgresConnMaxLifetime,
		}, cfg.DBConnectTimeout)
		if err := pg.Connect(ctx); err != nil {
			return nil, nil, err
		}
		return repository.NewPostgresRepositories(pg.Conn), pg, nil

	case db.Mongo:
		mg := mongo.NewMongoDB(cfg.MongoURL, cfg.MongoDatabase, cfg.DBConnectTimeout)
		if err := mg.Connect(ctx); err != nil {
			return nil, nil, err
		}
		return repository.NewMongoRepositories(mg.DB()), mg, nil

	case db.Memory:
		logger.Warn("using in-memory storage, data is lost on restart")
		return repository.NewMemoryRepositories(), nil, nil
	}
	return nil, nil, fmt.Errorf("DB_TYPE %q not supported", cfg.DBType)
}
