package cmd

import (
	"fmt"

	"change-detector/core/config"
	"change-detector/core/database"
	"change-detector/core/logger"
	"change-detector/core/notify"
	"change-detector/core/storage"
	"change-detector/feature/etl"
	"change-detector/feature/vertex"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app bundles the dependencies shared by the commands.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	store  storage.Client
	db     *gorm.DB
}

// newApp loads the configuration, the logger and the storage client.
// The database is connected separately because not every command needs it.
func newApp() (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &app{cfg: cfg, logger: logg, store: store}, nil
}

func (a *app) connect() error {
	db, err := database.Connect(a.cfg.Database)
	if err != nil {
		return fmt.Errorf("database connection required: %w", err)
	}
	a.db = db
	return nil
}

// vertexDeps builds the ETL runner and the configured notifier.
func (a *app) vertexDeps() (vertex.Extractor, notify.Notifier, error) {
	notifier, err := notify.New(a.cfg.Notify, a.store, a.cfg.Storage.Bucket, a.logger)
	if err != nil {
		return nil, nil, err
	}
	return etl.NewRunner(a.cfg.ETL, a.logger), notifier, nil
}

// vertexService wires the ETL runner and the configured notifier into a vertex service.
func (a *app) vertexService() (*vertex.Service, error) {
	extractor, notifier, err := a.vertexDeps()
	if err != nil {
		return nil, err
	}
	return vertex.NewService(a.store, a.cfg.Storage.Bucket, a.logger, a.db, a.cfg.Vertex, extractor, notifier), nil
}

func (a *app) close() {
	_ = a.logger.Sync()
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
