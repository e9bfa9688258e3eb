package main

import (
	"context"
	"log/slog"
	"os"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/catalog-ingest/config"
	"github.com/shashiranjanraj/catalog-ingest/pkg/database"
	"github.com/shashiranjanraj/catalog-ingest/pkg/logger"
	"github.com/shashiranjanraj/catalog-ingest/pkg/storage"
)

// bootLogger loads config and installs the base logger, fanning out to
// MongoDB when LOG_MONGO_URI is set. The returned func flushes the sink.
func bootLogger() (func(), error) {
	if err := config.Load(); err != nil {
		return nil, err
	}

	uri := config.LogMongoURI()
	if uri == "" {
		logger.Setup(config.AppEnv(), os.Stdout)
		return func() {}, nil
	}

	mh, err := logger.NewMongoHandler(uri, config.LogMongoDB(), config.LogMongoCollection(), slog.LevelInfo)
	if err != nil {
		logger.Setup(config.AppEnv(), os.Stdout)
		logger.Warn("mongo log sink disabled", "error", err)
		return func() {}, nil
	}
	logger.Setup(config.AppEnv(), os.Stdout, mh)
	return mh.Close, nil
}

// openDB opens the catalog configured by DB_DRIVER / DATABASE_DSN.
func openDB() (*gorm.DB, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	return database.Open(database.Options{
		Driver:       config.DatabaseDriver(),
		DSN:          config.DatabaseDSN(),
		MaxOpenConns: config.DatabaseMaxOpenConns(),
	})
}

// openDisk opens the archive disk selected by STORAGE_DISK.
func openDisk(ctx context.Context) (storage.Disk, error) {
	return storage.New(ctx, storage.Options{
		Driver:    config.StorageDefault(),
		LocalRoot: config.StorageLocalRoot(),
		S3: storage.S3Options{
			Bucket:   config.StorageS3Bucket(),
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
		},
	})
}
