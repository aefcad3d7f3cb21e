package storage_fx

import (
	"context"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"moodlog/internal/config"
	"moodlog/internal/storage"
)

var Module = fx.Provide(
	provideObjectStore)

func provideObjectStore(cfg *config.Config, log *zap.Logger) (storage.ObjectStore, error) {
	if strings.EqualFold(cfg.StorageBackend, "s3") {
		log.Info("using s3 object store", zap.String("bucket", cfg.S3Bucket), zap.String("region", cfg.S3Region))
		return storage.NewS3Store(context.Background(), cfg.S3Bucket, cfg.S3Region, cfg.S3PublicBaseURL)
	}
	log.Info("using disk object store", zap.String("dir", cfg.UploadDir))
	return storage.NewDiskStore(cfg.UploadDir, cfg.PublicBaseURL)
}
