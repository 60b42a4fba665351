package core

import (
	"kycadmin/internal/configuration"
	"kycadmin/internal/kycapi"
	"kycadmin/internal/models"
	"kycadmin/internal/storage"
	"kycadmin/internal/upload"

	"go.uber.org/zap"
)

// NewUploader picks where document uploads are sent.
func NewUploader(config models.Configuration, client *kycapi.Client) upload.Uploader {
	if config.Upload.Target != configuration.UploadTargetStorage {
		return client
	}

	switch config.Storage.Type {
	case configuration.ProviderMinio:
		store, err := storage.NewS3Storage(config.Storage.Minio)
		if err != nil {
			zap.L().Fatal("Failed to initialize storage", zap.Error(err))
		}
		zap.L().Info("Uploads go to object storage", zap.String("endpoint", store.Endpoint))
		return storage.Uploader{Storage: store}
	default:
		zap.L().Fatal("Unsupported storage provider", zap.String("provider", config.Storage.Type))
		return nil
	}
}
