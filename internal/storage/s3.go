package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"kycadmin/internal/models"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Storage implements IStorage for MinIO and other S3-compatible providers.
type S3Storage struct {
	Endpoint string
	storage  *minio.Client
}

func NewS3Storage(config *models.MinioStorageConfiguration) (*S3Storage, error) {
	minioClient, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseTLS,
		Region: config.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 storage client: %w", err)
	}

	return &S3Storage{Endpoint: config.Endpoint, storage: minioClient}, nil
}

func (s *S3Storage) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return s.storage.BucketExists(ctx, bucketName)
}

func (s *S3Storage) PutObject(
	ctx context.Context,
	bucketName string,
	objectPath string,
	reader io.Reader,
	size int64,
) error {
	contentType := mime.TypeByExtension(filepath.Ext(objectPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.storage.PutObject(ctx, bucketName, objectPath, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}
