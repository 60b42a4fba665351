package storage

import (
	"context"
	"io"
)

// IStorage is the subset of an S3-compatible object store used for
// document uploads.
type IStorage interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	PutObject(ctx context.Context, bucketName, objectPath string, reader io.Reader, size int64) error
}
