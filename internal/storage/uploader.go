package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"kycadmin/internal/models"

	"go.uber.org/zap"
)

var (
	ErrBucketNotFound    = errors.New("bucket does not exist")
	ErrInvalidObjectPath = errors.New("invalid object path segment")
)

// ObjectPath is where an uploaded document lands: <user_type>/<userid>/<name>.
// Segments that would move the key out of that layout are rejected.
func ObjectPath(userType, userID, fileName string) (string, error) {
	for _, segment := range []string{userType, userID} {
		if !validSegment(segment) {
			return "", fmt.Errorf("%w: %q", ErrInvalidObjectPath, segment)
		}
	}
	name := path.Base(fileName)
	if !validSegment(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidObjectPath, fileName)
	}
	return userType + "/" + userID + "/" + name, nil
}

func validSegment(segment string) bool {
	return segment != "" && segment != "." && segment != ".." && !strings.ContainsAny(segment, `/\`)
}

// Uploader writes upload requests straight to object storage instead of
// the REST API.
type Uploader struct {
	Storage IStorage
}

func (u Uploader) UploadFiles(ctx context.Context, request models.UploadRequest) error {
	objectPaths := make([]string, len(request.Files))
	for i, file := range request.Files {
		objectPath, err := ObjectPath(request.UserType, request.UserID, file.Name)
		if err != nil {
			return err
		}
		objectPaths[i] = objectPath
	}

	exists, err := u.Storage.BucketExists(ctx, request.BucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", request.BucketName, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrBucketNotFound, request.BucketName)
	}

	for i, file := range request.Files {
		objectPath := objectPaths[i]
		if err = u.put(ctx, request.BucketName, objectPath, file); err != nil {
			return err
		}
		zap.L().Debug("Stored document",
			zap.String("bucket_name", request.BucketName),
			zap.String("path", objectPath),
			zap.Int64("size", file.Size))
	}

	return nil
}

func (u Uploader) put(ctx context.Context, bucketName, objectPath string, file models.FileHandle) error {
	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", file.Name, err)
	}
	defer func() { _ = reader.Close() }()

	if err = u.Storage.PutObject(ctx, bucketName, objectPath, reader, file.Size); err != nil {
		return fmt.Errorf("failed to store %s: %w", objectPath, err)
	}
	return nil
}
