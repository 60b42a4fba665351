package upload

import (
	"context"
	"errors"
	"strings"

	"kycadmin/internal/activity"
	"kycadmin/internal/kycapi"
	"kycadmin/internal/models"
	"kycadmin/internal/notifier"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	MessageNoFiles       = "Please select files to upload"
	MessageMissingFields = "Please fill in all required fields"
	MessageUploaded      = "Files uploaded successfully"
	MessageUploadFailed  = "Failed to upload files"
)

var (
	ErrNoFiles        = errors.New("no files selected")
	ErrMissingFields  = errors.New("required upload fields are missing")
	ErrUploadInFlight = errors.New("an upload is already in progress")
)

var validate = validator.New()

// Uploader delivers one upload request to its destination.
type Uploader interface {
	UploadFiles(ctx context.Context, request models.UploadRequest) error
}

type Submitter struct {
	Uploader       Uploader
	ActivityLogger activity.IActivityLogger
}

// Submit sends the draft as one upload. Local rejections issue no request.
// On success the draft is cleared; on failure it is kept as is.
func (s Submitter) Submit(ctx context.Context, notify notifier.INotifier, draft *Draft) error {
	request, err := draft.begin()
	switch {
	case errors.Is(err, ErrNoFiles):
		notifier.Error(notify, MessageNoFiles)
		return err
	case errors.Is(err, ErrMissingFields):
		notifier.Error(notify, MessageMissingFields)
		return err
	case err != nil:
		return err
	}
	defer draft.finish()

	if err = s.Uploader.UploadFiles(ctx, request); err != nil {
		zap.L().Error("Failed to upload files",
			zap.String("user_type", request.UserType),
			zap.String("user_id", request.UserID),
			zap.String("bucket_name", request.BucketName),
			zap.Int("files", len(request.Files)),
			zap.Int("status", kycapi.StatusCode(err)),
			zap.Error(err))
		notifier.Error(notify, MessageUploadFailed)
		return err
	}

	notifier.Success(notify, MessageUploaded)
	s.record(request)
	draft.Clear()
	return nil
}

func checkRequest(request models.UploadRequest) error {
	if len(request.Files) == 0 {
		return ErrNoFiles
	}
	trimmed := request
	trimmed.UserType = strings.TrimSpace(request.UserType)
	trimmed.UserID = strings.TrimSpace(request.UserID)
	trimmed.BucketName = strings.TrimSpace(request.BucketName)
	if err := validate.Struct(trimmed); err != nil {
		return ErrMissingFields
	}
	return nil
}

func (s Submitter) record(request models.UploadRequest) {
	if s.ActivityLogger == nil {
		return
	}

	names := make([]string, len(request.Files))
	for i, f := range request.Files {
		names[i] = f.Name
	}

	err := s.ActivityLogger.Send(models.Activity{
		Message: activity.FilesUploaded,
		Object:  map[string]any{"files": names, "count": len(names)},
		Filter: models.NewLogFilter(map[string]string{
			"action":      activity.ActionUpload,
			"object_type": activity.ObjectDocument,
			"user_type":   request.UserType,
			"user_id":     request.UserID,
			"bucket_name": request.BucketName,
		}),
	})
	if err != nil {
		zap.L().Warn("Failed to record activity", zap.String("message", activity.FilesUploaded), zap.Error(err))
	}
}
