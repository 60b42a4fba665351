package notifier

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"kycadmin/internal/models"

	"go.uber.org/zap"
)

// FilesystemNotifier writes one JSON record per notification.
type FilesystemNotifier struct {
	directory string
}

func NewFilesystemNotifier(config models.FilesystemNotifierConfiguration) (*FilesystemNotifier, error) {
	if err := os.MkdirAll(config.Directory, 0750); err != nil {
		return nil, fmt.Errorf("failed to create notification directory: %w", err)
	}
	return &FilesystemNotifier{directory: config.Directory}, nil
}

func (f *FilesystemNotifier) Notify(notification models.Notification) error {
	content, err := json.MarshalIndent(notification, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	filename := fmt.Sprintf("%d-%s.json", notification.Timestamp.UnixNano(), notification.ID)
	path := filepath.Join(f.directory, filename)

	if err = os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write notification file: %w", err)
	}

	zap.L().Debug("Notification written to filesystem",
		zap.String("path", path),
		zap.String("kind", string(notification.Kind)),
	)

	return nil
}
