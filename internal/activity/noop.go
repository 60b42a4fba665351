package activity

import "kycadmin/internal/models"

// NoopLogger discards activity. It is used when the activity log is disabled.
type NoopLogger struct{}

func (NoopLogger) Send(_ models.Activity) error { return nil }

func (NoopLogger) Search(_ map[string][]string) ([]models.ActivityEntry, error) {
	return []models.ActivityEntry{}, nil
}

func (NoopLogger) Close() error { return nil }
