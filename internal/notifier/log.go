package notifier

import (
	"kycadmin/internal/models"

	"go.uber.org/zap"
)

type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (l *LogNotifier) Notify(notification models.Notification) error {
	fields := []zap.Field{
		zap.String("id", notification.ID.String()),
		zap.String("kind", string(notification.Kind)),
		zap.String("message", notification.Message),
	}
	if notification.Kind == models.NotificationError {
		zap.L().Warn("Operator notification", fields...)
	} else {
		zap.L().Info("Operator notification", fields...)
	}
	return nil
}
