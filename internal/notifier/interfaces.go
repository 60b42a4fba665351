package notifier

import (
	"kycadmin/internal/models"

	"go.uber.org/zap"
)

// INotifier delivers operator-visible notifications.
type INotifier interface {
	Notify(notification models.Notification) error
}

// Success sends a success notification. Delivery errors are logged and
// never surfaced to the caller.
func Success(n INotifier, message string) {
	send(n, models.NewNotification(models.NotificationSuccess, message))
}

// Error sends an error notification. Delivery errors are logged and never
// surfaced to the caller.
func Error(n INotifier, message string) {
	send(n, models.NewNotification(models.NotificationError, message))
}

func send(n INotifier, notification models.Notification) {
	if n == nil {
		return
	}
	if err := n.Notify(notification); err != nil {
		zap.L().Warn("Failed to deliver notification",
			zap.String("kind", string(notification.Kind)),
			zap.String("message", notification.Message),
			zap.Error(err))
	}
}
