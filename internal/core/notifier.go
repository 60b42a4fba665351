package core

import (
	"kycadmin/internal/activity"
	"kycadmin/internal/configuration"
	"kycadmin/internal/models"
	"kycadmin/internal/notifier"

	"go.uber.org/zap"
)

// NewNotifier builds the sink that receives every notification after it
// went through the event bus.
func NewNotifier(config models.NotifierConfiguration) notifier.INotifier {
	switch config.Type {
	case configuration.ProviderFilesystem:
		sink, err := notifier.NewFilesystemNotifier(*config.Filesystem)
		if err != nil {
			zap.L().Fatal("Failed to initialize notifier", zap.Error(err))
		}
		return sink
	default:
		return notifier.NewLogNotifier()
	}
}

func NewActivityLogger(config models.ActivityConfiguration) activity.IActivityLogger {
	switch config.Type {
	case configuration.ProviderFilesystem:
		client, err := activity.NewFilesystemClient(config)
		if err != nil {
			zap.L().Fatal("Failed to initialize activity logger", zap.Error(err))
		}
		return client
	default:
		return activity.NoopLogger{}
	}
}

// NewNotificationBus returns the notifier services publish to. Without a
// notifications topic, notifications go straight to sink.
func NewNotificationBus(eventsManager *EventsManager, sink notifier.INotifier) notifier.INotifier {
	publisher := eventsManager.GetPublisher(configuration.EventsNotifications)
	if publisher == nil {
		return sink
	}
	return notifier.NewEventNotifier(publisher)
}
