package notifier

import (
	"kycadmin/internal/messaging"
	"kycadmin/internal/models"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// EventNotifier publishes notifications on the event bus; a dispatcher
// delivers them to the configured sink.
type EventNotifier struct {
	publisher messaging.IPublisher
}

func NewEventNotifier(publisher messaging.IPublisher) *EventNotifier {
	return &EventNotifier{publisher: publisher}
}

func (e *EventNotifier) Notify(notification models.Notification) error {
	return messaging.PublishJSON(e.publisher, notification)
}

// Dispatch delivers every notification received on messages to sink until
// the channel is closed. Undecodable messages are dropped.
func Dispatch(messages <-chan *message.Message, sink INotifier) {
	for msg := range messages {
		var notification models.Notification
		if err := messaging.DecodeJSON(msg, &notification); err != nil {
			zap.L().Error("Dropping notification event", zap.Error(err))
			msg.Ack()
			continue
		}

		if err := sink.Notify(notification); err != nil {
			zap.L().Error("Failed to deliver notification",
				zap.String("id", notification.ID.String()),
				zap.Error(err))
		}
		msg.Ack()
	}
}
