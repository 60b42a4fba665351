package core

import (
	"kycadmin/internal/configuration"
	"kycadmin/internal/messaging"
	"kycadmin/internal/models"

	"go.uber.org/zap"
)

// topic pairs the two ends of one in-process queue. Both ends wrap the same
// GoChannel, so closing the publisher also releases the subscriber.
type topic struct {
	name       string
	publisher  messaging.IPublisher
	subscriber messaging.ISubscriber
}

type EventsManager struct {
	topics map[string]topic
}

func NewEventsManager(config models.EventsConfiguration) *EventsManager {
	em := &EventsManager{topics: make(map[string]topic, len(config.Queues))}

	if config.Type != configuration.ProviderMemory {
		zap.L().Warn("Unsupported events provider, notifications stay in-process",
			zap.String("provider", config.Type))
		return em
	}

	for key, queue := range config.Queues {
		ch := messaging.NewMemoryChannel()
		em.topics[key] = topic{
			name:       queue.Name,
			publisher:  messaging.NewMemoryPublisher(ch, queue.Name),
			subscriber: messaging.NewMemorySubscriber(ch, queue.Name),
		}
		zap.L().Debug("Initialized topic", zap.String("topic_key", key), zap.String("topic_name", queue.Name))
	}

	return em
}

func (em *EventsManager) GetPublisher(key string) messaging.IPublisher {
	t, ok := em.topics[key]
	if !ok {
		zap.L().Warn("Publisher not found", zap.String("topic_key", key))
		return nil
	}
	return t.publisher
}

func (em *EventsManager) GetSubscriber(key string) messaging.ISubscriber {
	t, ok := em.topics[key]
	if !ok {
		zap.L().Warn("Subscriber not found", zap.String("topic_key", key))
		return nil
	}
	return t.subscriber
}

func (em *EventsManager) Close() {
	for key, t := range em.topics {
		if err := t.publisher.Close(); err != nil {
			zap.L().Error("Failed to close topic",
				zap.String("topic_key", key),
				zap.String("topic_name", t.name),
				zap.Error(err))
		}
	}
}
