package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// PublishJSON encodes payload as a single JSON message.
func PublishJSON(publisher IPublisher, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.Metadata.Set("content_type", "application/json")
	return publisher.Publish(msg)
}

// DecodeJSON decodes the message payload into out.
func DecodeJSON(msg *message.Message, out any) error {
	if err := json.Unmarshal(msg.Payload, out); err != nil {
		return fmt.Errorf("failed to decode event %s: %w", msg.UUID, err)
	}
	return nil
}
