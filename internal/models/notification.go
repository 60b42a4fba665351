package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a fire-and-forget message shown to the operator.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
}

func NewNotification(kind NotificationKind, message string) Notification {
	return Notification{
		ID:        uuid.New(),
		Kind:      kind,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}
