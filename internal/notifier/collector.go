package notifier

import (
	"sync"

	"kycadmin/internal/models"
)

// Collector keeps the notifications raised while serving one request so the
// page can render them.
type Collector struct {
	mu            sync.Mutex
	notifications []models.Notification
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Notify(notification models.Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = append(c.notifications, notification)
	return nil
}

func (c *Collector) Notifications() []models.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Notification, len(c.notifications))
	copy(out, c.notifications)
	return out
}

// Count returns how many notifications of the given kind were raised.
func (c *Collector) Count(kind models.NotificationKind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, n := range c.notifications {
		if n.Kind == kind {
			count++
		}
	}
	return count
}
