package business

import (
	"context"
	"sync"

	"kycadmin/internal/models"

	"go.uber.org/zap"
)

type Lister interface {
	ListBusinessActivities(ctx context.Context) ([]models.BusinessActivity, error)
}

// Catalog owns the business activity list shown by the section. The
// manager only asks it to reload.
type Catalog struct {
	lister Lister

	mu         sync.RWMutex
	activities []models.BusinessActivity
	loading    bool
}

func NewCatalog(lister Lister) *Catalog {
	return &Catalog{lister: lister}
}

// Refresh reloads the list. A failed load keeps the previous list.
func (c *Catalog) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	activities, err := c.lister.ListBusinessActivities(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		zap.L().Error("Failed to load business activities", zap.Error(err))
		return
	}
	c.activities = activities
}

func (c *Catalog) Activities() []models.BusinessActivity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.BusinessActivity, len(c.activities))
	copy(out, c.activities)
	return out
}

func (c *Catalog) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Find returns the activity with the given id from the last loaded list.
func (c *Catalog) Find(id models.ActivityID) (models.BusinessActivity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, a := range c.activities {
		if a.ID == id {
			return a, true
		}
	}
	return models.BusinessActivity{}, false
}
