package activity

import "kycadmin/internal/models"

// IActivityLogger records operator actions and searches them back.
type IActivityLogger interface {
	Send(activity models.Activity) error
	Search(searchCriteria map[string][]string) ([]models.ActivityEntry, error)
	Close() error
}
