package notifier

import (
	"errors"

	"kycadmin/internal/models"
)

type multiNotifier []INotifier

// Multi fans a notification out to every non-nil notifier.
func Multi(notifiers ...INotifier) INotifier {
	var m multiNotifier
	for _, n := range notifiers {
		if n != nil {
			m = append(m, n)
		}
	}
	return m
}

func (m multiNotifier) Notify(notification models.Notification) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(notification); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
