package business

import (
	"context"
	"errors"

	"kycadmin/internal/activity"
	"kycadmin/internal/kycapi"
	"kycadmin/internal/models"
	"kycadmin/internal/notifier"

	"go.uber.org/zap"
)

const (
	MessageCreated      = "Business activity created successfully"
	MessageUpdated      = "Business activity updated successfully"
	MessageDeleted      = "Business activity deleted successfully"
	MessageSaveFailed   = "Failed to save business activity"
	MessageDeleteFailed = "Failed to delete business activity"

	ConfirmDeletePrompt = "Are you sure you want to delete this business activity?"
)

var ErrConfirmationDeclined = errors.New("delete was not confirmed")

type API interface {
	CreateBusinessActivity(ctx context.Context, body models.BusinessActivityBody) error
	UpdateBusinessActivity(ctx context.Context, id models.ActivityID, body models.BusinessActivityBody) error
	DeleteBusinessActivity(ctx context.Context, id models.ActivityID) error
}

// Refresher reloads the list owned by the parent view.
type Refresher interface {
	Refresh(ctx context.Context)
}

// Confirmer asks the operator a yes/no question.
type Confirmer func(prompt string) bool

// Manager performs the business activity mutations. Every outcome yields
// exactly one notification and the list is reloaded after successes only.
type Manager struct {
	API            API
	Refresher      Refresher
	ActivityLogger activity.IActivityLogger
}

// Submit sends the form as an update when it carries an ID and as a create
// otherwise. An incomplete form is rejected before any request.
func (m Manager) Submit(ctx context.Context, notify notifier.INotifier, form *Form) error {
	body, err := form.Body()
	if err != nil {
		return err
	}
	if form.IsEdit() {
		return m.update(ctx, notify, form.ID, body)
	}
	return m.create(ctx, notify, body)
}

func (m Manager) create(ctx context.Context, notify notifier.INotifier, body models.BusinessActivityBody) error {
	if err := m.API.CreateBusinessActivity(ctx, body); err != nil {
		zap.L().Error("Failed to create business activity",
			zap.Int("status", kycapi.StatusCode(err)),
			zap.Error(err))
		notifier.Error(notify, MessageSaveFailed)
		return err
	}

	notifier.Success(notify, MessageCreated)
	m.record(activity.BusinessActivityCreated, activity.ActionCreate, "", body)
	m.refresh(ctx)
	return nil
}

func (m Manager) update(
	ctx context.Context,
	notify notifier.INotifier,
	id models.ActivityID,
	body models.BusinessActivityBody,
) error {
	if err := m.API.UpdateBusinessActivity(ctx, id, body); err != nil {
		zap.L().Error("Failed to update business activity",
			zap.String("id", id.String()),
			zap.Int("status", kycapi.StatusCode(err)),
			zap.Error(err))
		notifier.Error(notify, MessageSaveFailed)
		return err
	}

	notifier.Success(notify, MessageUpdated)
	m.record(activity.BusinessActivityUpdated, activity.ActionUpdate, id, body)
	m.refresh(ctx)
	return nil
}

// Delete removes an activity once confirm approves it. A declined
// confirmation issues no request and no notification.
func (m Manager) Delete(ctx context.Context, notify notifier.INotifier, id models.ActivityID, confirm Confirmer) error {
	if confirm == nil || !confirm(ConfirmDeletePrompt) {
		return ErrConfirmationDeclined
	}

	if err := m.API.DeleteBusinessActivity(ctx, id); err != nil {
		zap.L().Error("Failed to delete business activity",
			zap.String("id", id.String()),
			zap.Int("status", kycapi.StatusCode(err)),
			zap.Error(err))
		notifier.Error(notify, MessageDeleteFailed)
		return err
	}

	notifier.Success(notify, MessageDeleted)
	m.record(activity.BusinessActivityDeleted, activity.ActionDelete, id, nil)
	m.refresh(ctx)
	return nil
}

func (m Manager) refresh(ctx context.Context) {
	if m.Refresher != nil {
		m.Refresher.Refresh(ctx)
	}
}

func (m Manager) record(message, action string, id models.ActivityID, object any) {
	if m.ActivityLogger == nil {
		return
	}
	err := m.ActivityLogger.Send(models.Activity{
		Message: message,
		Object:  object,
		Filter: models.NewLogFilter(map[string]string{
			"action":      action,
			"object_type": activity.ObjectBusinessActivity,
			"object_id":   id.String(),
		}),
	})
	if err != nil {
		zap.L().Warn("Failed to record activity", zap.String("message", message), zap.Error(err))
	}
}
