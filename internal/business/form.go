package business

import (
	"errors"
	"strings"

	"kycadmin/internal/models"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidForm = errors.New("business activity form is incomplete")

var validate = validator.New()

// Form is the create/edit modal. A non-empty ID means edit.
type Form struct {
	ID     models.ActivityID
	Name   string
	Icon   string
	Errors map[string]string
}

// NewForm returns an empty create form, or one prefilled from activity.
func NewForm(activity *models.BusinessActivity) Form {
	if activity == nil {
		return Form{}
	}
	return Form{ID: activity.ID, Name: activity.Name, Icon: activity.Icon}
}

func (f *Form) IsEdit() bool {
	return f.ID != ""
}

func (f *Form) Title() string {
	if f.IsEdit() {
		return "Edit Business Activity"
	}
	return "Create Business Activity"
}

func (f *Form) SubmitLabel() string {
	if f.IsEdit() {
		return "Update"
	}
	return "Create"
}

// Body validates the trimmed fields and returns the request payload.
// On failure Errors is filled per field and ErrInvalidForm is returned.
func (f *Form) Body() (models.BusinessActivityBody, error) {
	body := models.BusinessActivityBody{
		Name: strings.TrimSpace(f.Name),
		Icon: strings.TrimSpace(f.Icon),
	}

	f.Errors = nil
	if err := validate.Struct(body); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return models.BusinessActivityBody{}, err
		}
		f.Errors = make(map[string]string, len(fieldErrors))
		for _, fe := range fieldErrors {
			f.Errors[strings.ToLower(fe.Field())] = "This field is required"
		}
		return models.BusinessActivityBody{}, ErrInvalidForm
	}

	return body, nil
}
