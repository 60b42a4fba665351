package services

import (
	"errors"
	"net/http"

	"kycadmin/internal/business"
	"kycadmin/internal/models"
	"kycadmin/internal/notifier"

	"github.com/go-chi/chi/v5"
)

type BusinessService struct {
	Catalog  *business.Catalog
	Manager  business.Manager
	Renderer *Renderer
	Notifier notifier.INotifier
}

type businessView struct {
	Activities []models.BusinessActivity
	Loading    bool
	Form       *business.Form
}

type businessDeleteView struct {
	ID       models.ActivityID
	Activity *models.BusinessActivity
	Prompt   string
}

func (s BusinessService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", s.GetList)
	r.Post("/", s.PostCreate)
	r.Get("/new", s.GetCreateForm)

	r.Route("/{id}", func(r chi.Router) {
		r.Post("/", s.PostUpdate)
		r.Get("/edit", s.GetEditForm)
		r.Get("/delete", s.GetDeleteConfirmation)
		r.Post("/delete", s.PostDelete)
	})

	return r
}

func (s BusinessService) GetList(w http.ResponseWriter, r *http.Request) {
	s.Catalog.Refresh(r.Context())
	s.render(w, http.StatusOK, nil, nil)
}

func (s BusinessService) GetCreateForm(w http.ResponseWriter, _ *http.Request) {
	form := business.NewForm(nil)
	s.render(w, http.StatusOK, nil, &form)
}

func (s BusinessService) GetEditForm(w http.ResponseWriter, r *http.Request) {
	id := activityID(r)
	activity, ok := s.Catalog.Find(id)
	if !ok {
		s.Catalog.Refresh(r.Context())
		activity, ok = s.Catalog.Find(id)
	}
	if !ok {
		s.render(w, http.StatusNotFound, nil, nil)
		return
	}

	form := business.NewForm(&activity)
	s.render(w, http.StatusOK, nil, &form)
}

func (s BusinessService) PostCreate(w http.ResponseWriter, r *http.Request) {
	s.submit(w, r, business.Form{
		Name: r.PostFormValue("name"),
		Icon: r.PostFormValue("icon"),
	})
}

func (s BusinessService) PostUpdate(w http.ResponseWriter, r *http.Request) {
	s.submit(w, r, business.Form{
		ID:   activityID(r),
		Name: r.PostFormValue("name"),
		Icon: r.PostFormValue("icon"),
	})
}

// submit keeps the modal open unless the save succeeded.
func (s BusinessService) submit(w http.ResponseWriter, r *http.Request, form business.Form) {
	collector, notify := requestNotifier(s.Notifier)

	err := s.Manager.Submit(r.Context(), notify, &form)
	switch {
	case err == nil:
		s.render(w, http.StatusOK, collector.Notifications(), nil)
	case errors.Is(err, business.ErrInvalidForm):
		s.render(w, http.StatusUnprocessableEntity, collector.Notifications(), &form)
	default:
		s.render(w, http.StatusOK, collector.Notifications(), &form)
	}
}

func (s BusinessService) GetDeleteConfirmation(w http.ResponseWriter, r *http.Request) {
	id := activityID(r)
	view := businessDeleteView{ID: id, Prompt: business.ConfirmDeletePrompt}
	if activity, ok := s.Catalog.Find(id); ok {
		view.Activity = &activity
	}

	s.Renderer.Render(w, http.StatusOK, "business_delete", Page{Tab: TabBusiness, Data: view})
}

func (s BusinessService) PostDelete(w http.ResponseWriter, r *http.Request) {
	collector, notify := requestNotifier(s.Notifier)
	confirmed := r.PostFormValue("confirm") == "yes"

	_ = s.Manager.Delete(r.Context(), notify, activityID(r), func(string) bool { return confirmed })

	s.render(w, http.StatusOK, collector.Notifications(), nil)
}

func (s BusinessService) render(
	w http.ResponseWriter,
	status int,
	notifications []models.Notification,
	form *business.Form,
) {
	s.Renderer.Render(w, status, TabBusiness, Page{
		Tab:           TabBusiness,
		Notifications: notifications,
		Data: businessView{
			Activities: s.Catalog.Activities(),
			Loading:    s.Catalog.Loading(),
			Form:       form,
		},
	})
}

func activityID(r *http.Request) models.ActivityID {
	return models.ActivityID(chi.URLParam(r, "id"))
}
