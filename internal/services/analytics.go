package services

import (
	"net/http"

	"kycadmin/internal/analytics"
	h "kycadmin/internal/helpers"
	"kycadmin/internal/models"
	"kycadmin/internal/notifier"

	"github.com/go-chi/chi/v5"
)

type AnalyticsService struct {
	Dashboard *analytics.Dashboard
	Renderer  *Renderer
	Notifier  notifier.INotifier
}

type analyticsView struct {
	Snapshot models.AnalyticsSnapshot
	Loading  bool
}

func (s AnalyticsService) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", s.GetDashboard)
	return r
}

// GetDashboard runs the aggregation on every visit, like opening the tab.
func (s AnalyticsService) GetDashboard(w http.ResponseWriter, r *http.Request) {
	collector, notify := requestNotifier(s.Notifier)
	snapshot := s.Dashboard.Refresh(r.Context(), notify)

	s.Renderer.Render(w, http.StatusOK, TabAnalytics, Page{
		Tab:           TabAnalytics,
		Notifications: collector.Notifications(),
		Data:          analyticsView{Snapshot: snapshot},
	})
}

// GetSnapshotJSON returns the displayed snapshot; refresh=1 re-runs the
// aggregation first.
func (s AnalyticsService) GetSnapshotJSON(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("refresh") == "1" {
		s.Dashboard.Refresh(r.Context(), s.Notifier)
	}
	snapshot, loading := s.Dashboard.State()
	h.RespondWithJSON(w, http.StatusOK, snapshot.ToResponse(loading))
}
