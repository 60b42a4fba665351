package services

import (
	"net/http"

	"kycadmin/internal/activity"
	h "kycadmin/internal/helpers"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ActivityService struct {
	ActivityLogger activity.IActivityLogger
}

func (s ActivityService) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", s.SearchActivity)
	return r
}

// SearchActivity filters the operator log by any of the searchable fields.
// Unknown query parameters are ignored.
func (s ActivityService) SearchActivity(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	criteria := make(map[string][]string)
	for _, field := range activity.SearchableFields {
		if values, ok := query[field]; ok && len(values) > 0 {
			criteria[field] = values
		}
	}

	entries, err := s.ActivityLogger.Search(criteria)
	if err != nil {
		zap.L().Error("Failed to search activity", zap.Error(err))
		h.RespondWithError(w, http.StatusInternalServerError, []string{"ACTIVITY_SEARCH_FAILED"})
		return
	}

	h.RespondWithJSON(w, http.StatusOK, entries)
}
