package core

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"kycadmin/internal/configuration"
	h "kycadmin/internal/helpers"
	m "kycadmin/internal/middlewares"
	"kycadmin/internal/models"
	"kycadmin/internal/notifier"
	"kycadmin/internal/services"
	"kycadmin/internal/upload"
	"kycadmin/internal/workers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Sections groups the services mounted by the router.
type Sections struct {
	Analytics services.AnalyticsService
	Business  services.BusinessService
	Upload    services.UploadService
	Activity  services.ActivityService
}

func StartWorkers(
	ctx context.Context,
	eventsManager *EventsManager,
	sink notifier.INotifier,
	drafts *upload.Drafts,
	config models.Configuration,
) {
	if subscriber := eventsManager.GetSubscriber(configuration.EventsNotifications); subscriber != nil {
		go notifier.Dispatch(subscriber.Subscribe(), sink)
		zap.L().Info("Started notifications worker")
	}

	if drafts == nil {
		return
	}
	sweeper := &workers.DraftSweeper{
		Drafts:      drafts,
		TTL:         config.App.DraftTTL(),
		RunInterval: time.Duration(configuration.DraftSweepIntervalMinutes) * time.Minute,
	}
	go sweeper.Start(ctx)
}

func NewRouter(config models.Configuration, sections Sections) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(m.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/analytics", http.StatusFound)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		h.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Mount("/analytics", sections.Analytics.Routes())
	r.Mount("/business", sections.Business.Routes())
	r.Mount("/upload", sections.Upload.Routes())

	r.Route("/api", func(apiRouter chi.Router) {
		apiRouter.Use(cors.Handler(cors.Options{
			AllowedOrigins: config.App.AllowedOrigins,
			AllowedMethods: []string{"GET"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			ExposedHeaders: []string{},
			MaxAge:         300,
		}))

		apiRouter.Get("/analytics", sections.Analytics.GetSnapshotJSON)
		apiRouter.Mount("/activity", sections.Activity.Routes())
	})

	return otelhttp.NewHandler(r, configuration.AppName)
}

// StartHTTPServer serves handler until ctx is cancelled, then drains open
// requests.
func StartHTTPServer(ctx context.Context, config models.Configuration, handler http.Handler) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.App.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("HTTP server starting", zap.Int("port", config.App.Port))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start the app: %w", err)
		}
		return nil
	case <-ctx.Done():
		zap.L().Info("HTTP server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
