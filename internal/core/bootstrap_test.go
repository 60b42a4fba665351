package core

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kycadmin/internal/activity"
	"kycadmin/internal/configuration"
	"kycadmin/internal/models"
	"kycadmin/internal/notifier"
	"kycadmin/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() models.Configuration {
	return models.Configuration{
		App: models.AppConfiguration{AllowedOrigins: []string{"*"}, Port: 3000},
		Events: models.EventsConfiguration{
			Type: configuration.ProviderMemory,
			Queues: map[string]models.QueueConfig{
				configuration.EventsNotifications: {Name: "test-notifications"},
			},
		},
	}
}

func TestNewRouter_RootRedirectsToAnalytics(t *testing.T) {
	handler := NewRouter(testConfig(), Sections{})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/analytics", recorder.Header().Get("Location"))
}

func TestNewRouter_Healthz(t *testing.T) {
	handler := NewRouter(testConfig(), Sections{})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())
}

func TestNewRouter_APIAllowsConfiguredOrigins(t *testing.T) {
	handler := NewRouter(testConfig(), Sections{
		Activity: services.ActivityService{ActivityLogger: activity.NoopLogger{}},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/activity", nil)
	req.Header.Set("Origin", "http://dashboard.example")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestNotificationBus_DeliversToSink(t *testing.T) {
	eventsManager := NewEventsManager(testConfig().Events)
	defer eventsManager.Close()

	sink := notifier.NewCollector()
	bus := NewNotificationBus(eventsManager, sink)
	_, isCollector := bus.(*notifier.Collector)
	require.False(t, isCollector)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartWorkers(ctx, eventsManager, sink, nil, testConfig())

	notifier.Success(bus, "Files uploaded successfully")

	require.Eventually(t, func() bool { return len(sink.Notifications()) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "Files uploaded successfully", sink.Notifications()[0].Message)
}

func TestNotificationBus_FallsBackToSinkWithoutTopic(t *testing.T) {
	eventsManager := NewEventsManager(models.EventsConfiguration{Type: configuration.ProviderMemory})
	sink := notifier.NewCollector()

	assert.Same(t, sink, NewNotificationBus(eventsManager, sink))
}
