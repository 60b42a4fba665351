package main

import (
	"context"
	"os/signal"
	"syscall"

	"kycadmin/internal/analytics"
	"kycadmin/internal/business"
	"kycadmin/internal/configuration"
	"kycadmin/internal/core"
	"kycadmin/internal/kycapi"
	"kycadmin/internal/services"
	"kycadmin/internal/upload"

	"go.uber.org/zap"
)

func main() {
	zap.ReplaceGlobals(zap.Must(zap.NewProduction()))

	config := configuration.Read()
	core.NewLogger(config.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := core.InitTracing(ctx, config.Tracing)
	if err != nil {
		zap.L().Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	client, err := kycapi.NewClient(config.API)
	if err != nil {
		zap.L().Fatal("Failed to initialize API client", zap.Error(err))
	}

	renderer, err := services.NewRenderer()
	if err != nil {
		zap.L().Fatal("Failed to load templates", zap.Error(err))
	}

	drafts, err := upload.NewDrafts(config.App.DraftDirectory, config.App.DraftTTL())
	if err != nil {
		zap.L().Fatal("Failed to initialize upload drafts", zap.Error(err))
	}
	defer func() { _ = drafts.Close() }()

	activityLogger := core.NewActivityLogger(config.Activity)
	defer func() { _ = activityLogger.Close() }()

	eventsManager := core.NewEventsManager(config.Events)
	defer eventsManager.Close()

	sink := core.NewNotifier(config.Notifier)
	bus := core.NewNotificationBus(eventsManager, sink)
	core.StartWorkers(ctx, eventsManager, sink, drafts, config)

	catalog := business.NewCatalog(client)

	handler := core.NewRouter(config, core.Sections{
		Analytics: services.AnalyticsService{
			Dashboard: analytics.NewDashboard(analytics.NewAggregator(client)),
			Renderer:  renderer,
			Notifier:  bus,
		},
		Business: services.BusinessService{
			Catalog: catalog,
			Manager: business.Manager{
				API:            client,
				Refresher:      catalog,
				ActivityLogger: activityLogger,
			},
			Renderer: renderer,
			Notifier: bus,
		},
		Upload: services.UploadService{
			Drafts: drafts,
			Submitter: upload.Submitter{
				Uploader:       core.NewUploader(config, client),
				ActivityLogger: activityLogger,
			},
			Renderer:      renderer,
			Notifier:      bus,
			MaxUploadSize: config.App.MaxUploadSize,
		},
		Activity: services.ActivityService{ActivityLogger: activityLogger},
	})

	if err = core.StartHTTPServer(ctx, config, handler); err != nil {
		zap.L().Error("HTTP server stopped", zap.Error(err))
	}
}
