package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	webhttp "notesweb/internal/notesweb/adapters/http"
	"notesweb/internal/notesweb/adapters/remote"
	"notesweb/internal/notesweb/app"
	"notesweb/internal/notesweb/events"
	"notesweb/internal/notesweb/metrics"
	"notesweb/internal/notesweb/widgets"
	"notesweb/pkg/shutdown"
)

// Константы для сообщений сервиса.
const (
	ErrCreateRemoteClient = "failed to create remote notes client"
	ErrCreateRenderer     = "failed to create widget renderer"
	ErrStartHTTPServer    = "failed to start HTTP server"

	LogServiceStarted      = "notesweb started"
	LogServiceShutdownDone = "notesweb shutdown complete"
	LogInitRemote          = "initializing remote notes client"
	LogInitWidgets         = "initializing widgets"
	LogInitialRefresh      = "loading notes"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the notes page",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer syncLogger(log)

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		collector := metrics.NewCollector(metrics.Namespace)

		log.Info(ctx, LogInitRemote, zap.String("base_url", cfg.Remote.BaseURL))
		client, err := remote.NewClient(ctx, &cfg.Remote, collector)
		if err != nil {
			log.Error(ctx, ErrCreateRemoteClient, zap.Error(err))
			return fmt.Errorf("%s: %w", ErrCreateRemoteClient, err)
		}

		store := app.NewStore()
		loader := app.NewLoader(collector.Loading)
		controller := app.NewSyncController(client, store, loader, collector)

		intents := events.NewBus[events.CreationIntent]()
		stopIntents := controller.ListenCreationIntents(intents)
		defer stopIntents()

		log.Info(ctx, LogInitWidgets)
		loc, err := cfg.Display.Location()
		if err != nil {
			return fmt.Errorf("%s: %w", ErrCreateRenderer, err)
		}
		renderer, err := widgets.NewRenderer(loc)
		if err != nil {
			log.Error(ctx, ErrCreateRenderer, zap.Error(err))
			return fmt.Errorf("%s: %w", ErrCreateRenderer, err)
		}
		view, stopView, err := widgets.NewListView(renderer, store)
		if err != nil {
			log.Error(ctx, ErrCreateRenderer, zap.Error(err))
			return fmt.Errorf("%s: %w", ErrCreateRenderer, err)
		}
		defer stopView()
		form, err := widgets.NewCreationForm(intents, collector.FormRejected)
		if err != nil {
			log.Error(ctx, ErrCreateRenderer, zap.Error(err))
			return fmt.Errorf("%s: %w", ErrCreateRenderer, err)
		}

		log.Info(ctx, LogInitialRefresh)
		controller.Refresh(ctx)

		server := fiber.New(fiber.Config{
			AppName:      "notesweb",
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})
		webhttp.SetupRouter(server, webhttp.NewHandler(renderer, form, controller, loader, view), collector.Registry())

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := server.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.Timeout,
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return server.ShutdownWithContext(ctx)
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
		return nil
	},
}
