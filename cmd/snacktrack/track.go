package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/DiabolusGX/snack-track/internal/api"
	"github.com/DiabolusGX/snack-track/internal/bootstrap"
	"github.com/DiabolusGX/snack-track/internal/cache"
	"github.com/DiabolusGX/snack-track/internal/config"
	"github.com/DiabolusGX/snack-track/internal/job"
	"github.com/DiabolusGX/snack-track/internal/migrations"
	"github.com/DiabolusGX/snack-track/internal/notifier"
	"github.com/DiabolusGX/snack-track/internal/provider"
	"github.com/DiabolusGX/snack-track/internal/repository/sqlite"
	"github.com/DiabolusGX/snack-track/internal/service"
	"github.com/DiabolusGX/snack-track/internal/support/logging"
	"github.com/DiabolusGX/snack-track/internal/tracker"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Start the order tracking daemon",
	RunE:  runTrack,
}

func init() {
	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(logging.Options{
		Level:     cfg.Log.SlogLevel(),
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
	})

	db, err := bootstrap.OpenSQLite(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.Up(db); err != nil {
		return err
	}

	store := sqlite.NewStore(db)
	settingCache := cache.NewStore(cache.Options{})
	settings := service.NewSettings(store.Settings(), settingCache, logger)

	client := provider.NewClient(provider.Config{
		BaseURL:    cfg.Provider.BaseURL,
		Cookie:     cfg.Provider.Cookie,
		Timeout:    cfg.Provider.Timeout,
		MaxRetries: cfg.Provider.MaxRetries,
	}, logger)

	sink := notifier.NewWebhookSink(cfg.Webhook.Endpoint, cfg.Webhook.Timeout, logger)
	dispatcher := notifier.NewDispatcher(notifier.NewLogNotifier(logger), sink, logger)

	var metrics *tracker.Metrics
	if cfg.Metrics.Enabled {
		metrics = tracker.NewMetrics(cfg.Metrics.Namespace)
	}

	// The indicator survives restarts: come back in the state the user
	// last left the tracker in.
	enabled, err := settings.TrackerEnabled(ctx)
	if err != nil {
		return err
	}
	initial := tracker.IndicatorOff
	if enabled {
		initial = tracker.IndicatorOn
	}

	trk := tracker.New(settings, client, store.RunningOrders(), dispatcher, notifier.NewLogNotifier(logger), metrics, logger, initial)

	scheduler := job.NewScheduler(logger)
	if _, err := scheduler.Register(cfg.Tracker.Schedule, trk); err != nil {
		return err
	}
	scheduler.Start()

	router := api.NewRouter(api.Options{
		Settings:       settings,
		Tracker:        trk,
		Logger:         logger,
		MetricsEnabled: cfg.Metrics.Enabled,
	})
	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	stopCtx := scheduler.Stop()
	<-stopCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	logger.Info("shutting down http server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	logger.Info("tracker exited cleanly")
	return nil
}
