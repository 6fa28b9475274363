package serve

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	ctlr "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/metrics"

	"github.com/nginxinc/ingress-nginx-errors/internal/errorpage"
	"github.com/nginxinc/ingress-nginx-errors/internal/framework/events"
	"github.com/nginxinc/ingress-nginx-errors/internal/framework/runnables"
	"github.com/nginxinc/ingress-nginx-errors/internal/metrics/collectors"
	"github.com/nginxinc/ingress-nginx-errors/internal/mode/serve/config"
	"github.com/nginxinc/ingress-nginx-errors/internal/templates"
)

// resyncJitterFactor spreads the periodic rescans of replicas mounting the same ConfigMap.
const resyncJitterFactor = 0.1

// StartServer serves error pages until the process receives SIGINT or SIGTERM.
func StartServer(cfg config.Config) error {
	return run(ctlr.SetupSignalHandler(), cfg, metrics.Registry)
}

func run(ctx context.Context, cfg config.Config, registry metrics.RegistererGatherer) error {
	promLogger, err := newLeveledPrometheusLogger()
	if err != nil {
		return fmt.Errorf("error creating leveled prometheus logger: %w", err)
	}

	logLevelSetter := newMultiLogLevelSetter(newZapLogLevelSetter(cfg.AtomicLevel), promLogger)
	if err := logLevelSetter.SetLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("error setting log level: %w", err)
	}

	if err := templates.ValidateDir(afero.NewOsFs(), cfg.TemplatesDir); err != nil {
		return err
	}

	store, err := templates.NewStore(templates.StoreConfig{
		Fs:        afero.NewBasePathFs(afero.NewOsFs(), cfg.TemplatesDir),
		Logger:    cfg.Logger.WithName("templates"),
		CacheSize: cfg.CacheSize,
		Indexed:   cfg.WatchTemplates,
	})
	if err != nil {
		return err
	}

	var (
		responsesCollector errorpage.ResponseCollector = collectors.NewResponsesNoopCollector()
		templatesCollector templatesMetricsCollector   = collectors.NewTemplatesNoopCollector()
		handlerCollector   handlerMetricsCollector     = collectors.NewEventsNoopCollector()
	)

	if cfg.MetricsConfig.Enabled {
		constLabels := map[string]string{"version": cfg.Version}

		promResponsesCollector := collectors.NewResponsesCollector(constLabels)
		promTemplatesCollector := collectors.NewTemplatesCollector(constLabels)
		promHandlerCollector := collectors.NewEventsCollector(constLabels)

		for _, c := range []prometheus.Collector{
			promResponsesCollector,
			promTemplatesCollector,
			promHandlerCollector,
		} {
			if err := registry.Register(c); err != nil {
				return fmt.Errorf("failed to register metrics collector: %w", err)
			}
		}

		responsesCollector = promResponsesCollector
		templatesCollector = promTemplatesCollector
		handlerCollector = promHandlerCollector
	}

	healthChecker := newTemplatesLoadedChecker()

	eventHandler := newEventHandlerImpl(eventHandlerConfig{
		store:                  store,
		templatesCollector:     templatesCollector,
		metricsCollector:       handlerCollector,
		templatesLoadedChecker: healthChecker,
	})

	group := runnables.NewGroup(cfg.Logger.WithName("runnables"))

	router := errorpage.NewRouter(errorpage.NewHandler(errorpage.HandlerConfig{
		Store:          store,
		Collector:      responsesCollector,
		Logger:         cfg.Logger.WithName("errorPageHandler"),
		PreserveStatus: cfg.PreserveStatus,
	}))

	group.Add("errorPageServer", newErrorPageServer(
		cfg.ListenAddress,
		router,
		cfg.Logger.WithName("errorPageServer"),
		cfg.ShutdownTimeout,
	))

	if cfg.WatchTemplates {
		registerTemplatesWatch(cfg, group, eventHandler, healthChecker)
	} else {
		// Without watching, pages are read from the directory on every request. The directory is still scanned
		// once so that the logs and the metrics report the pages available on start.
		eventHandler.HandleEventBatch(ctx, cfg.Logger.WithName("eventHandler"), events.EventBatch{events.ResyncEvent{}})
	}

	if cfg.MetricsConfig.Enabled {
		group.Add("metricsServer", newMetricsServer(
			cfg.MetricsConfig.Port,
			cfg.MetricsConfig.WebConfigFile,
			registry,
			promLogger,
			cfg.Logger.WithName("metricsServer"),
			cfg.ShutdownTimeout,
		))
	}

	if cfg.HealthConfig.Enabled {
		group.Add("healthServer", newHealthServer(
			cfg.HealthConfig.Port,
			healthChecker.readyCheck,
			cfg.Logger.WithName("healthServer"),
			cfg.ShutdownTimeout,
		))
	}

	cfg.Logger.Info(
		"Serving error pages",
		"templatesDir", cfg.TemplatesDir,
		"watchTemplates", cfg.WatchTemplates,
	)

	return group.Start(ctx)
}

// registerTemplatesWatch adds the runnables that keep the index of the store in sync with the templates directory.
func registerTemplatesWatch(
	cfg config.Config,
	group *runnables.Group,
	eventHandler events.EventHandler,
	healthChecker *templatesLoadedChecker,
) {
	eventCh := make(chan interface{})

	group.Add("templatesWatcher", templates.NewWatcher(
		cfg.TemplatesDir,
		eventCh,
		cfg.Logger.WithName("templatesWatcher"),
	))

	group.Add("eventLoop", events.NewEventLoop(
		eventCh,
		cfg.Logger.WithName("eventLoop"),
		eventHandler,
		events.NewFirstEventBatchPreparerImpl(),
	))

	if cfg.ResyncPeriod > 0 {
		group.Add("templatesResync", runnables.NewCronJob(runnables.CronJobConfig{
			Worker:       newResyncWorker(eventCh),
			ReadyCh:      healthChecker.getReadyCh(),
			Logger:       cfg.Logger.WithName("templatesResync"),
			Period:       cfg.ResyncPeriod,
			JitterFactor: resyncJitterFactor,
		}))
	}
}

// newResyncWorker returns a worker that requests a rescan of the templates directory, which catches changes
// that the watcher missed.
func newResyncWorker(eventCh chan<- interface{}) func(context.Context) {
	return func(ctx context.Context) {
		select {
		case eventCh <- events.ResyncEvent{}:
		case <-ctx.Done():
		}
	}
}

