package serve

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/nginxinc/ingress-nginx-errors/internal/framework/events"
	"github.com/nginxinc/ingress-nginx-errors/internal/templates"
)

// templateReloader rebuilds the index of the templates directory.
type templateReloader interface {
	Reload() (templates.Index, error)
}

type templatesMetricsCollector interface {
	IncReloadCount()
	IncReloadErrors()
	UpdateLastReloadTime(time.Duration)
	SetPages(int)
}

type handlerMetricsCollector interface {
	ObserveLastEventBatchProcessTime(time.Duration)
}

// eventHandlerConfig holds configuration parameters for eventHandlerImpl.
type eventHandlerConfig struct {
	// store is reloaded once per batch.
	store templateReloader
	// templatesCollector collects metrics for the reloads of the templates directory.
	templatesCollector templatesMetricsCollector
	// metricsCollector collects metrics for the event batches.
	metricsCollector handlerMetricsCollector
	// templatesLoadedChecker sets the health of the Pod.
	templatesLoadedChecker *templatesLoadedChecker
}

// eventHandlerImpl implements EventHandler.
// eventHandlerImpl is responsible for:
// (1) Reloading the templates directory once for all change events of a batch.
// (2) Reporting the result of the reload in the metrics.
// (3) Marking the Pod as ready once the first batch was handled.
type eventHandlerImpl struct {
	cfg eventHandlerConfig
}

// newEventHandlerImpl creates a new eventHandlerImpl.
func newEventHandlerImpl(cfg eventHandlerConfig) *eventHandlerImpl {
	return &eventHandlerImpl{
		cfg: cfg,
	}
}

func (h *eventHandlerImpl) HandleEventBatch(_ context.Context, logger logr.Logger, batch events.EventBatch) {
	start := time.Now()
	logger.V(1).Info("Started processing event batch")

	defer func() {
		duration := time.Since(start)
		logger.V(1).Info(
			"Finished processing event batch",
			"duration", duration.String(),
		)
		h.cfg.metricsCollector.ObserveLastEventBatchProcessTime(duration)
	}()

	for _, event := range batch {
		h.logEvent(logger, event)
	}

	// The first batch marks the Pod as ready even if the reload fails, because pages are still looked up
	// in the templates directory.
	defer h.cfg.templatesLoadedChecker.setAsReady()

	reloadStart := time.Now()
	index, err := h.cfg.store.Reload()
	h.cfg.templatesCollector.UpdateLastReloadTime(time.Since(reloadStart))

	if err != nil {
		h.cfg.templatesCollector.IncReloadErrors()
		logger.Error(err, "Failed to reload templates directory")
		return
	}

	h.cfg.templatesCollector.IncReloadCount()
	h.cfg.templatesCollector.SetPages(len(index))

	logger.Info("Templates directory was successfully reloaded", "pages", len(index))
}

func (h *eventHandlerImpl) logEvent(logger logr.Logger, event interface{}) {
	switch e := event.(type) {
	case events.ChangeEvent:
		logger.V(1).Info("Templates directory changed", "path", e.Path, "op", e.Op)
	case events.ResyncEvent:
		logger.V(1).Info("Templates directory resync")
	default:
		panic(fmt.Errorf("unknown event type %T", e))
	}
}
