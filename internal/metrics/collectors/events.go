package collectors

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nginxinc/ingress-nginx-errors/internal/metrics"
)

// EventsCollector collects metrics for the handling of template change events.
// Implements the prometheus.Collector interface.
type EventsCollector struct {
	// Metrics
	eventBatchProcessDuration prometheus.Histogram
}

// NewEventsCollector creates a new EventsCollector.
func NewEventsCollector(constLabels map[string]string) *EventsCollector {
	return &EventsCollector{
		eventBatchProcessDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:        "event_batch_processing_milliseconds",
				Namespace:   metrics.Namespace,
				Help:        "Duration in milliseconds of event batch processing",
				ConstLabels: constLabels,
				Buckets:     []float64{1, 10, 100, 500, 1000, 5000},
			},
		),
	}
}

// ObserveLastEventBatchProcessTime adds the last event batch processing time to the histogram.
func (c *EventsCollector) ObserveLastEventBatchProcessTime(duration time.Duration) {
	c.eventBatchProcessDuration.Observe(float64(duration / time.Millisecond))
}

// Describe implements prometheus.Collector interface Describe method.
func (c *EventsCollector) Describe(ch chan<- *prometheus.Desc) {
	c.eventBatchProcessDuration.Describe(ch)
}

// Collect implements the prometheus.Collector interface Collect method.
func (c *EventsCollector) Collect(ch chan<- prometheus.Metric) {
	c.eventBatchProcessDuration.Collect(ch)
}

// EventsNoopCollector used to initialize the EventsCollector when metrics are disabled to avoid nil pointer errors.
type EventsNoopCollector struct{}

// NewEventsNoopCollector returns an instance of the EventsNoopCollector.
func NewEventsNoopCollector() *EventsNoopCollector {
	return &EventsNoopCollector{}
}

func (c *EventsNoopCollector) ObserveLastEventBatchProcessTime(_ time.Duration) {}
