package collectors

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nginxinc/ingress-nginx-errors/internal/metrics"
)

// TemplatesCollector collects metrics for the reloads of the templates directory.
// Implements the prometheus.Collector interface.
type TemplatesCollector struct {
	// Metrics
	reloadsTotal     prometheus.Counter
	reloadsError     prometheus.Counter
	lastReloadStatus prometheus.Gauge
	lastReloadTime   prometheus.Gauge
	pages            prometheus.Gauge
}

// NewTemplatesCollector creates a new TemplatesCollector.
func NewTemplatesCollector(constLabels map[string]string) *TemplatesCollector {
	return &TemplatesCollector{
		reloadsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name:        "template_reloads_total",
				Namespace:   metrics.Namespace,
				Help:        "Number of successful reloads of the templates directory",
				ConstLabels: constLabels,
			}),
		reloadsError: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name:        "template_reload_errors_total",
				Namespace:   metrics.Namespace,
				Help:        "Number of unsuccessful reloads of the templates directory",
				ConstLabels: constLabels,
			},
		),
		lastReloadStatus: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        "template_last_reload_status",
				Namespace:   metrics.Namespace,
				Help:        "Status of the last reload of the templates directory",
				ConstLabels: constLabels,
			},
		),
		lastReloadTime: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        "template_last_reload_milliseconds",
				Namespace:   metrics.Namespace,
				Help:        "Duration in milliseconds of the last reload of the templates directory",
				ConstLabels: constLabels,
			},
		),
		pages: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        "templates",
				Namespace:   metrics.Namespace,
				Help:        "Number of error pages in the templates directory",
				ConstLabels: constLabels,
			},
		),
	}
}

// IncReloadCount increments the counter of successful reloads and sets the last reload status to true.
func (c *TemplatesCollector) IncReloadCount() {
	c.reloadsTotal.Inc()
	c.updateLastReloadStatus(true)
}

// IncReloadErrors increments the counter of reload errors and sets the last reload status to false.
func (c *TemplatesCollector) IncReloadErrors() {
	c.reloadsError.Inc()
	c.updateLastReloadStatus(false)
}

// updateLastReloadStatus updates the last reload status metric.
func (c *TemplatesCollector) updateLastReloadStatus(up bool) {
	var status float64
	if up {
		status = 1.0
	}
	c.lastReloadStatus.Set(status)
}

// UpdateLastReloadTime updates the last reload time.
func (c *TemplatesCollector) UpdateLastReloadTime(duration time.Duration) {
	c.lastReloadTime.Set(float64(duration / time.Millisecond))
}

// SetPages sets the number of pages in the index.
func (c *TemplatesCollector) SetPages(count int) {
	c.pages.Set(float64(count))
}

// Describe implements prometheus.Collector interface Describe method.
func (c *TemplatesCollector) Describe(ch chan<- *prometheus.Desc) {
	c.reloadsTotal.Describe(ch)
	c.reloadsError.Describe(ch)
	c.lastReloadStatus.Describe(ch)
	c.lastReloadTime.Describe(ch)
	c.pages.Describe(ch)
}

// Collect implements the prometheus.Collector interface Collect method.
func (c *TemplatesCollector) Collect(ch chan<- prometheus.Metric) {
	c.reloadsTotal.Collect(ch)
	c.reloadsError.Collect(ch)
	c.lastReloadStatus.Collect(ch)
	c.lastReloadTime.Collect(ch)
	c.pages.Collect(ch)
}

// TemplatesNoopCollector used to initialize the TemplatesCollector when metrics are disabled to avoid nil pointer
// errors.
type TemplatesNoopCollector struct{}

// NewTemplatesNoopCollector creates a no-op collector.
func NewTemplatesNoopCollector() *TemplatesNoopCollector {
	return &TemplatesNoopCollector{}
}

// IncReloadCount implements a no-op IncReloadCount.
func (c *TemplatesNoopCollector) IncReloadCount() {}

// IncReloadErrors implements a no-op IncReloadErrors.
func (c *TemplatesNoopCollector) IncReloadErrors() {}

// UpdateLastReloadTime implements a no-op UpdateLastReloadTime.
func (c *TemplatesNoopCollector) UpdateLastReloadTime(_ time.Duration) {}

// SetPages implements a no-op SetPages.
func (c *TemplatesNoopCollector) SetPages(_ int) {}
