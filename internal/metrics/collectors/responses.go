package collectors

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nginxinc/ingress-nginx-errors/internal/errorpage"
	"github.com/nginxinc/ingress-nginx-errors/internal/metrics"
)

// ResponsesCollector collects metrics for the responses of the error page server.
// Implements the prometheus.Collector interface and the errorpage.ResponseCollector interface.
type ResponsesCollector struct {
	// Metrics
	responsesTotal   *prometheus.CounterVec
	responseDuration prometheus.Histogram
}

// NewResponsesCollector creates a new ResponsesCollector.
func NewResponsesCollector(constLabels map[string]string) *ResponsesCollector {
	return &ResponsesCollector{
		responsesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "responses_total",
				Namespace:   metrics.Namespace,
				Help:        "Number of responses by requested code, format and result",
				ConstLabels: constLabels,
			},
			[]string{"code", "format", "result"},
		),
		responseDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:        "response_duration_milliseconds",
				Namespace:   metrics.Namespace,
				Help:        "Duration in milliseconds of serving a response",
				ConstLabels: constLabels,
				Buckets:     []float64{1, 5, 10, 50, 100, 500},
			},
		),
	}
}

// ObserveResponse counts the response and adds its duration to the histogram.
func (c *ResponsesCollector) ObserveResponse(
	code string,
	format string,
	result errorpage.Result,
	duration time.Duration,
) {
	c.responsesTotal.WithLabelValues(code, format, string(result)).Inc()
	c.responseDuration.Observe(float64(duration) / float64(time.Millisecond))
}

// Describe implements prometheus.Collector interface Describe method.
func (c *ResponsesCollector) Describe(ch chan<- *prometheus.Desc) {
	c.responsesTotal.Describe(ch)
	c.responseDuration.Describe(ch)
}

// Collect implements the prometheus.Collector interface Collect method.
func (c *ResponsesCollector) Collect(ch chan<- prometheus.Metric) {
	c.responsesTotal.Collect(ch)
	c.responseDuration.Collect(ch)
}

// ResponsesNoopCollector used to initialize the ResponseCollector when metrics are disabled to avoid nil pointer
// errors.
type ResponsesNoopCollector struct{}

// NewResponsesNoopCollector returns an instance of the ResponsesNoopCollector.
func NewResponsesNoopCollector() *ResponsesNoopCollector {
	return &ResponsesNoopCollector{}
}

// ObserveResponse implements a no-op ObserveResponse.
func (c *ResponsesNoopCollector) ObserveResponse(_ string, _ string, _ errorpage.Result, _ time.Duration) {}
