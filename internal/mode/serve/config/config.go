package config

import (
	"time"

	"github.com/go-logr/logr"
	"go.uber.org/zap"
)

type Config struct {
	// Version is the running version of ingress-nginx-errors.
	Version string
	// AtomicLevel is an atomically changeable, dynamic logging level.
	AtomicLevel zap.AtomicLevel
	// Logger is the Zap Logger used by all components.
	Logger logr.Logger
	// ListenAddress is the address the error page server listens on.
	ListenAddress string
	// TemplatesDir is the directory with the error pages.
	TemplatesDir string
	// LogLevel is the initial logging level.
	LogLevel string
	// MetricsConfig specifies the metrics config.
	MetricsConfig MetricsConfig
	// HealthConfig specifies the health probe config.
	HealthConfig HealthConfig
	// ResyncPeriod is the period at which the templates directory is rescanned even without change events.
	// Zero disables the periodic rescan. Only used when WatchTemplates is true.
	ResyncPeriod time.Duration
	// ShutdownTimeout is the time given to the servers to finish in-flight requests on shutdown.
	ShutdownTimeout time.Duration
	// CacheSize is the maximum number of error pages kept in memory. Only used when WatchTemplates is true.
	CacheSize int
	// WatchTemplates enables watching the templates directory for changes.
	WatchTemplates bool
	// PreserveStatus makes the error page server respond with the requested code instead of 200.
	PreserveStatus bool
}

// MetricsConfig specifies the metrics config.
type MetricsConfig struct {
	// WebConfigFile is the path to the exporter-toolkit web configuration file that enables TLS or
	// authentication. Empty means plain HTTP.
	WebConfigFile string
	// Port is the port the metrics should be exposed on.
	Port int
	// Enabled is the flag for toggling metrics on or off.
	Enabled bool
}

// HealthConfig specifies the health probe config.
type HealthConfig struct {
	// Port is the port that the health probe server listens on.
	Port int
	// Enabled is the flag for toggling the health probe server on or off.
	Enabled bool
}
