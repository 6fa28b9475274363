package serve

import (
	"errors"
	"sync"

	"github.com/go-kit/log"
	"github.com/prometheus/common/promlog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Log levels accepted by all loggers of ingress-nginx-errors.
const (
	logLevelDebug = "debug"
	logLevelInfo  = "info"
	logLevelError = "error"
)

// SupportedLogLevels are the log levels that can be configured.
var SupportedLogLevels = []string{logLevelDebug, logLevelInfo, logLevelError}

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . logLevelSetter

// logLevelSetter defines an interface for setting the logging level of a logger.
type logLevelSetter interface {
	SetLevel(string) error
}

// multiLogLevelSetter sets the log level for multiple logLevelSetters.
type multiLogLevelSetter struct {
	setters []logLevelSetter
}

func newMultiLogLevelSetter(setters ...logLevelSetter) multiLogLevelSetter {
	return multiLogLevelSetter{setters: setters}
}

// SetLevel sets the logging level for all setters. Setters are called even if a previous one failed.
func (m multiLogLevelSetter) SetLevel(level string) error {
	allErrs := make([]error, 0, len(m.setters))

	for _, s := range m.setters {
		if err := s.SetLevel(level); err != nil {
			allErrs = append(allErrs, err)
		}
	}

	return errors.Join(allErrs...)
}

// zapLogLevelSetter sets the level for a zap logger.
type zapLogLevelSetter struct {
	atomicLevel zap.AtomicLevel
}

func newZapLogLevelSetter(atomicLevel zap.AtomicLevel) zapLogLevelSetter {
	return zapLogLevelSetter{
		atomicLevel: atomicLevel,
	}
}

// SetLevel sets the logging level for the zap logger.
func (z zapLogLevelSetter) SetLevel(level string) error {
	if !isSupportedLogLevel(level) {
		return field.NotSupported(field.NewPath("logLevel"), level, SupportedLogLevels)
	}

	parsedLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	z.atomicLevel.SetLevel(parsedLevel)

	return nil
}

// Enabled returns true if the given level is at or above the current level.
func (z zapLogLevelSetter) Enabled(level zapcore.Level) bool {
	return z.atomicLevel.Enabled(level)
}

// leveledPrometheusLogger is a go-kit logger, as required by the Prometheus exporter-toolkit, whose level can be
// changed at runtime.
type leveledPrometheusLogger struct {
	logger log.Logger
	format *promlog.AllowedFormat
	lock   sync.RWMutex
}

// newLeveledPrometheusLogger creates a leveledPrometheusLogger that writes JSON at the info level.
func newLeveledPrometheusLogger() (*leveledPrometheusLogger, error) {
	logFormat := &promlog.AllowedFormat{}

	if err := logFormat.Set("json"); err != nil {
		return nil, err
	}

	l := &leveledPrometheusLogger{format: logFormat}
	if err := l.SetLevel(logLevelInfo); err != nil {
		return nil, err
	}

	return l, nil
}

// Log implements the go-kit log.Logger interface.
func (l *leveledPrometheusLogger) Log(keyvals ...interface{}) error {
	l.lock.RLock()
	defer l.lock.RUnlock()

	return l.logger.Log(keyvals...)
}

// SetLevel sets the logging level for the Prometheus logger.
func (l *leveledPrometheusLogger) SetLevel(level string) error {
	if !isSupportedLogLevel(level) {
		return field.NotSupported(field.NewPath("logLevel"), level, SupportedLogLevels)
	}

	logLevel := &promlog.AllowedLevel{}
	if err := logLevel.Set(level); err != nil {
		return err
	}

	logger := promlog.New(&promlog.Config{Level: logLevel, Format: l.format})

	l.lock.Lock()
	defer l.lock.Unlock()

	l.logger = logger

	return nil
}

func isSupportedLogLevel(level string) bool {
	for _, l := range SupportedLogLevels {
		if l == level {
			return true
		}
	}
	return false
}
