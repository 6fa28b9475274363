package main

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/exporter-toolkit/web"
	"k8s.io/apimachinery/pkg/util/validation"

	"github.com/nginxinc/ingress-nginx-errors/internal/mode/serve"
)

const maxCacheSize = 65536

// validateListenAddress validates an address of the form HOST:PORT. HOST may be empty, an IP address or a DNS name.
func validateListenAddress(value string) error {
	host, port, err := net.SplitHostPort(value)
	if err != nil {
		return fmt.Errorf("invalid format; must be HOST:PORT: %w", err)
	}

	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", port, err)
	}
	if portNum < 1 || portNum > 65535 {
		return fmt.Errorf("port outside of valid port range [1 - 65535]: %v", portNum)
	}

	if host == "" || net.ParseIP(host) != nil {
		return nil
	}

	// used by Kubernetes to validate DNS names
	messages := validation.IsDNS1123Subdomain(host)
	if len(messages) > 0 {
		msg := strings.Join(messages, "; ")
		return fmt.Errorf("invalid host %q: %s", host, msg)
	}

	return nil
}

// listenPort returns the port of an address validated by validateListenAddress.
func listenPort(addr string) (int, error) {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, err
	}

	return strconv.Atoi(port)
}

func validateTemplatesDir(value string) error {
	if len(value) == 0 {
		return errors.New("must be set")
	}

	return nil
}

// validatePort makes sure a given port is inside the valid port range for its usage.
func validatePort(port int) error {
	if port < 1024 || port > 65535 {
		return fmt.Errorf("port outside of valid port range [1024 - 65535]: %v", port)
	}
	return nil
}

// ensureNoPortCollisions checks if the same port has been defined multiple times.
func ensureNoPortCollisions(ports ...int) error {
	seen := make(map[int]struct{})

	for _, port := range ports {
		if _, ok := seen[port]; ok {
			return fmt.Errorf("port %d has been defined multiple times", port)
		}
		seen[port] = struct{}{}
	}

	return nil
}

func validateCacheSize(size int) error {
	if size < 0 || size > maxCacheSize {
		return fmt.Errorf("cache size outside of valid range [0 - %d]: %v", maxCacheSize, size)
	}
	return nil
}

func validateResyncPeriod(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("must not be negative: %s", d)
	}
	return nil
}

func validateShutdownTimeout(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("must be positive: %s", d)
	}
	return nil
}

func validateLogLevel(level string) error {
	for _, l := range serve.SupportedLogLevels {
		if l == level {
			return nil
		}
	}

	return fmt.Errorf("unsupported log level %q; must be one of: %s", level, strings.Join(serve.SupportedLogLevels, ", "))
}

// validateWebConfigFile validates the exporter-toolkit web configuration file, if set.
func validateWebConfigFile(path string) error {
	if path == "" {
		return nil
	}

	if err := web.Validate(path); err != nil {
		return fmt.Errorf("invalid web configuration file %q: %w", path, err)
	}

	return nil
}
