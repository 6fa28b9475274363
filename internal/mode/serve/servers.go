package serve

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-kit/log"
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/exporter-toolkit/web"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	"sigs.k8s.io/controller-runtime/pkg/manager"

	"github.com/nginxinc/ingress-nginx-errors/internal/framework/helpers"
)

const (
	readHeaderTimeout = 5 * time.Second

	metricsPath = "/metrics"
	healthzPath = "/healthz"
	readyzPath  = "/readyz"
)

// httpServer runs an http.Server until the context is canceled, then shuts it down gracefully.
// Implements controller-runtime manager.Runnable.
type httpServer struct {
	server *http.Server
	// serve blocks serving the server. It must return http.ErrServerClosed after Shutdown.
	serve           func(*http.Server) error
	logger          logr.Logger
	shutdownTimeout time.Duration
}

// Start starts the server and blocks until the context is canceled or the server fails.
func (s *httpServer) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		errCh <- s.serve(s.server)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped unexpectedly: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

var _ manager.Runnable = &httpServer{}

// newErrorPageServer creates the server that serves the error pages on the listen address.
func newErrorPageServer(
	addr string,
	handler http.Handler,
	logger logr.Logger,
	shutdownTimeout time.Duration,
) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		serve: func(srv *http.Server) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}

			logger.Info(fmt.Sprintf("Listening on http://%s", ln.Addr()))

			return srv.Serve(ln)
		},
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
	}
}

// newMetricsServer creates the server that exposes the metrics of the gatherer. TLS and authentication are
// configured by the exporter-toolkit web configuration file, if any.
func newMetricsServer(
	port int,
	webConfigFile string,
	gatherer prometheus.Gatherer,
	promLogger log.Logger,
	logger logr.Logger,
	shutdownTimeout time.Duration,
) *httpServer {
	mux := http.NewServeMux()
	mux.Handle(metricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return &httpServer{
		server: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		serve: func(srv *http.Server) error {
			flagConfig := web.FlagConfig{
				WebListenAddresses: helpers.GetPointer([]string{fmt.Sprintf(":%d", port)}),
				WebConfigFile:      helpers.GetPointer(webConfigFile),
			}
			return web.ListenAndServe(srv, &flagConfig, promLogger)
		},
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
	}
}

// newHealthHandler returns the handler of the health probe server.
// /healthz reports if the process is alive and /readyz if the Pod is ready.
func newHealthHandler(readyCheck healthz.Checker) http.Handler {
	healthzHandler := http.StripPrefix(healthzPath, &healthz.Handler{
		Checks: map[string]healthz.Checker{"ping": healthz.Ping},
	})
	readyzHandler := http.StripPrefix(readyzPath, &healthz.Handler{
		Checks: map[string]healthz.Checker{"templates": readyCheck},
	})

	mux := http.NewServeMux()
	mux.Handle(healthzPath, healthzHandler)
	mux.Handle(healthzPath+"/", healthzHandler)
	mux.Handle(readyzPath, readyzHandler)
	mux.Handle(readyzPath+"/", readyzHandler)

	return mux
}

// newHealthServer creates the health probe server.
func newHealthServer(
	port int,
	readyCheck healthz.Checker,
	logger logr.Logger,
	shutdownTimeout time.Duration,
) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           newHealthHandler(readyCheck),
			ReadHeaderTimeout: readHeaderTimeout,
		},
		serve: func(srv *http.Server) error {
			return srv.ListenAndServe()
		},
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
	}
}
