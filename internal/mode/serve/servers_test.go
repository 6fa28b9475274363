package serve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/nginxinc/ingress-nginx-errors/internal/metrics/collectors"
)

// getFreePort returns a port that was free at the time of the call.
func getFreePort(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find a free port: %v", err)
	}
	defer ln.Close()

	return ln.Addr().(*net.TCPAddr).Port
}

func httpGet(url string) (int, string, error) {
	resp, err := http.Get(url) //nolint:gosec,noctx // test
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", err
	}

	return resp.StatusCode, string(body), nil
}

func TestHTTPServer_Shutdown(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	g.Expect(err).ToNot(HaveOccurred())

	srv := &httpServer{
		server: &http.Server{
			Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("ok"))
			}),
			ReadHeaderTimeout: time.Second,
		},
		serve: func(srv *http.Server) error {
			return srv.Serve(ln)
		},
		logger:          zap.New(),
		shutdownTimeout: time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.Start(ctx)
	}()

	url := fmt.Sprintf("http://%s/", ln.Addr())
	g.Eventually(func() (string, error) {
		_, body, err := httpGet(url)
		return body, err
	}).WithTimeout(5 * time.Second).Should(Equal("ok"))

	cancel()

	g.Eventually(errCh).WithTimeout(5 * time.Second).Should(Receive(BeNil()))

	_, _, err = httpGet(url)
	g.Expect(err).To(HaveOccurred())
}

func TestHTTPServer_ServeFails(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	testErr := errors.New("test")

	srv := &httpServer{
		server: &http.Server{ReadHeaderTimeout: time.Second},
		serve: func(_ *http.Server) error {
			return testErr
		},
		logger:          zap.New(),
		shutdownTimeout: time.Second,
	}

	err := srv.Start(context.Background())
	g.Expect(err).To(MatchError(testErr))
}

func TestHealthHandler(t *testing.T) {
	t.Parallel()

	healthChecker := newTemplatesLoadedChecker()
	handler := newHealthHandler(healthChecker.readyCheck)

	get := func(path string) int {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec.Code
	}

	tests := []struct {
		name         string
		path         string
		expNotReady  int
		expWhenReady int
	}{
		{
			name:         "healthz",
			path:         "/healthz",
			expNotReady:  http.StatusOK,
			expWhenReady: http.StatusOK,
		},
		{
			name:         "healthz ping check",
			path:         "/healthz/ping",
			expNotReady:  http.StatusOK,
			expWhenReady: http.StatusOK,
		},
		{
			name:         "readyz",
			path:         "/readyz",
			expNotReady:  http.StatusInternalServerError,
			expWhenReady: http.StatusOK,
		},
		{
			name:         "readyz templates check",
			path:         "/readyz/templates",
			expNotReady:  http.StatusInternalServerError,
			expWhenReady: http.StatusOK,
		},
		{
			name:         "unknown check",
			path:         "/readyz/unknown",
			expNotReady:  http.StatusNotFound,
			expWhenReady: http.StatusNotFound,
		},
	}

	g := NewWithT(t)
	for _, test := range tests {
		g.Expect(get(test.path)).To(Equal(test.expNotReady), test.name)
	}

	healthChecker.setAsReady()

	for _, test := range tests {
		g.Expect(get(test.path)).To(Equal(test.expWhenReady), test.name)
	}
}

func TestMetricsServer(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	registry := prometheus.NewRegistry()
	templatesCollector := collectors.NewTemplatesCollector(nil)
	g.Expect(registry.Register(templatesCollector)).To(Succeed())
	templatesCollector.SetPages(3)

	promLogger, err := newLeveledPrometheusLogger()
	g.Expect(err).ToNot(HaveOccurred())

	port := getFreePort(t)
	srv := newMetricsServer(port, "", registry, promLogger, zap.New(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.Start(ctx)
	}()

	url := fmt.Sprintf("http://127.0.0.1:%d/metrics", port)
	g.Eventually(func() (string, error) {
		_, body, err := httpGet(url)
		return body, err
	}).WithTimeout(5 * time.Second).Should(ContainSubstring("ingress_nginx_errors_templates 3"))

	cancel()

	g.Eventually(errCh).WithTimeout(5 * time.Second).Should(Receive(BeNil()))
}
