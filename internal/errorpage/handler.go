package errorpage

import (
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/nginxinc/ingress-nginx-errors/internal/templates"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . PageStore

// PageStore provides the contents of error pages by file name.
type PageStore interface {
	// Get returns the contents of the page. The error wraps fs.ErrNotExist if the page doesn't exist.
	Get(name string) ([]byte, error)
	// Exists returns true if the page exists.
	Exists(name string) bool
}

//counterfeiter:generate . ResponseCollector

// ResponseCollector records the responses of the Handler.
type ResponseCollector interface {
	ObserveResponse(code string, format string, result Result, duration time.Duration)
}

// Result is the outcome of a request.
type Result string

const (
	// ResultServed means the error page was found and returned.
	ResultServed Result = "served"
	// ResultMissing means there is no error page for the requested code and format.
	ResultMissing Result = "missing"
	// ResultUnknownPath means the request was for a path other than RootPath.
	ResultUnknownPath Result = "unknown_path"
)

const (
	// otherLabel replaces label values that are not bounded, so that the number of metric series stays bounded.
	otherLabel = "other"
)

// HandlerConfig is the configuration for the Handler.
type HandlerConfig struct {
	// Store provides the error pages.
	Store PageStore
	// Collector records the responses.
	Collector ResponseCollector
	// Logger is the logger.
	Logger logr.Logger
	// PreserveStatus makes the Handler respond with the requested code instead of 200 when the code is an
	// HTTP error status (400-599).
	PreserveStatus bool
}

// Handler serves error pages for ingress-nginx.
type Handler struct {
	cfg HandlerConfig
}

// NewHandler creates a new Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		cfg: cfg,
	}
}

// NewRouter returns an http.Handler that serves the Handler on RootPath and an empty 404 response on any other path.
func NewRouter(h *Handler) http.Handler {
	router := mux.NewRouter()
	// Paths are matched as sent; "/a/.." must not be redirected to RootPath.
	router.SkipClean(true)

	router.Handle(RootPath, h)
	router.NotFoundHandler = http.HandlerFunc(h.serveUnknownPath)

	return router
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	logger := h.requestLogger(r)

	code, err := ParseCode(r.Header.Get(CodeHeader))
	if err != nil {
		logger.Info("Unexpected error reading return code", "error", err.Error(), "default", DefaultCode)
	}

	format, err := ParseFormat(r.Header.Get(FormatHeader), func(ext string) bool {
		return h.cfg.Store.Exists(templates.PageName(code, ext))
	})
	if err != nil {
		logger.Info("Unexpected error reading the media type", "error", err.Error(), "default", DefaultFormat)
	}

	name := templates.PageName(code, format)
	logger = logger.WithValues("code", code, "format", format, "page", name)

	content, err := h.cfg.Store.Get(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("Error page not found")
		} else {
			logger.Error(err, "Unexpected error reading the error page")
		}

		w.WriteHeader(http.StatusNotFound)
		h.cfg.Collector.ObserveResponse(codeLabel(code), otherLabel, ResultMissing, time.Since(start))
		return
	}

	if contentType := mime.TypeByExtension("." + format); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))

	status := http.StatusOK
	if h.cfg.PreserveStatus && code >= 400 && code <= 599 {
		status = int(code)
	}

	w.WriteHeader(status)
	if _, err := w.Write(content); err != nil {
		logger.V(1).Info("Failed to write the error page", "error", err.Error())
	}

	logger.V(1).Info("Served error page", "status", status)
	h.cfg.Collector.ObserveResponse(codeLabel(code), format, ResultServed, time.Since(start))
}

func (h *Handler) serveUnknownPath(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	h.requestLogger(r).V(1).Info("Request for unknown path", "path", r.URL.Path)

	w.WriteHeader(http.StatusNotFound)
	h.cfg.Collector.ObserveResponse(otherLabel, otherLabel, ResultUnknownPath, time.Since(start))
}

// requestLogger returns a logger with the ingress-nginx context of the request.
func (h *Handler) requestLogger(r *http.Request) logr.Logger {
	requestID := r.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	logger := h.cfg.Logger.WithValues("requestID", requestID)

	if !logger.V(1).Enabled() {
		return logger
	}

	return logger.WithValues(
		"originalURI", r.Header.Get(OriginalURIHeader),
		"namespace", r.Header.Get(NamespaceHeader),
		"ingress", r.Header.Get(IngressNameHeader),
		"service", r.Header.Get(ServiceNameHeader),
		"servicePort", r.Header.Get(ServicePortHeader),
	)
}

func codeLabel(code uint32) string {
	if code < 100 || code > 599 {
		return otherLabel
	}
	return strconv.FormatUint(uint64(code), 10)
}
