package serve

import (
	"errors"
	"net/http"
	"sync"
)

// newTemplatesLoadedChecker creates a new templatesLoadedChecker.
func newTemplatesLoadedChecker() *templatesLoadedChecker {
	return &templatesLoadedChecker{
		readyCh: make(chan struct{}),
	}
}

// templatesLoadedChecker is used to check if the templates directory was loaded and the Pod is ready.
type templatesLoadedChecker struct {
	// readyCh is a channel that is initialized in newTemplatesLoadedChecker and closed once the Pod is ready.
	readyCh chan struct{}
	lock    sync.RWMutex
	ready   bool
}

// readyCheck returns the ready-state of the Pod. It satisfies the controller-runtime Checker type.
// We are considered ready after the handler processed the first batch, even if loading the templates directory
// failed: pages are still read from the directory when they are requested.
func (h *templatesLoadedChecker) readyCheck(_ *http.Request) error {
	h.lock.RLock()
	defer h.lock.RUnlock()

	if !h.ready {
		return errors.New("templates directory has not been loaded yet")
	}

	return nil
}

// setAsReady marks the health check as ready. Subsequent calls have no effect.
func (h *templatesLoadedChecker) setAsReady() {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.ready {
		return
	}

	h.ready = true
	close(h.readyCh)
}

// getReadyCh returns a read-only channel, which is closed once the Pod is ready.
func (h *templatesLoadedChecker) getReadyCh() <-chan struct{} {
	return h.readyCh
}
