package templates

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"go.uber.org/goleak"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/nginxinc/ingress-nginx-errors/internal/framework/events"
)

func TestWatcher(t *testing.T) {
	defer goleak.VerifyNone(t)
	g := NewWithT(t)

	dir := t.TempDir()
	eventCh := make(chan interface{})

	watcher := NewWatcher(dir, eventCh, zap.New())

	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error)
	go func() {
		errCh <- watcher.Start(ctx)
	}()

	page := filepath.Join(dir, "404.html")

	// the watch is established asynchronously, so keep writing until the first event arrives
	g.Eventually(func() bool {
		g.Expect(os.WriteFile(page, []byte("not found"), 0o644)).To(Succeed())
		select {
		case e := <-eventCh:
			changeEvent, ok := e.(events.ChangeEvent)
			return ok && changeEvent.Path == page
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}).WithTimeout(5 * time.Second).Should(BeTrue())

	cancel()
	g.Eventually(errCh).Should(Receive(BeNil()))
}

func TestWatcher_DirectoryDoesNotExist(t *testing.T) {
	defer goleak.VerifyNone(t)
	g := NewWithT(t)

	watcher := NewWatcher(filepath.Join(t.TempDir(), "missing"), make(chan interface{}), zap.New())

	err := watcher.Start(context.Background())

	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("failed to watch templates directory"))
}
