package runnables

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"go.uber.org/goleak"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/controller-runtime/pkg/manager"
)

func blockUntilDone(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func TestGroup_StopsWhenContextCanceled(t *testing.T) {
	defer goleak.VerifyNone(t)
	g := NewWithT(t)

	group := NewGroup(zap.New())
	group.Add("first", manager.RunnableFunc(blockUntilDone))
	group.Add("second", manager.RunnableFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))

	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error)
	go func() {
		errCh <- group.Start(ctx)
	}()

	cancel()
	g.Eventually(errCh).Should(Receive(BeNil()))
}

func TestGroup_FirstErrorStopsOthers(t *testing.T) {
	defer goleak.VerifyNone(t)
	g := NewWithT(t)

	testErr := errors.New("listen failed")

	group := NewGroup(zap.New())
	group.Add("server", manager.RunnableFunc(func(_ context.Context) error {
		return testErr
	}))
	group.Add("watcher", manager.RunnableFunc(blockUntilDone))

	errCh := make(chan error)
	go func() {
		errCh <- group.Start(context.Background())
	}()

	var err error
	g.Eventually(errCh, 5*time.Second).Should(Receive(&err))
	g.Expect(err).To(MatchError(testErr))
	g.Expect(err.Error()).To(Equal("server failed: listen failed"))
}

func TestGroup_RunnableReturningStopsOthers(t *testing.T) {
	defer goleak.VerifyNone(t)
	g := NewWithT(t)

	group := NewGroup(zap.New())
	group.Add("oneshot", manager.RunnableFunc(func(_ context.Context) error {
		return nil
	}))
	group.Add("watcher", manager.RunnableFunc(blockUntilDone))

	g.Expect(group.Start(context.Background())).To(Succeed())
}

func TestGroup_Empty(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	group := NewGroup(zap.New())

	g.Expect(group.Start(context.Background())).ToNot(Succeed())
}
