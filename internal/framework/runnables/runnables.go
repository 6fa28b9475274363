package runnables

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"
	"sigs.k8s.io/controller-runtime/pkg/manager"
)

type namedRunnable struct {
	manager.Runnable
	name string
}

// Group runs a set of Runnables together.
// When any Runnable returns, the context passed to the others is canceled, and Start returns after all of them
// have returned.
type Group struct {
	logger    logr.Logger
	runnables []namedRunnable
}

// NewGroup creates a new Group.
func NewGroup(logger logr.Logger) *Group {
	return &Group{
		logger: logger,
	}
}

// Add adds a Runnable to the Group. It must be called before Start.
func (g *Group) Add(name string, r manager.Runnable) {
	g.runnables = append(g.runnables, namedRunnable{Runnable: r, name: name})
}

// Start starts all Runnables of the Group and blocks until all of them return.
// It returns the first error returned by a Runnable. A context.Canceled error returned by a Runnable after the
// Group began stopping is not considered an error.
func (g *Group) Start(ctx context.Context) error {
	if len(g.runnables) == 0 {
		return errors.New("no runnables to start")
	}

	eg, egCtx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(egCtx)
	defer cancel()

	for _, r := range g.runnables {
		r := r
		eg.Go(func() error {
			defer cancel()

			logger := g.logger.WithValues("runnable", r.name)
			logger.V(1).Info("Starting runnable")

			err := r.Start(runCtx)
			if err != nil && !(errors.Is(err, context.Canceled) && runCtx.Err() != nil) {
				return fmt.Errorf("%s failed: %w", r.name, err)
			}

			logger.V(1).Info("Runnable stopped")
			return nil
		})
	}

	return eg.Wait()
}
