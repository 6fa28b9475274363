package events

import (
	"context"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 . FirstEventBatchPreparer

// FirstEventBatchPreparer prepares the first batch of events to be processed by the EventHandler.
type FirstEventBatchPreparer interface {
	// Prepare prepares the first event batch.
	Prepare(ctx context.Context) (EventBatch, error)
}

// FirstEventBatchPreparerImpl is an implementation of FirstEventBatchPreparer.
// The first batch always holds a single ResyncEvent, so that the EventHandler starts from a complete view of
// the watched directory rather than from the individual changes reported after the watch was established.
type FirstEventBatchPreparerImpl struct{}

// NewFirstEventBatchPreparerImpl creates a new FirstEventBatchPreparerImpl.
func NewFirstEventBatchPreparerImpl() *FirstEventBatchPreparerImpl {
	return &FirstEventBatchPreparerImpl{}
}

func (p *FirstEventBatchPreparerImpl) Prepare(ctx context.Context) (EventBatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return EventBatch{ResyncEvent{}}, nil
}
