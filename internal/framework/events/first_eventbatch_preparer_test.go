package events_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nginxinc/ingress-nginx-errors/internal/framework/events"
)

var _ = Describe("FirstEventBatchPreparer", func() {
	var preparer *events.FirstEventBatchPreparerImpl

	BeforeEach(func() {
		preparer = events.NewFirstEventBatchPreparerImpl()
	})

	It("should prepare a batch with a single resync event", func(ctx SpecContext) {
		batch, err := preparer.Prepare(ctx)

		Expect(err).ToNot(HaveOccurred())
		Expect(batch).To(Equal(events.EventBatch{events.ResyncEvent{}}))
	})

	It("should return an error when the context is canceled", func(ctx SpecContext) {
		canceledCtx, cancel := context.WithCancel(ctx)
		cancel()

		batch, err := preparer.Prepare(canceledCtx)

		Expect(err).To(MatchError(context.Canceled))
		Expect(batch).To(BeNil())
	})
})
