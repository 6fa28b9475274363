package collectors

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestEventsCollector(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	c := NewEventsCollector(nil)
	c.ObserveLastEventBatchProcessTime(20 * time.Millisecond)
	c.ObserveLastEventBatchProcessTime(2 * time.Second)

	g.Expect(testutil.CollectAndCount(c, "ingress_nginx_errors_event_batch_processing_milliseconds")).To(Equal(1))
}
