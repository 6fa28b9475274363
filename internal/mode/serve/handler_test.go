package serve

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/nginxinc/ingress-nginx-errors/internal/framework/events"
	"github.com/nginxinc/ingress-nginx-errors/internal/metrics/collectors"
	"github.com/nginxinc/ingress-nginx-errors/internal/templates"
)

var _ = Describe("eventHandler", func() {
	var (
		handler            *eventHandlerImpl
		fsys               afero.Fs
		store              *templates.Store
		templatesCollector *collectors.TemplatesCollector
		healthChecker      *templatesLoadedChecker
		ctx                context.Context
		cancel             context.CancelFunc
	)

	const reloadMetrics = "ingress_nginx_errors_template_reloads_total"
	const reloadErrorMetrics = "ingress_nginx_errors_template_reload_errors_total"
	const pagesMetrics = "ingress_nginx_errors_templates"

	newHandler := func(fsys afero.Fs) {
		var err error
		store, err = templates.NewStore(templates.StoreConfig{
			Fs:        fsys,
			Logger:    zap.New(),
			CacheSize: 10,
			Indexed:   true,
		})
		Expect(err).ToNot(HaveOccurred())

		templatesCollector = collectors.NewTemplatesCollector(nil)
		healthChecker = newTemplatesLoadedChecker()

		handler = newEventHandlerImpl(eventHandlerConfig{
			store:                  store,
			templatesCollector:     templatesCollector,
			metricsCollector:       collectors.NewEventsNoopCollector(),
			templatesLoadedChecker: healthChecker,
		})
	}

	expectMetric := func(name string, value float64) {
		ExpectWithOffset(1, metricValue(templatesCollector, name)).To(Equal(value))
	}

	BeforeEach(func() {
		ctx, cancel = context.WithCancel(context.Background()) //nolint:fatcontext // ignore for test

		fsys = afero.NewMemMapFs()
		Expect(afero.WriteFile(fsys, "/404.html", []byte("not found"), 0o644)).To(Succeed())
		Expect(afero.WriteFile(fsys, "/500.json", []byte(`{}`), 0o644)).To(Succeed())

		newHandler(fsys)
	})

	AfterEach(func() {
		cancel()
	})

	It("should reload the templates directory on the first batch and become ready", func() {
		Expect(healthChecker.readyCheck(nil)).ToNot(Succeed())

		handler.HandleEventBatch(ctx, zap.New(), events.EventBatch{events.ResyncEvent{}})

		Expect(store.Exists("404.html")).To(BeTrue())
		Expect(store.Exists("500.json")).To(BeTrue())
		Expect(healthChecker.readyCheck(nil)).To(Succeed())
		Expect(healthChecker.getReadyCh()).To(BeClosed())

		expectMetric(reloadMetrics, 1)
		expectMetric(reloadErrorMetrics, 0)
		expectMetric(pagesMetrics, 2)
	})

	It("should reload the templates directory once for a batch of changes", func() {
		handler.HandleEventBatch(ctx, zap.New(), events.EventBatch{events.ResyncEvent{}})

		Expect(afero.WriteFile(fsys, "/503.html", []byte("unavailable"), 0o644)).To(Succeed())
		Expect(fsys.Remove("/500.json")).To(Succeed())

		batch := events.EventBatch{
			events.ChangeEvent{Path: "/templates/503.html", Op: "CREATE"},
			events.ChangeEvent{Path: "/templates/500.json", Op: "REMOVE"},
		}
		handler.HandleEventBatch(ctx, zap.New(), batch)

		Expect(store.Exists("503.html")).To(BeTrue())
		Expect(store.Exists("500.json")).To(BeFalse())

		expectMetric(reloadMetrics, 2)
		expectMetric(pagesMetrics, 2)
	})

	It("should become ready even if the first reload fails", func() {
		newHandler(afero.NewBasePathFs(afero.NewMemMapFs(), "/missing"))

		handler.HandleEventBatch(ctx, zap.New(), events.EventBatch{events.ResyncEvent{}})

		Expect(healthChecker.readyCheck(nil)).To(Succeed())
		expectMetric(reloadMetrics, 0)
		expectMetric(reloadErrorMetrics, 1)
	})

	It("should panic for an unknown event type", func() {
		e := &struct{}{}

		handle := func() {
			handler.HandleEventBatch(ctx, zap.New(), events.EventBatch{e})
		}

		Expect(handle).Should(Panic())
	})
})

// metricValue returns the value of the counter or gauge with the given name collected by c.
func metricValue(c prometheus.Collector, name string) float64 {
	reg := prometheus.NewPedanticRegistry()
	ExpectWithOffset(1, reg.Register(c)).To(Succeed())

	families, err := reg.Gather()
	ExpectWithOffset(1, err).ToNot(HaveOccurred())

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}

		ExpectWithOffset(1, mf.GetMetric()).To(HaveLen(1))
		m := mf.GetMetric()[0]

		if m.GetCounter() != nil {
			return m.GetCounter().GetValue()
		}
		return m.GetGauge().GetValue()
	}

	Fail("metric " + name + " not found")
	return 0
}
