package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the pipeline counters exposed on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	StudentsEvaluated prometheus.Counter
	EligibleResults   prometheus.Counter
	BundlesBuilt      prometheus.Counter
	RunsCompleted     prometheus.Counter
	RunsFailed        prometheus.Counter
	DeliveriesSent    *prometheus.CounterVec
	DeliveriesFailed  *prometheus.CounterVec
	DeliveriesSkipped *prometheus.CounterVec
}

// New registers the reminder pipeline metrics on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		StudentsEvaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "autoremind_students_evaluated_total",
			Help: "Opted-in students evaluated by the eligibility engine.",
		}),
		EligibleResults: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "autoremind_eligible_assignments_total",
			Help: "Assignment payloads that passed the eligibility rule.",
		}),
		BundlesBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "autoremind_bundles_built_total",
			Help: "Reminder bundles handed to delivery.",
		}),
		RunsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "autoremind_runs_completed_total",
			Help: "Reminder runs that completed.",
		}),
		RunsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "autoremind_runs_failed_total",
			Help: "Reminder runs aborted by a source or configuration error.",
		}),
		DeliveriesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "autoremind_deliveries_sent_total",
			Help: "Messages delivered, by channel.",
		}, []string{"channel"}),
		DeliveriesFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "autoremind_deliveries_failed_total",
			Help: "Delivery attempts that failed, by channel.",
		}, []string{"channel"}),
		DeliveriesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "autoremind_deliveries_skipped_total",
			Help: "Deliveries skipped (disabled channel or empty target), by channel.",
		}, []string{"channel"}),
	}

	registry.MustRegister(
		m.StudentsEvaluated,
		m.EligibleResults,
		m.BundlesBuilt,
		m.RunsCompleted,
		m.RunsFailed,
		m.DeliveriesSent,
		m.DeliveriesFailed,
		m.DeliveriesSkipped,
	)

	return m
}

// Handler exposes the registry for the gin /metrics route.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
