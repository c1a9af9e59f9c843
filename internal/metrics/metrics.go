package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/techreviewhub/automation/internal/domain"
)

// Metrics groups all Prometheus instruments used across the application.
// Registered once at startup via New(); passed by pointer wherever needed.
type Metrics struct {
	JobsGenerated    *prometheus.CounterVec
	JobsFailed       *prometheus.CounterVec
	QueueDepth       *prometheus.GaugeVec
	RevenueCollected *prometheus.CounterVec
	SourceFailures   *prometheus.CounterVec
	Transfers        *prometheus.CounterVec
}

// New registers all instruments with the given Prometheus registerer and
// returns the populated Metrics struct.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		JobsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "content_jobs_generated_total",
			Help: "Total number of content jobs that produced a persisted artifact.",
		}, []string{"kind"}),

		JobsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "content_jobs_failed_total",
			Help: "Total number of content job runs that failed and were requeued.",
		}, []string{"kind"}),

		QueueDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "queue_depth",
			Help: "Current number of jobs waiting in each durable queue.",
		}, []string{"queue"}),

		RevenueCollected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "revenue_collected_total",
			Help: "Total revenue collected, by source.",
		}, []string{"source"}),

		SourceFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "revenue_source_failures_total",
			Help: "Total collection attempts where a source was unreachable.",
		}, []string{"source"}),

		Transfers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "transfers_total",
			Help: "Total payout attempts, by recorded status.",
		}, []string{"status"}),
	}

	reg.MustRegister(
		m.JobsGenerated,
		m.JobsFailed,
		m.QueueDepth,
		m.RevenueCollected,
		m.SourceFailures,
		m.Transfers,
	)

	return m
}

// RunnerHooks returns the metric callbacks expected by runner.Hooks.
func (m *Metrics) RunnerHooks() (onGenerated, onFailed func(domain.JobKind)) {
	onGenerated = func(k domain.JobKind) {
		m.JobsGenerated.WithLabelValues(string(k)).Inc()
	}
	onFailed = func(k domain.JobKind) {
		m.JobsFailed.WithLabelValues(string(k)).Inc()
	}
	return
}

// CollectorHooks returns the metric callbacks expected by revenue.Hooks.
func (m *Metrics) CollectorHooks() (onCollected func(string, float64), onFailed func(string)) {
	onCollected = func(source string, amount float64) {
		m.RevenueCollected.WithLabelValues(source).Add(amount)
	}
	onFailed = func(source string) {
		m.SourceFailures.WithLabelValues(source).Inc()
	}
	return
}

// TransferHook returns the metric callback expected by the transfer executor.
func (m *Metrics) TransferHook() func(domain.TransferStatus) {
	return func(status domain.TransferStatus) {
		m.Transfers.WithLabelValues(string(status)).Inc()
	}
}
