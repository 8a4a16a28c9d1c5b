package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once            sync.Once
	runDuration     *prom.HistogramVec
	checkDuration   prom.Histogram
	publishDuration prom.Histogram
	runOutcome      *prom.CounterVec
	rejections      prom.Counter
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.runDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "ossgate",
			Name:      "run_duration_seconds",
			Help:      "Duration of step runs by build kind",
			Buckets:   prom.DefBuckets,
		}, []string{"kind"})
		pr.checkDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "ossgate",
			Name:      "policy_check_duration_seconds",
			Help:      "Duration of remote policy compliance checks",
			Buckets:   prom.DefBuckets,
		})
		pr.publishDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "ossgate",
			Name:      "publish_duration_seconds",
			Help:      "Duration of inventory update calls",
			Buckets:   prom.DefBuckets,
		})
		pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "ossgate",
			Name:      "run_outcomes_total",
			Help:      "Run outcomes by final status",
		}, []string{"outcome"})
		pr.rejections = prom.NewCounter(prom.CounterOpts{
			Namespace: "ossgate",
			Name:      "policy_rejections_total",
			Help:      "Total dependency rejections reported by policy checks",
		})
		reg.MustRegister(pr.runDuration, pr.checkDuration, pr.publishDuration, pr.runOutcome, pr.rejections)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveRunDuration(kind string, d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveCheckDuration(d time.Duration) {
	if p == nil || p.checkDuration == nil {
		return
	}
	p.checkDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObservePublishDuration(d time.Duration) {
	if p == nil || p.publishDuration == nil {
		return
	}
	p.publishDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(outcome string) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) IncRejections(n int) {
	if p == nil || p.rejections == nil || n <= 0 {
		return
	}
	p.rejections.Add(float64(n))
}
