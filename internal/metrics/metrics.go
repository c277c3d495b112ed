// Package metrics содержит Prometheus-метрики пакетного аудита.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Результаты аудита для метки outcome
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder фиксирует события аудита
type Recorder interface {
	ObserveAudit(outcome string, duration time.Duration)
	IncRetry()
	ObserveBatch(size int)
}

// Metrics реализует Recorder поверх Prometheus
type Metrics struct {
	audits    *prometheus.CounterVec
	retries   prometheus.Counter
	duration  prometheus.Histogram
	batchSize prometheus.Histogram
}

// New создает метрики и регистрирует их в reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		audits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lighthouse_runner",
			Name:      "audits_total",
			Help:      "Number of audited URLs by outcome.",
		}, []string{"outcome"}),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lighthouse_runner",
			Name:      "audit_retries_total",
			Help:      "Number of audit retries after a failed attempt.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lighthouse_runner",
			Name:      "audit_duration_seconds",
			Help:      "Time spent auditing one URL including retries.",
			Buckets:   []float64{1, 5, 10, 20, 30, 60, 120, 300},
		}),
		batchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lighthouse_runner",
			Name:      "batch_size",
			Help:      "Number of URLs per batch.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}),
	}
	reg.MustRegister(m.audits, m.retries, m.duration, m.batchSize)
	return m
}

// ObserveAudit учитывает завершенный аудит одного URL
func (m *Metrics) ObserveAudit(outcome string, duration time.Duration) {
	m.audits.WithLabelValues(outcome).Inc()
	m.duration.Observe(duration.Seconds())
}

// IncRetry учитывает повторную попытку
func (m *Metrics) IncRetry() {
	m.retries.Inc()
}

// ObserveBatch учитывает размер пакета
func (m *Metrics) ObserveBatch(size int) {
	m.batchSize.Observe(float64(size))
}

// Nop - Recorder, который ничего не делает
type Nop struct{}

func (Nop) ObserveAudit(string, time.Duration) {}
func (Nop) IncRetry()                          {}
func (Nop) ObserveBatch(int)                   {}
