// Package metrics содержит prometheus метрики notesweb.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Namespace - namespace метрик сервиса.
const Namespace = "notesweb"

// Значения метки outcome.
const (
	OutcomeSuccess   = "success"
	OutcomeFail      = "fail"
	OutcomeTransport = "transport_error"
	OutcomeRejected  = "rejected"
)

// Collector хранит метрики приложения в собственном реестре.
type Collector struct {
	registry *prometheus.Registry

	RemoteRequests *prometheus.CounterVec
	RemoteDuration *prometheus.HistogramVec
	SyncFailures   *prometheus.CounterVec
	Loading        prometheus.Gauge
	ActiveNotes    prometheus.Gauge
	FormRejected   prometheus.Counter
}

// NewCollector создает метрики с указанным namespace и регистрирует их.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		RemoteRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_requests_total",
			Help:      "Requests sent to the remote note service.",
		}, []string{"operation", "outcome"}),
		RemoteDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "remote_request_duration_seconds",
			Help:      "Remote note service request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		SyncFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sync_failures_total",
			Help:      "Sync controller operations that ended in failure.",
		}, []string{"operation"}),
		Loading: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "loading",
			Help:      "1 while the loading indicator is visible.",
		}),
		ActiveNotes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_notes",
			Help:      "Notes in the active collection after the last refresh.",
		}),
		FormRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "form_validation_rejections_total",
			Help:      "Creation form submissions rejected by validation.",
		}),
	}

	c.registry.MustRegister(
		c.RemoteRequests,
		c.RemoteDuration,
		c.SyncFailures,
		c.Loading,
		c.ActiveNotes,
		c.FormRejected,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// Registry возвращает реестр для экспорта через /metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
