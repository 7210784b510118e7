package cmd

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Failure stages reported in wifi_dumper_poll_failures_total.
const (
	stageFetch   = "fetch"
	stageParse   = "parse"
	stageExtract = "extract"
	stagePublish = "publish"
)

// syncMetrics instruments the poll pipeline. A nil *syncMetrics records
// nothing, so one-shot commands skip the registry entirely.
type syncMetrics struct {
	polls         prometheus.Counter
	failures      *prometheus.CounterVec
	activeDevices prometheus.Gauge
	lastSuccess   prometheus.Gauge
	parseDuration prometheus.Histogram
}

func newSyncMetrics(reg prometheus.Registerer) *syncMetrics {
	m := &syncMetrics{
		polls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wifi_dumper_polls_total",
			Help: "Number of report polls attempted.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wifi_dumper_poll_failures_total",
			Help: "Number of failed polls by pipeline stage.",
		}, []string{"stage"}),
		activeDevices: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wifi_dumper_active_devices",
			Help: "Active hosts found by the last successful poll.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wifi_dumper_last_success_timestamp_seconds",
			Help: "Unix time of the last successful publish.",
		}),
		parseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wifi_dumper_parse_duration_seconds",
			Help:    "Time spent turning a report into the active set.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
	reg.MustRegister(m.polls, m.failures, m.activeDevices, m.lastSuccess, m.parseDuration)
	for _, stage := range []string{stageFetch, stageParse, stageExtract, stagePublish} {
		m.failures.WithLabelValues(stage)
	}
	return m
}

func (m *syncMetrics) pollStarted() {
	if m != nil {
		m.polls.Inc()
	}
}

func (m *syncMetrics) failed(stage string) {
	if m != nil {
		m.failures.WithLabelValues(stage).Inc()
	}
}

func (m *syncMetrics) parsed(d time.Duration) {
	if m != nil {
		m.parseDuration.Observe(d.Seconds())
	}
}

func (m *syncMetrics) succeeded(active int, at time.Time) {
	if m != nil {
		m.activeDevices.Set(float64(active))
		m.lastSuccess.Set(float64(at.Unix()))
	}
}
