package metrics

import "github.com/prometheus/client_golang/prometheus"

// RedirectMetrics exposes counters/histograms for the webhook redirect flow.
type RedirectMetrics struct {
	redirectsTotal   *prometheus.CounterVec
	leadFetchLatency *prometheus.HistogramVec
	managementTotal  *prometheus.CounterVec
}

func NewRedirectMetrics(reg prometheus.Registerer) *RedirectMetrics {
	m := &RedirectMetrics{
		redirectsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadbridge",
			Subsystem: "redirect",
			Name:      "requests_total",
			Help:      "Total webhook redirect requests",
		}, []string{"mode", "outcome"}),
		leadFetchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "leadbridge",
			Subsystem: "redirect",
			Name:      "lead_fetch_latency_seconds",
			Help:      "Latency of SmartLead lead fetches",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		managementTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadbridge",
			Subsystem: "management",
			Name:      "operations_total",
			Help:      "Total client management operations",
		}, []string{"operation", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.redirectsTotal, m.leadFetchLatency, m.managementTotal)
	return m
}

// ObserveRedirect counts one redirect request. mode is "domain" or
// "username"; outcome is "ok", "client_miss", or "lead_miss".
func (m *RedirectMetrics) ObserveRedirect(mode, outcome string) {
	if m == nil {
		return
	}
	m.redirectsTotal.WithLabelValues(mode, outcome).Inc()
}

func (m *RedirectMetrics) ObserveLeadFetchLatency(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.leadFetchLatency.WithLabelValues(outcome).Observe(seconds)
}

func (m *RedirectMetrics) ObserveManagement(operation, status string) {
	if m == nil {
		return
	}
	m.managementTotal.WithLabelValues(operation, status).Inc()
}
