package metrics

import (
	"fleetdesk/internal/reconcile"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fleetdesk"

// Metrics owns a private registry with HTTP and fleet health series.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	bookings        *prometheus.GaugeVec
	compliance      *prometheus.GaugeVec
	maintenance     *prometheus.GaugeVec
	amounts         *prometheus.GaugeVec
	jobRuns         *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		bookings: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bookings",
			Help:      "Bookings by return tag at the last sweep.",
		}, []string{"tag"}),
		compliance: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "compliance_records",
			Help:      "Compliance records by expiry tier at the last sweep.",
		}, []string{"status"}),
		maintenance: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "maintenance_tasks",
			Help:      "Maintenance tasks by normalized status at the last sweep.",
		}, []string{"tag"}),
		amounts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ledger_amount",
			Help:      "Fleet-wide ledger totals at the last sweep.",
		}, []string{"kind"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduler_runs_total",
			Help:      "Scheduled job runs by job and result.",
		}, []string{"job", "result"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestsTotal,
		m.requestDuration,
		m.bookings,
		m.compliance,
		m.maintenance,
		m.amounts,
		m.jobRuns,
	)

	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return m.handler
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ObserveFleet publishes the latest sweep figures.
func (m *Metrics) ObserveFleet(bookings reconcile.BookingCounts, compliance reconcile.ComplianceCounts, maintenance reconcile.MaintenanceCounts, totals reconcile.Totals) {
	for tag, count := range bookings.ByTag {
		m.bookings.WithLabelValues(string(tag)).Set(float64(count))
	}

	m.compliance.WithLabelValues(string(reconcile.ComplianceValid)).Set(float64(compliance.Valid))
	m.compliance.WithLabelValues(string(reconcile.ComplianceExpiringSoon)).Set(float64(compliance.ExpiringSoon))
	m.compliance.WithLabelValues(string(reconcile.ComplianceExpired)).Set(float64(compliance.Expired))

	m.maintenance.WithLabelValues(string(reconcile.MaintenanceScheduled)).Set(float64(maintenance.Scheduled))
	m.maintenance.WithLabelValues(string(reconcile.MaintenanceInShop)).Set(float64(maintenance.InShop))
	m.maintenance.WithLabelValues(string(reconcile.MaintenanceOverdue)).Set(float64(maintenance.Overdue))
	m.maintenance.WithLabelValues(string(reconcile.MaintenanceDone)).Set(float64(maintenance.Done))

	m.amounts.WithLabelValues("billed").Set(totals.Billed.InexactFloat64())
	m.amounts.WithLabelValues("unpaid_principal").Set(totals.UnpaidPrincipal.InexactFloat64())
	m.amounts.WithLabelValues("outstanding").Set(totals.Outstanding.InexactFloat64())
}

func (m *Metrics) ObserveJob(job string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}

	m.jobRuns.WithLabelValues(job, result).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}

	return "unknown"
}
