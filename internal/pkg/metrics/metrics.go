// Package metrics exposes ledger and attendance counters in Prometheus format.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"

	"github.com/cmlabs-hris/tuition-backend-go/internal/pkg/batch"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	LedgerFee    = "fee"
	LedgerSalary = "salary"
)

type Metrics struct {
	registry   *prometheus.Registry
	ledgerRows *prometheus.CounterVec
	payments   *prometheus.CounterVec
	attendance prometheus.Counter
	schedules  *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ledgerRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tuition",
			Name:      "ledger_generation_rows_total",
			Help:      "Rows handled by monthly ledger generation, by ledger and outcome.",
		}, []string{"ledger", "outcome"}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tuition",
			Name:      "ledger_payments_total",
			Help:      "Ledger entries marked paid.",
		}, []string{"ledger"}),
		attendance: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tuition",
			Name:      "attendance_records_marked_total",
			Help:      "Attendance records written, including overwrites.",
		}),
		schedules: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tuition",
			Name:      "schedule_changes_total",
			Help:      "Class schedule mutations, by action.",
		}, []string{"action"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ledgerRows, m.payments, m.attendance, m.schedules,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveGeneration(ledger string, r batch.Result) {
	if m == nil {
		return
	}
	m.ledgerRows.WithLabelValues(ledger, "created").Add(float64(r.Created))
	m.ledgerRows.WithLabelValues(ledger, "skipped").Add(float64(r.Skipped))
	m.ledgerRows.WithLabelValues(ledger, "failed").Add(float64(len(r.Failures)))
}

func (m *Metrics) PaymentRecorded(ledger string) {
	if m == nil {
		return
	}
	m.payments.WithLabelValues(ledger).Inc()
}

func (m *Metrics) AttendanceMarked(n int) {
	if m == nil {
		return
	}
	m.attendance.Add(float64(n))
}

func (m *Metrics) ScheduleChanged(action string) {
	if m == nil {
		return
	}
	m.schedules.WithLabelValues(action).Inc()
}
