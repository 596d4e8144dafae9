package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

var HistogramBuckets = []float64{
	// --- Fast responses (0 - 500ms) ---
	5, 10, 25, 50, 75, 100, 150, 200, 300, 400, 500,

	// --- Medium responses (500ms - 2s) ---
	750, 1000, 1250, 1500, 1750, 2000,

	// --- Slow responses (2s - 15s) ---
	2500, 3000, 4000, 5000, 7500, 10000, 15000,

	// --- Extended range (15s - 60s) ---
	30000, 60000,
}

// Metric is a definition for the name, description, type, ID, and
// prometheus.Collector type (i.e. CounterVec, Summary, etc) of each metric
type Metric struct {
	MetricCollector prometheus.Collector
	ID              string
	Name            string
	Description     string
	Type            string
	Args            []string
}

// NewMetric associates prometheus.Collector based on Metric.Type
func NewMetric(m *Metric, subsystem string) prometheus.Collector {
	var metric prometheus.Collector
	switch m.Type {
	case "counter_vec":
		metric = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Subsystem: subsystem,
				Name:      m.Name,
				Help:      m.Description,
			},
			m.Args,
		)
	case "counter":
		metric = prometheus.NewCounter(
			prometheus.CounterOpts{
				Subsystem: subsystem,
				Name:      m.Name,
				Help:      m.Description,
			},
		)
	case "histogram_vec":
		metric = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Subsystem: subsystem,
				Name:      m.Name,
				Help:      m.Description,
				Buckets:   HistogramBuckets,
			},
			m.Args,
		)
	case "summary_vec":
		metric = prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Subsystem: subsystem,
				Name:      m.Name,
				Help:      m.Description,
			},
			m.Args,
		)
	}
	return metric
}

// register registers c and returns the collector that ends up registered,
// reusing an existing one when the same metric was registered before.
func register(reg prometheus.Registerer, c prometheus.Collector) (prometheus.Collector, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector, nil
		}
		return nil, err
	}
	return c, nil
}

var MetricsLedgerOpDuration = &Metric{
	ID:          "ledgerOpDur",
	Name:        "op_dur_ms",
	Description: "ledger operation latency in milliseconds",
	Type:        "histogram_vec",
	Args:        []string{"op", "outcome"},
}

var MetricsLedgerOpTotal = &Metric{
	ID:          "ledgerOpTotal",
	Name:        "op_total",
	Description: "ledger operations partitioned by outcome",
	Type:        "counter_vec",
	Args:        []string{"op", "outcome"},
}

var MetricsAuditPending = &Metric{
	ID:          "auditPending",
	Name:        "audit_left_pending_total",
	Description: "audit entries left PENDING after a partial failure and awaiting reconciliation",
	Type:        "counter_vec",
	Args:        []string{"action"},
}

const ledgerSubsystem = "ledger"

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// LedgerMetrics records business-level ledger metrics. A nil *LedgerMetrics
// is valid and records nothing.
type LedgerMetrics struct {
	opDur        *prometheus.HistogramVec
	opTotal      *prometheus.CounterVec
	auditPending *prometheus.CounterVec
}

func NewLedgerMetrics(reg prometheus.Registerer) (*LedgerMetrics, error) {
	m := &LedgerMetrics{}
	for _, def := range []*Metric{MetricsLedgerOpDuration, MetricsLedgerOpTotal, MetricsAuditPending} {
		c, err := register(reg, NewMetric(def, ledgerSubsystem))
		if err != nil {
			return nil, err
		}
		switch def {
		case MetricsLedgerOpDuration:
			m.opDur = c.(*prometheus.HistogramVec)
		case MetricsLedgerOpTotal:
			m.opTotal = c.(*prometheus.CounterVec)
		case MetricsAuditPending:
			m.auditPending = c.(*prometheus.CounterVec)
		}
	}
	return m, nil
}

// ObserveOp records latency and outcome of one ledger operation.
func (m *LedgerMetrics) ObserveOp(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.opDur.WithLabelValues(op, outcome).Observe(MillisecondsSince(start))
	m.opTotal.WithLabelValues(op, outcome).Inc()
}

func (m *LedgerMetrics) AuditLeftPending(action string) {
	if m == nil {
		return
	}
	m.auditPending.WithLabelValues(action).Inc()
}

// MillisecondsSince returns the elapsed time since start in milliseconds.
func MillisecondsSince(start time.Time) float64 {
	return float64(time.Since(start).Nanoseconds()) / float64(time.Millisecond)
}

func defaultRegisterer() prometheus.Registerer { return prometheus.DefaultRegisterer }

var Module = fx.Options(
	fx.Provide(defaultRegisterer),
	fx.Provide(NewLedgerMetrics),
)

const (
	RefererKey = "X-Referer"
)
