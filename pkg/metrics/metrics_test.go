package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestLedgerMetrics_ObserveOp(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewLedgerMetrics(reg)
	require.NoError(t, err)

	m.ObserveOp("void", time.Now(), nil)
	m.ObserveOp("void", time.Now(), errors.New("boom"))
	m.ObserveOp("reverse", time.Now(), nil)
	m.AuditLeftPending("REVERSAL")

	require.Equal(t, float64(1), testutil.ToFloat64(m.opTotal.WithLabelValues("void", OutcomeOK)))
	require.Equal(t, float64(1), testutil.ToFloat64(m.opTotal.WithLabelValues("void", OutcomeError)))
	require.Equal(t, float64(1), testutil.ToFloat64(m.auditPending.WithLabelValues("REVERSAL")))
}

func TestLedgerMetrics_RegisterTwiceReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewLedgerMetrics(reg)
	require.NoError(t, err)
	second, err := NewLedgerMetrics(reg)
	require.NoError(t, err)

	second.ObserveOp("initiate", time.Now(), nil)
	require.Equal(t, float64(1), testutil.ToFloat64(first.opTotal.WithLabelValues("initiate", OutcomeOK)))
}

func TestLedgerMetrics_SeparateRegistriesKeepDefinitionsUntouched(t *testing.T) {
	a, err := NewLedgerMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	b, err := NewLedgerMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	a.ObserveOp("void", time.Now(), nil)
	require.Equal(t, float64(1), testutil.ToFloat64(a.opTotal.WithLabelValues("void", OutcomeOK)))
	require.Equal(t, float64(0), testutil.ToFloat64(b.opTotal.WithLabelValues("void", OutcomeOK)))

	for _, def := range []*Metric{MetricsLedgerOpDuration, MetricsLedgerOpTotal, MetricsAuditPending} {
		require.Nil(t, def.MetricCollector, def.Name)
	}
}

func TestLedgerMetrics_NilIsNoop(t *testing.T) {
	var m *LedgerMetrics
	require.NotPanics(t, func() {
		m.ObserveOp("void", time.Now(), nil)
		m.AuditLeftPending("VOID")
	})
}

func TestPrometheus_CountsRequestsAndServesMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	r := gin.New()
	p := NewPrometheus(NewPrometheusOptions{
		Registry: reg,
		ReqCntURLLabelMappingFn: func(c *gin.Context) string {
			return c.FullPath()
		},
	})
	p.Use(r)
	r.GET("/transactions/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/transactions/T1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, float64(1), testutil.ToFloat64(p.reqCnt.WithLabelValues("200", http.MethodGet, "/transactions/:id", "")))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "req_total")
}
