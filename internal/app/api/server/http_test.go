package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fatflowers/txledger/internal/app/service/audit"
	"github.com/fatflowers/txledger/internal/app/service/transaction"
	"github.com/fatflowers/txledger/internal/models"
	"github.com/fatflowers/txledger/internal/repository"
	"github.com/fatflowers/txledger/internal/repository/memory"
	cfgpkg "github.com/fatflowers/txledger/pkg/config"
)

type testEnv struct {
	r      *gin.Engine
	ledger *memory.LedgerStore
	audits *memory.AuditStore
	queue  *memory.Queue
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop().Sugar()
	env := &testEnv{
		ledger: memory.NewLedgerStore(),
		audits: memory.NewAuditStore(),
		queue:  memory.NewQueue(),
	}
	svc := transaction.NewService(transaction.Params{
		Ledger: env.ledger,
		Audit:  audit.New(env.audits, log),
		Queue:  env.queue,
		Log:    log,
	})
	env.r = newEngine()
	registerRoutes(env.r, log, svc, &cfgpkg.Config{
		Storage: cfgpkg.StorageConfig{Driver: cfgpkg.StorageDriverMemory},
		Queue:   cfgpkg.QueueConfig{Driver: cfgpkg.QueueDriverMemory},
	})
	return env
}

func (e *testEnv) post(path string, body any, header map[string]string) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.r.ServeHTTP(w, req)
	return w
}

func TestServer_Healthz(t *testing.T) {
	env := newTestEnv(t)
	w := httptest.NewRecorder()
	env.r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var body struct {
		Data struct {
			Status  string `json:"status"`
			Storage string `json:"storage"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "ok", body.Data.Status)
	require.Equal(t, "memory", body.Data.Storage)
}

func TestServer_VoidFlow(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.ledger.Put(context.Background(), &models.Transaction{
		TransactionID:   "T2",
		Amount:          decimal.RequireFromString("100.00"),
		Status:          models.TransactionStatusCompleted,
		TransactionType: models.TransactionTypeSale,
	}, repository.PutIfAbsent))

	w := env.post("/api/v1/transactions/T2/void", map[string]any{"user_id": "u-1", "reason": "customer request", "void_amount": "20.00"},
		map[string]string{"X-Request-ID": "trace-42"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	entries := env.audits.All()
	require.Len(t, entries, 1)
	require.Equal(t, "trace-42", entries[0].Metadata[models.MetadataTraceID])
	require.Len(t, env.queue.Sent(), 1)

	w = env.post("/api/v1/transactions/T2/void", map[string]any{"user_id": "u-1", "reason": "again"}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.post("/api/v1/transactions/missing/reversal", map[string]any{"reversal_amount": "1"}, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_PaymentFlowUsesUserHeaderAsInitiator(t *testing.T) {
	env := newTestEnv(t)

	w := env.post("/api/v1/payments", map[string]any{"amount": "100.00", "processor_id": "P1", "simulate_status": "success"},
		map[string]string{"X-User-ID": "cashier-3"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Contains(t, w.Body.String(), `"status":"Success"`)

	entries := env.audits.All()
	require.Len(t, entries, 1)
	require.Equal(t, "cashier-3", entries[0].Initiator)
	require.Equal(t, models.AuditActionSale, entries[0].Action)
}
