package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fatflowers/txledger/pkg/logctx"
)

func newObservedEngine() (*gin.Engine, *observer.ObservedLogs) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core).Sugar()
	r := gin.New()
	r.Use(TraceMiddleware(), RequestLoggerMiddleware(base), AccessLogMiddleware(base))
	r.GET("/ping", func(c *gin.Context) {
		ctx := c.Request.Context()
		c.JSON(http.StatusOK, gin.H{"trace": logctx.TraceID(ctx), "initiator": logctx.Initiator(ctx)})
	})
	return r, logs
}

func TestMiddleware_PropagatesTraceAndInitiator(t *testing.T) {
	r, logs := newObservedEngine()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "trace-1")
	req.Header.Set(HeaderUserID, "ops-7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "trace-1", w.Header().Get(HeaderRequestID))
	require.JSONEq(t, `{"trace":"trace-1","initiator":"ops-7"}`, w.Body.String())

	access := logs.FilterMessage("http_access").All()
	require.Len(t, access, 1)
	fields := access[0].ContextMap()
	require.Equal(t, "trace-1", fields["trace_id"])
	require.Equal(t, "ops-7", fields["user_id"])
	require.Equal(t, "/ping", fields["path"])
}

func TestTraceMiddleware_GeneratesID(t *testing.T) {
	r, _ := newObservedEngine()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NotEmpty(t, w.Header().Get(HeaderRequestID))
}
