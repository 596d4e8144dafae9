package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fatflowers/txledger/pkg/logctx"
)

// HeaderUserID carries the id of the operator acting on the request. It ends
// up as the initiator of audit entries that do not name one explicitly.
const HeaderUserID = "X-User-ID"

// RequestLoggerMiddleware attaches a request-scoped logger enriched with
// trace_id and user_id (if present) to gin.Context and request context.
func RequestLoggerMiddleware(base *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		traceID := logctx.TraceID(ctx)

		fields := []interface{}{"trace_id", traceID}
		if userID := c.GetHeader(HeaderUserID); userID != "" {
			ctx = logctx.WithInitiator(ctx, userID)
			fields = append(fields, "user_id", userID)
		}
		reqLogger := base.With(fields...)
		c.Set(logctx.GinLoggerKey, reqLogger)
		c.Request = c.Request.WithContext(logctx.WithLogger(ctx, reqLogger))

		// mirror trace id to response header when available
		if traceID != "" {
			c.Writer.Header().Set(HeaderRequestID, traceID)
		}

		c.Next()
	}
}
