package logctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromCtx_PrefersAttachedLogger(t *testing.T) {
	base := zap.NewNop().Sugar()
	core, logs := observer.New(zap.InfoLevel)
	attached := zap.New(core).Sugar()

	ctx := WithLogger(context.Background(), attached)
	FromCtx(ctx, base).Infow("hello")
	require.Equal(t, 1, logs.Len())
}

func TestFromCtx_EnrichesBase(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core).Sugar()

	ctx := WithInitiator(WithTraceID(context.Background(), "trace-1"), "user-9")
	FromCtx(ctx, base).Infow("hello")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	require.Equal(t, "trace-1", fields["trace_id"])
	require.Equal(t, "user-9", fields["initiator"])
}
