package app

import (
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/fatflowers/txledger/internal/app/api/server"
	"github.com/fatflowers/txledger/internal/app/service/audit"
	"github.com/fatflowers/txledger/internal/app/service/transaction"
	"github.com/fatflowers/txledger/pkg/config"
	"github.com/fatflowers/txledger/pkg/logger"
	"github.com/fatflowers/txledger/pkg/metrics"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	metrics.Module,
	server.Module,
	audit.Module,
	transaction.Module,
)

// New assembles the application for cfg: the shared modules plus the store,
// queue and encryption drivers cfg selects.
func New(cfg *config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		fx.WithLogger(func(l *zap.SugaredLogger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Desugar()}
		}),
		Module,
		Drivers(cfg),
	)
}
