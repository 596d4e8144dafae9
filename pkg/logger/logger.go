package logger

import (
    "fmt"

    "go.uber.org/fx"
    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"

    "github.com/fatflowers/txledger/pkg/config"
)

func New(cfg *config.Config) (*zap.SugaredLogger, error) {
    zcfg := zap.NewProductionConfig()
    zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
    zcfg.EncoderConfig.TimeKey = "time"
    if cfg != nil && cfg.Log.Level != "" {
        lvl, err := zap.ParseAtomicLevel(cfg.Log.Level)
        if err != nil {
            return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
        }
        zcfg.Level = lvl
    }
    if cfg != nil && cfg.Env == config.EnvDev {
        zcfg.Development = true
    }
    l, err := zcfg.Build()
    if err != nil {
        return nil, err
    }
    return l.Sugar().With("service", "txledger"), nil
}

var Module = fx.Options(
    fx.Provide(New),
)
