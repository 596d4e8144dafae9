package queue

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/txledger/internal/repository"
	cfgpkg "github.com/fatflowers/txledger/pkg/config"
)

func newSQS(awsCfg aws.Config, cfg *cfgpkg.Config) repository.NotificationQueue {
	return NewSQSQueue(NewSQSClient(awsCfg, cfg), cfg.Queue.SQSURL, cfg.Queue.MessageGroupID)
}

func newRedis(lc fx.Lifecycle, l *zap.SugaredLogger, cfg *cfgpkg.Config) repository.NotificationQueue {
	rdb := NewRedisClient(cfg)
	registerRedisClose(lc, l, rdb)
	return NewRedisQueue(rdb, cfg.Queue.RedisStream, cfg.Queue.DedupWindow)
}

func registerRedisClose(lc fx.Lifecycle, l *zap.SugaredLogger, rdb *redis.Client) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rdb.Ping(ctx).Err(); err != nil {
				l.Warnw("redis ping failed", "addr", rdb.Options().Addr, "err", err)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			l.Infow("closing redis client")
			return rdb.Close()
		},
	})
}

// SQSModule and RedisModule provide the NotificationQueue for the matching
// queue.driver.
var (
	SQSModule   = fx.Provide(newSQS)
	RedisModule = fx.Provide(newRedis)
)
