package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fatflowers/txledger/internal/repository"
	cfgpkg "github.com/fatflowers/txledger/pkg/config"
)

// RedisAPI is the subset of *redis.Client the queue uses.
type RedisAPI interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisQueue appends to a stream. A SETNX marker per dedup key, kept for the
// dedup window, gives the same collapse-on-retry behavior as an SQS FIFO
// queue.
type RedisQueue struct {
	rdb         RedisAPI
	stream      string
	dedupWindow time.Duration
}

func NewRedisQueue(rdb RedisAPI, stream string, dedupWindow time.Duration) *RedisQueue {
	return &RedisQueue{rdb: rdb, stream: stream, dedupWindow: dedupWindow}
}

func NewRedisClient(cfg *cfgpkg.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func (q *RedisQueue) dedupKey(key string) string {
	return q.stream + ":dedup:" + key
}

func (q *RedisQueue) Send(ctx context.Context, msg repository.VoidNotification, dedupKey string) error {
	body, err := encode(msg)
	if err != nil {
		return err
	}
	marker := q.dedupKey(dedupKey)
	fresh, err := q.rdb.SetNX(ctx, marker, msg.TransactionID, q.dedupWindow).Result()
	if err != nil {
		return fmt.Errorf("dedup void notification %s: %w", msg.TransactionID, err)
	}
	if !fresh {
		return nil
	}
	err = q.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: q.stream,
		Values: map[string]interface{}{
			"dedup_id": dedupKey,
			"body":     body,
		},
	}).Err()
	if err != nil {
		// drop the marker so a retry can enqueue
		if delErr := q.rdb.Del(ctx, marker).Err(); delErr != nil {
			return fmt.Errorf("send void notification %s: %w (release dedup marker: %v)", msg.TransactionID, err, delErr)
		}
		return fmt.Errorf("send void notification %s: %w", msg.TransactionID, err)
	}
	return nil
}
