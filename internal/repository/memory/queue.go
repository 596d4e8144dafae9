package memory

import (
	"context"
	"sync"

	"github.com/fatflowers/txledger/internal/repository"
)

// SentMessage is one accepted delivery.
type SentMessage struct {
	Message  repository.VoidNotification
	DedupKey string
}

// Queue collapses deliveries by dedup key, like a FIFO queue inside its
// deduplication window.
type Queue struct {
	mu   sync.Mutex
	seen map[string]struct{}
	sent []SentMessage
}

func NewQueue() *Queue {
	return &Queue{seen: map[string]struct{}{}}
}

func (q *Queue) Send(_ context.Context, msg repository.VoidNotification, dedupKey string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, dup := q.seen[dedupKey]; dup {
		return nil
	}
	q.seen[dedupKey] = struct{}{}
	q.sent = append(q.sent, SentMessage{Message: msg, DedupKey: dedupKey})
	return nil
}

func (q *Queue) Sent() []SentMessage {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]SentMessage(nil), q.sent...)
}
