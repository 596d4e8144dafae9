package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fatflowers/txledger/internal/models"
	"github.com/fatflowers/txledger/internal/repository"
)

type AuditStore struct {
	mu      sync.Mutex
	entries map[string]*models.AuditEntry
	order   []string
	now     func() time.Time
}

func NewAuditStore() *AuditStore {
	return &AuditStore{entries: map[string]*models.AuditEntry{}, now: time.Now}
}

func (s *AuditStore) Put(_ context.Context, entry *models.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[entry.AuditID]; exists {
		return repository.ErrConditionFailed
	}
	s.order = append(s.order, entry.AuditID)
	s.entries[entry.AuditID] = entry.Clone()
	return nil
}

func (s *AuditStore) UpdateStatus(_ context.Context, auditID string, status models.AuditStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[auditID]
	if !ok || !e.Status.CanTransitionTo(status) {
		return repository.ErrConditionFailed
	}
	e.Status = status
	e.UpdatedAt = s.now().UTC()
	return nil
}

func (s *AuditStore) ListByTransaction(_ context.Context, transactionID string) ([]*models.AuditEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.AuditEntry
	for _, id := range s.order {
		e := s.entries[id]
		if e.TransactionID == transactionID || (e.OriginalTransactionID != nil && *e.OriginalTransactionID == transactionID) {
			out = append(out, e.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

// All returns every entry in insertion order.
func (s *AuditStore) All() []*models.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.AuditEntry, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entries[id].Clone())
	}
	return out
}
