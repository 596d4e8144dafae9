// Package memory provides in-process implementations of the repository
// interfaces, used by tests and by the "memory" drivers.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fatflowers/txledger/internal/models"
	"github.com/fatflowers/txledger/internal/repository"
)

type LedgerStore struct {
	mu    sync.Mutex
	items map[string]*models.Transaction
	now   func() time.Time
}

func NewLedgerStore() *LedgerStore {
	return &LedgerStore{items: map[string]*models.Transaction{}, now: time.Now}
}

func (s *LedgerStore) Get(_ context.Context, id string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := tx.Clone()
	c.Normalize()
	return c, nil
}

func (s *LedgerStore) Put(_ context.Context, tx *models.Transaction, cond repository.PutCondition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[tx.TransactionID]; exists && cond == repository.PutIfAbsent {
		return repository.ErrConditionFailed
	}
	c := tx.Clone()
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.Timestamp
	}
	s.items[tx.TransactionID] = c
	return nil
}

func (s *LedgerStore) Update(_ context.Context, id string, upd repository.LedgerUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	if upd.Status != nil {
		tx.Status = *upd.Status
	}
	if upd.TransactionType != nil {
		tx.TransactionType = *upd.TransactionType
	}
	if upd.EncryptedToken != nil {
		tx.EncryptedToken = append([]byte(nil), upd.EncryptedToken...)
	}
	tx.UpdatedAt = s.now().UTC()
	return nil
}

// All returns a snapshot of every record ordered by id.
func (s *LedgerStore) All() []*models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Transaction, 0, len(s.items))
	for _, tx := range s.items {
		out = append(out, tx.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TransactionID < out[j].TransactionID })
	return out
}
