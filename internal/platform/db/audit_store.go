package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fatflowers/txledger/internal/models"
	"github.com/fatflowers/txledger/internal/repository"
)

// AuditStore keeps audit entries in the payment_audit table.
type AuditStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAuditStore(db *gorm.DB) *AuditStore {
	return &AuditStore{db: db, now: time.Now}
}

func (s *AuditStore) Put(ctx context.Context, entry *models.AuditEntry) error {
	err := s.db.WithContext(ctx).Create(entry.Clone()).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repository.ErrConditionFailed
	}
	if err != nil {
		return fmt.Errorf("put audit entry %s: %w", entry.AuditID, err)
	}
	return nil
}

func (s *AuditStore) UpdateStatus(ctx context.Context, auditID string, status models.AuditStatus) error {
	if !models.AuditStatusPending.CanTransitionTo(status) {
		return repository.ErrConditionFailed
	}
	res := s.db.WithContext(ctx).Model(&models.AuditEntry{}).
		Where("audit_id = ? AND status = ?", auditID, models.AuditStatusPending).
		Updates(map[string]any{"status": string(status), "updated_at": s.now().UTC()})
	if res.Error != nil {
		return fmt.Errorf("update audit entry %s: %w", auditID, res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrConditionFailed
	}
	return nil
}

func (s *AuditStore) ListByTransaction(ctx context.Context, transactionID string) ([]*models.AuditEntry, error) {
	var entries []*models.AuditEntry
	err := s.db.WithContext(ctx).
		Where("transaction_id = ? OR original_transaction_id = ?", transactionID, transactionID).
		Order("timestamp ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list audit entries for %s: %w", transactionID, err)
	}
	return entries, nil
}
