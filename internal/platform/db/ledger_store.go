package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fatflowers/txledger/internal/models"
	"github.com/fatflowers/txledger/internal/repository"
)

// LedgerStore keeps ledger records in the payment_ledger table.
type LedgerStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewLedgerStore(db *gorm.DB) *LedgerStore {
	return &LedgerStore{db: db, now: time.Now}
}

func (s *LedgerStore) Get(ctx context.Context, id string) (*models.Transaction, error) {
	var tx models.Transaction
	err := s.db.WithContext(ctx).Where("transaction_id = ?", id).First(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get ledger record %s: %w", id, err)
	}
	return &tx, nil
}

func (s *LedgerStore) Put(ctx context.Context, tx *models.Transaction, cond repository.PutCondition) error {
	rec := tx.Clone()
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = rec.Timestamp
	}
	q := s.db.WithContext(ctx)
	if cond == repository.PutOverwrite {
		q = q.Clauses(clause.OnConflict{UpdateAll: true})
	}
	err := q.Create(rec).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repository.ErrConditionFailed
	}
	if err != nil {
		return fmt.Errorf("put ledger record %s: %w", tx.TransactionID, err)
	}
	return nil
}

func (s *LedgerStore) Update(ctx context.Context, id string, upd repository.LedgerUpdate) error {
	values := map[string]any{"updated_at": s.now().UTC()}
	if upd.Status != nil {
		values["status"] = string(*upd.Status)
	}
	if upd.TransactionType != nil {
		values["transaction_type"] = string(*upd.TransactionType)
	}
	if upd.EncryptedToken != nil {
		values["encrypted_token"] = upd.EncryptedToken
	}
	res := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("transaction_id = ?", id).
		Updates(values)
	if res.Error != nil {
		return fmt.Errorf("update ledger record %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
