// Package audit records the PENDING -> SUCCESS|FAILED lifecycle of the audit
// entry that documents each ledger mutation.
package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/fatflowers/txledger/internal/models"
	"github.com/fatflowers/txledger/internal/repository"
	"github.com/fatflowers/txledger/pkg/logctx"
	"github.com/fatflowers/txledger/pkg/tool"
)

// ErrNotPending is returned when finalizing an entry that is missing or
// already terminal.
var ErrNotPending = errors.New("audit entry is not pending")

type Service struct {
	store repository.AuditStore
	log   *zap.SugaredLogger
	now   func() time.Time
	newID func() string
}

func New(store repository.AuditStore, log *zap.SugaredLogger) *Service {
	return &Service{store: store, log: log, now: time.Now, newID: tool.GenerateUUIDV7}
}

// Begin persists entry as PENDING. AuditID, Timestamp and the trace id are
// filled in when empty.
func (s *Service) Begin(ctx context.Context, entry *models.AuditEntry) (*models.AuditEntry, error) {
	if entry == nil {
		return nil, fmt.Errorf("nil audit entry")
	}
	e := entry.Clone()
	if e.AuditID == "" {
		e.AuditID = s.newID()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = s.now().UTC()
	}
	e.UpdatedAt = e.Timestamp
	e.Status = models.AuditStatusPending
	if e.Metadata == nil {
		e.Metadata = datatypes.JSONMap{}
	}
	if traceID := logctx.TraceID(ctx); traceID != "" {
		e.Metadata[models.MetadataTraceID] = traceID
	}
	if err := s.store.Put(ctx, e); err != nil {
		return nil, fmt.Errorf("begin audit %s for %s: %w", e.Action, e.TransactionID, err)
	}
	logctx.FromCtx(ctx, s.log).Debugw("audit_pending",
		"audit_id", e.AuditID, "transaction_id", e.TransactionID, "action", e.Action)
	return e, nil
}

// Complete moves the entry to SUCCESS.
func (s *Service) Complete(ctx context.Context, auditID string) error {
	return s.finish(ctx, auditID, models.AuditStatusSuccess)
}

// Fail moves the entry to FAILED.
func (s *Service) Fail(ctx context.Context, auditID string) error {
	return s.finish(ctx, auditID, models.AuditStatusFailed)
}

func (s *Service) finish(ctx context.Context, auditID string, status models.AuditStatus) error {
	err := s.store.UpdateStatus(ctx, auditID, status)
	if errors.Is(err, repository.ErrConditionFailed) {
		return fmt.Errorf("finalize audit %s to %s: %w", auditID, status, ErrNotPending)
	}
	if err != nil {
		return fmt.Errorf("finalize audit %s to %s: %w", auditID, status, err)
	}
	logctx.FromCtx(ctx, s.log).Debugw("audit_finalized", "audit_id", auditID, "status", status)
	return nil
}

// ListByTransaction returns the audit trail of a transaction, including the
// entries of records derived from it.
func (s *Service) ListByTransaction(ctx context.Context, transactionID string) ([]*models.AuditEntry, error) {
	entries, err := s.store.ListByTransaction(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list audit entries for %s: %w", transactionID, err)
	}
	return entries, nil
}
