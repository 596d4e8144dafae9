package memory

import (
	"context"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/fatflowers/txledger/internal/models"
	"github.com/fatflowers/txledger/internal/repository"
)

func TestLedgerStore_PutIfAbsent(t *testing.T) {
	ctx := context.Background()
	s := NewLedgerStore()
	tx := &models.Transaction{TransactionID: "T1", Amount: decimal.RequireFromString("10.00"), Status: models.TransactionStatusCompleted}

	require.NoError(t, s.Put(ctx, tx, repository.PutIfAbsent))
	require.ErrorIs(t, s.Put(ctx, tx, repository.PutIfAbsent), repository.ErrConditionFailed)
	require.NoError(t, s.Put(ctx, tx, repository.PutOverwrite))
}

func TestLedgerStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewLedgerStore()
	require.NoError(t, s.Put(ctx, &models.Transaction{TransactionID: "T1", Status: "completed", TransactionType: "charge"}, repository.PutIfAbsent))

	got, err := s.Get(ctx, "T1")
	require.NoError(t, err)
	require.Equal(t, models.TransactionStatusCompleted, got.Status)
	require.Equal(t, models.TransactionTypeSale, got.TransactionType)

	got.Status = models.TransactionStatusVoided
	again, err := s.Get(ctx, "T1")
	require.NoError(t, err)
	require.Equal(t, models.TransactionStatusCompleted, again.Status)

	_, err = s.Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLedgerStore_Update(t *testing.T) {
	ctx := context.Background()
	s := NewLedgerStore()
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	err := s.Update(ctx, "missing", repository.LedgerUpdate{Status: lo.ToPtr(models.TransactionStatusRefunded)})
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.Empty(t, s.All())

	require.NoError(t, s.Put(ctx, &models.Transaction{TransactionID: "T1", Status: models.TransactionStatusCompleted, TransactionType: models.TransactionTypeSale}, repository.PutIfAbsent))
	require.NoError(t, s.Update(ctx, "T1", repository.LedgerUpdate{
		Status:          lo.ToPtr(models.TransactionStatusRefunded),
		TransactionType: lo.ToPtr(models.TransactionTypeReversal),
	}))
	got, err := s.Get(ctx, "T1")
	require.NoError(t, err)
	require.Equal(t, models.TransactionStatusRefunded, got.Status)
	require.Equal(t, models.TransactionTypeReversal, got.TransactionType)
	require.Equal(t, fixed, got.UpdatedAt)
}

func TestAuditStore_UpdateStatusOnlyFromPending(t *testing.T) {
	ctx := context.Background()
	s := NewAuditStore()
	require.NoError(t, s.Put(ctx, &models.AuditEntry{AuditID: "A1", TransactionID: "T1", Status: models.AuditStatusPending}))

	require.NoError(t, s.UpdateStatus(ctx, "A1", models.AuditStatusSuccess))
	require.ErrorIs(t, s.UpdateStatus(ctx, "A1", models.AuditStatusFailed), repository.ErrConditionFailed)
	require.ErrorIs(t, s.UpdateStatus(ctx, "A2", models.AuditStatusSuccess), repository.ErrConditionFailed)
}

func TestAuditStore_PutRejectsExistingID(t *testing.T) {
	ctx := context.Background()
	s := NewAuditStore()
	require.NoError(t, s.Put(ctx, &models.AuditEntry{AuditID: "A1", TransactionID: "T1", Status: models.AuditStatusPending}))

	err := s.Put(ctx, &models.AuditEntry{AuditID: "A1", TransactionID: "T9", Status: models.AuditStatusSuccess})
	require.ErrorIs(t, err, repository.ErrConditionFailed)

	all := s.All()
	require.Len(t, all, 1)
	require.Equal(t, "T1", all[0].TransactionID)
	require.Equal(t, models.AuditStatusPending, all[0].Status)
}

func TestAuditStore_ListByTransaction(t *testing.T) {
	ctx := context.Background()
	s := NewAuditStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Put(ctx, &models.AuditEntry{AuditID: "A2", TransactionID: "T1-VOID", OriginalTransactionID: lo.ToPtr("T1"), Timestamp: base.Add(time.Minute)}))
	require.NoError(t, s.Put(ctx, &models.AuditEntry{AuditID: "A1", TransactionID: "T1", Timestamp: base}))
	require.NoError(t, s.Put(ctx, &models.AuditEntry{AuditID: "A3", TransactionID: "T2", Timestamp: base}))

	got, err := s.ListByTransaction(ctx, "T1")
	require.NoError(t, err)
	require.Equal(t, []string{"A1", "A2"}, lo.Map(got, func(e *models.AuditEntry, _ int) string { return e.AuditID }))
}

func TestQueue_DeduplicatesByKey(t *testing.T) {
	ctx := context.Background()
	q := NewQueue()
	msg := repository.VoidNotification{TransactionID: "T1-VOID", Amount: decimal.RequireFromString("5"), Reason: "dup"}

	require.NoError(t, q.Send(ctx, msg, "T1-VOID"))
	require.NoError(t, q.Send(ctx, msg, "T1-VOID"))
	require.Len(t, q.Sent(), 1)
}

func TestEncrypter_Deterministic(t *testing.T) {
	ctx := context.Background()
	a, err := Encrypter{}.Encrypt(ctx, []byte("T1:10.00:P1"))
	require.NoError(t, err)
	b, err := Encrypter{}.Encrypt(ctx, []byte("T1:10.00:P1"))
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Len(t, a, 32)
}
