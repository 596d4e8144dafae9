package dynamo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/fatflowers/txledger/internal/models"
	"github.com/fatflowers/txledger/internal/repository"
)

var fixed = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleTx() *models.Transaction {
	return &models.Transaction{
		TransactionID:   "T1",
		Amount:          decimal.RequireFromString("100.50"),
		ProcessorID:     "P1",
		Status:          models.TransactionStatusCompleted,
		TransactionType: models.TransactionTypeSale,
		Source:          "web",
		EncryptedToken:  []byte{1, 2, 3},
		Timestamp:       fixed,
	}
}

func TestLedgerStore_PutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	table := newFakeTable(attrTransactionID)
	s := NewLedgerStore(table, "payment_ledger")

	require.NoError(t, s.Put(ctx, sampleTx(), repository.PutIfAbsent))
	require.Equal(t, "attribute_not_exists(TransactionID)", aws.ToString(table.putInputs[0].ConditionExpression))

	got, err := s.Get(ctx, "T1")
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("100.5").Equal(got.Amount))
	require.Equal(t, models.TransactionStatusCompleted, got.Status)
	require.Equal(t, []byte{1, 2, 3}, got.EncryptedToken)
	require.Equal(t, fixed, got.Timestamp)
	require.Nil(t, got.OriginalTransactionID)

	_, err = s.Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLedgerStore_PutIfAbsentConflict(t *testing.T) {
	ctx := context.Background()
	s := NewLedgerStore(newFakeTable(attrTransactionID), "payment_ledger")
	require.NoError(t, s.Put(ctx, sampleTx(), repository.PutIfAbsent))
	require.ErrorIs(t, s.Put(ctx, sampleTx(), repository.PutIfAbsent), repository.ErrConditionFailed)
	require.NoError(t, s.Put(ctx, sampleTx(), repository.PutOverwrite))
}

func TestLedgerStore_UpdateRequiresExistingRecord(t *testing.T) {
	ctx := context.Background()
	table := newFakeTable(attrTransactionID)
	s := NewLedgerStore(table, "payment_ledger")
	s.now = func() time.Time { return fixed.Add(time.Hour) }

	err := s.Update(ctx, "missing", repository.LedgerUpdate{Status: lo.ToPtr(models.TransactionStatusRefunded)})
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.Empty(t, table.items)

	require.NoError(t, s.Put(ctx, sampleTx(), repository.PutIfAbsent))
	require.NoError(t, s.Update(ctx, "T1", repository.LedgerUpdate{
		Status:          lo.ToPtr(models.TransactionStatusRefunded),
		TransactionType: lo.ToPtr(models.TransactionTypeReversal),
	}))
	last := table.updateInputs[len(table.updateInputs)-1]
	require.Equal(t, "attribute_exists(TransactionID)", aws.ToString(last.ConditionExpression))
	require.Equal(t, "SET UpdatedAt = :updated, #status = :status, TransactionType = :type", aws.ToString(last.UpdateExpression))

	got, err := s.Get(ctx, "T1")
	require.NoError(t, err)
	require.Equal(t, models.TransactionStatusRefunded, got.Status)
	require.Equal(t, models.TransactionTypeReversal, got.TransactionType)
	require.Equal(t, fixed.Add(time.Hour), got.UpdatedAt)
}

func TestLedgerStore_WrapsClientErrors(t *testing.T) {
	table := newFakeTable(attrTransactionID)
	table.err = errors.New("throttled")
	s := NewLedgerStore(table, "payment_ledger")

	_, err := s.Get(context.Background(), "T1")
	require.ErrorContains(t, err, "throttled")
	require.NotErrorIs(t, err, repository.ErrNotFound)
}

func TestAuditStore_LifecycleAndList(t *testing.T) {
	ctx := context.Background()
	table := newFakeTable(attrAuditID)
	table.pageSize = 1
	s := NewAuditStore(table, "payment_audit", "TransactionID-index")

	require.NoError(t, s.Put(ctx, &models.AuditEntry{
		AuditID:       "A1",
		TransactionID: "T1",
		Action:        models.AuditActionReversal,
		Status:        models.AuditStatusPending,
		Metadata:      datatypes.JSONMap{models.MetadataReversalAmount: "50.00", models.MetadataReason: "dup"},
		Timestamp:     fixed,
	}))
	require.NoError(t, s.Put(ctx, &models.AuditEntry{
		AuditID:               "A2",
		TransactionID:         "T1-VOID",
		OriginalTransactionID: lo.ToPtr("T1"),
		Action:                models.AuditActionVoid,
		Status:                models.AuditStatusPending,
		Timestamp:             fixed.Add(time.Minute),
	}))
	require.NoError(t, s.Put(ctx, &models.AuditEntry{AuditID: "A3", TransactionID: "T1", Timestamp: fixed.Add(2 * time.Minute), Status: models.AuditStatusPending}))

	require.NoError(t, s.UpdateStatus(ctx, "A1", models.AuditStatusSuccess))
	require.ErrorIs(t, s.UpdateStatus(ctx, "A1", models.AuditStatusFailed), repository.ErrConditionFailed)
	require.ErrorIs(t, s.UpdateStatus(ctx, "missing", models.AuditStatusSuccess), repository.ErrConditionFailed)

	got, err := s.ListByTransaction(ctx, "T1")
	require.NoError(t, err)
	require.Equal(t, []string{"A1", "A2", "A3"}, lo.Map(got, func(e *models.AuditEntry, _ int) string { return e.AuditID }))
	require.Equal(t, models.AuditStatusSuccess, got[0].Status)
	require.Equal(t, "50.00", got[0].Metadata[models.MetadataReversalAmount])
	require.Equal(t, "T1", *got[1].OriginalTransactionID)
	require.Equal(t, "TransactionID-index", aws.ToString(table.queryInputs[0].IndexName))
}
