package transaction

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/fatflowers/txledger/internal/models"
	"github.com/fatflowers/txledger/pkg/tool"
)

// DeriveVoid builds the derived VOID record for original. It touches no
// store; every failure is returned before any write happens.
func DeriveVoid(original *models.Transaction, voidAmount decimal.Decimal, reason string, now time.Time) (*models.Transaction, error) {
	if !original.Status.Is(models.TransactionStatusCompleted) {
		return nil, fmt.Errorf("%w: %s is %q", ErrIneligibleForVoid, original.TransactionID, original.Status)
	}
	if !voidAmount.IsPositive() {
		return nil, fmt.Errorf("%w: void amount must be positive, got %s", ErrInvalidAmount, voidAmount)
	}
	if voidAmount.GreaterThan(original.Amount) {
		return nil, fmt.Errorf("%w: void %s > original %s", ErrAmountExceeded, voidAmount, original.Amount)
	}
	status, _, err := Apply(models.TransactionTypeVoid, "")
	if err != nil {
		return nil, err
	}
	originalID := original.TransactionID
	return &models.Transaction{
		TransactionID:         tool.VoidTransactionID(originalID),
		Amount:                voidAmount.Neg(),
		ProcessorID:           original.ProcessorID,
		Status:                status,
		TransactionType:       models.TransactionTypeVoid,
		Source:                original.Source,
		OriginalTransactionID: &originalID,
		Reason:                &reason,
		Timestamp:             now.UTC(),
		UpdatedAt:             now.UTC(),
	}, nil
}

var reversibleStatuses = []models.TransactionStatus{
	models.TransactionStatusCompleted,
	models.TransactionStatusSuccess,
}

var reversibleTypes = []models.TransactionType{
	models.TransactionTypeSale,
	models.TransactionTypeRefund,
}

// CheckReversal validates that reversalAmount may be reversed from original.
// Checks run in order: amount sign, status, type, amount bound.
func CheckReversal(original *models.Transaction, reversalAmount decimal.Decimal) error {
	if !reversalAmount.IsPositive() {
		return fmt.Errorf("%w: reversal amount must be positive, got %s", ErrInvalidAmount, reversalAmount)
	}
	if !lo.ContainsBy(reversibleStatuses, original.Status.Is) {
		return fmt.Errorf("%w: %s is %q", ErrIneligibleStatus, original.TransactionID, original.Status)
	}
	if !lo.Contains(reversibleTypes, original.TransactionType.Canonical()) {
		return fmt.Errorf("%w: %s is %q", ErrIneligibleType, original.TransactionID, original.TransactionType)
	}
	if reversalAmount.GreaterThan(original.Amount) {
		return fmt.Errorf("%w: reversal %s > original %s", ErrAmountExceeded, reversalAmount, original.Amount)
	}
	return nil
}
