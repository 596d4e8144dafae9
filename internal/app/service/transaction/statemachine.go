package transaction

import (
	"fmt"
	"strings"

	"github.com/fatflowers/txledger/internal/models"
)

// Signal is a normalized processor outcome.
type Signal string

const (
	SignalSuccess Signal = "success"
	SignalFailed  Signal = "failed"
	SignalPending Signal = "pending"
)

func ParseSignal(raw string) (Signal, bool) {
	switch sig := Signal(strings.ToLower(strings.TrimSpace(raw))); sig {
	case SignalSuccess, SignalFailed, SignalPending:
		return sig, true
	default:
		return sig, false
	}
}

var saleStatuses = map[Signal]models.TransactionStatus{
	SignalSuccess: models.TransactionStatusSuccess,
	SignalFailed:  models.TransactionStatusFailed,
	SignalPending: models.TransactionStatusPending,
}

var refundStatuses = map[Signal]models.TransactionStatus{
	SignalSuccess: models.TransactionStatusRefunded,
	SignalFailed:  models.TransactionStatusRefundFailed,
	SignalPending: models.TransactionStatusRefundPending,
}

// Apply computes the status a transaction of type txType moves to on signal,
// together with the audit action documenting it. It performs no I/O.
//
// VOID and REVERSAL are terminal for their record and ignore the signal.
func Apply(txType models.TransactionType, signal Signal) (models.TransactionStatus, models.AuditAction, error) {
	canonical, ok := models.ParseTransactionType(string(txType))
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidTransactionType, txType)
	}
	action, _ := models.AuditActionFor(canonical)

	switch canonical {
	case models.TransactionTypeVoid:
		return models.TransactionStatusVoided, action, nil
	case models.TransactionTypeReversal:
		return models.TransactionStatusReversed, action, nil
	}

	table := saleStatuses
	if canonical == models.TransactionTypeRefund {
		table = refundStatuses
	}
	status, ok := table[signal]
	if !ok {
		return "", "", fmt.Errorf("%w: %q for %s", ErrInvalidSignal, signal, canonical)
	}
	return status, action, nil
}

// ReverseOriginal is the transition applied to the original record when a
// reversal succeeds: it becomes a refunded REVERSAL. The type is written as
// "REVERSAL"; readers expecting "reversal" should compare case-insensitively,
// as models.ParseTransactionType does.
func ReverseOriginal() (models.TransactionStatus, models.TransactionType, models.AuditAction) {
	return models.TransactionStatusRefunded, models.TransactionTypeReversal, models.AuditActionReversal
}
