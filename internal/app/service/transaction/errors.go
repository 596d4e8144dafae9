package transaction

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by the ledger service wraps exactly one
// of these; the HTTP layer maps them to status codes with errors.Is.
var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrPersistence        = errors.New("persistence error")
)

var (
	ErrInvalidTransactionType = fmt.Errorf("%w: invalid transaction type", ErrValidation)
	ErrInvalidSignal          = fmt.Errorf("%w: invalid processor signal", ErrValidation)
	ErrInvalidAmount          = fmt.Errorf("%w: invalid amount", ErrValidation)
	ErrMissingField           = fmt.Errorf("%w: missing required field", ErrValidation)

	ErrTransactionNotFound = fmt.Errorf("%w: transaction not found", ErrNotFound)

	ErrIneligibleForVoid = fmt.Errorf("%w: transaction is not eligible for void", ErrInvariantViolation)
	ErrIneligibleStatus  = fmt.Errorf("%w: transaction status is not eligible for reversal", ErrInvariantViolation)
	ErrIneligibleType    = fmt.Errorf("%w: transaction type is not eligible for reversal", ErrInvariantViolation)
	ErrAmountExceeded    = fmt.Errorf("%w: amount exceeds original transaction amount", ErrInvariantViolation)
	ErrVoidConflict      = fmt.Errorf("%w: transaction already voided", ErrInvariantViolation)
)

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
