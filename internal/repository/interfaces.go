// Package repository declares the external collaborators of the ledger core:
// the ledger and audit stores, the void notification queue and the token
// encrypter. Implementations live under internal/platform and in the memory
// subpackage.
package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/fatflowers/txledger/internal/models"
)

var (
	// ErrNotFound is returned when the requested key does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConditionFailed is returned when a conditional write did not apply.
	ErrConditionFailed = errors.New("condition failed")
)

// PutCondition controls how LedgerStore.Put treats an existing key.
type PutCondition int

const (
	// PutIfAbsent fails with ErrConditionFailed when the key already exists.
	PutIfAbsent PutCondition = iota
	// PutOverwrite replaces any existing record.
	PutOverwrite
)

// LedgerUpdate lists the fields to set on an existing ledger record.
// Nil fields are left untouched.
type LedgerUpdate struct {
	Status          *models.TransactionStatus
	TransactionType *models.TransactionType
	EncryptedToken  []byte
}

func (u LedgerUpdate) Empty() bool {
	return u.Status == nil && u.TransactionType == nil && u.EncryptedToken == nil
}

type LedgerStore interface {
	// Get returns ErrNotFound when id is unknown.
	Get(ctx context.Context, id string) (*models.Transaction, error)
	Put(ctx context.Context, tx *models.Transaction, cond PutCondition) error
	// Update applies upd in a single write and returns ErrNotFound when id is
	// unknown; it never creates a record.
	Update(ctx context.Context, id string, upd LedgerUpdate) error
}

type AuditStore interface {
	Put(ctx context.Context, entry *models.AuditEntry) error
	// UpdateStatus moves a PENDING entry to a terminal status and returns
	// ErrConditionFailed when the entry is missing or no longer PENDING.
	UpdateStatus(ctx context.Context, auditID string, status models.AuditStatus) error
	// ListByTransaction returns entries whose TransactionID or
	// OriginalTransactionID equals transactionID, oldest first.
	ListByTransaction(ctx context.Context, transactionID string) ([]*models.AuditEntry, error)
}

// VoidNotification is the payload sent downstream for every void.
type VoidNotification struct {
	TransactionID string          `json:"TransactionID"`
	Amount        decimal.Decimal `json:"Amount"`
	Reason        string          `json:"Reason"`
}

type NotificationQueue interface {
	// Send enqueues msg; deliveries sharing dedupKey are collapsed downstream.
	Send(ctx context.Context, msg VoidNotification, dedupKey string) error
}

type TokenEncrypter interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
}
