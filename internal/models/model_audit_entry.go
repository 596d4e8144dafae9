package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// AuditAction is the action an audit entry documents.
type AuditAction string

const (
	AuditActionSale     AuditAction = "SALE"
	AuditActionRefund   AuditAction = "REFUND"
	AuditActionVoid     AuditAction = "VOID"
	AuditActionReversal AuditAction = "REVERSAL"
)

// AuditActionFor returns the action documenting a transaction of type t.
func AuditActionFor(t TransactionType) (AuditAction, bool) {
	switch t.Canonical() {
	case TransactionTypeSale:
		return AuditActionSale, true
	case TransactionTypeRefund:
		return AuditActionRefund, true
	case TransactionTypeVoid:
		return AuditActionVoid, true
	case TransactionTypeReversal:
		return AuditActionReversal, true
	}
	return "", false
}

// AuditStatus is the lifecycle of the audit record itself.
type AuditStatus string

const (
	AuditStatusPending AuditStatus = "PENDING"
	AuditStatusSuccess AuditStatus = "SUCCESS"
	AuditStatusFailed  AuditStatus = "FAILED"
)

// Terminal reports whether s is SUCCESS or FAILED.
func (s AuditStatus) Terminal() bool {
	return s == AuditStatusSuccess || s == AuditStatusFailed
}

// CanTransitionTo reports whether an entry in status s may move to next.
// The only legal move is PENDING -> SUCCESS|FAILED.
func (s AuditStatus) CanTransitionTo(next AuditStatus) bool {
	return s == AuditStatusPending && next.Terminal()
}

func ParseAuditStatus(raw string) AuditStatus {
	return AuditStatus(strings.ToUpper(strings.TrimSpace(raw)))
}

// Metadata keys written by the ledger service.
const (
	MetadataAmount         = "Amount"
	MetadataReason         = "Reason"
	MetadataReversalAmount = "ReversalAmount"
	MetadataTraceID        = "TraceID"
	MetadataError          = "Error"
)

// AuditEntry documents one ledger action. It is created PENDING and updated
// exactly once to a terminal status.
type AuditEntry struct {
	AuditID       string `gorm:"column:audit_id;primaryKey;type:uuid" json:"audit_id"`
	TransactionID string `gorm:"column:transaction_id;type:varchar(128);not null;index:idx_audit_transaction_id" json:"transaction_id"`
	// OriginalTransactionID is set when TransactionID is a derived (void) record.
	OriginalTransactionID *string           `gorm:"column:original_transaction_id;type:varchar(128);index" json:"original_transaction_id,omitempty"`
	Action                AuditAction       `gorm:"column:action;type:varchar(32);not null" json:"action"`
	Status                AuditStatus       `gorm:"column:status;type:varchar(16);not null" json:"status"`
	TransactionType       TransactionType   `gorm:"column:transaction_type;type:varchar(32)" json:"transaction_type"`
	Source                string            `gorm:"column:source;type:varchar(64)" json:"source"`
	Initiator             string            `gorm:"column:initiator;type:varchar(128)" json:"initiator"`
	QueryDetails          string            `gorm:"column:query_details;type:text" json:"query_details,omitempty"`
	ResponseData          string            `gorm:"column:response_data;type:text" json:"response_data,omitempty"`
	Metadata              datatypes.JSONMap `gorm:"column:metadata;type:jsonb;default:'{}'" json:"metadata,omitempty"`
	Timestamp             time.Time         `gorm:"column:timestamp;not null" json:"timestamp"`
	UpdatedAt             time.Time         `gorm:"column:updated_at" json:"updated_at"`
}

func (AuditEntry) TableName() string {
	return "payment_audit"
}

// Clone returns a copy of e with its own metadata map.
func (e *AuditEntry) Clone() *AuditEntry {
	if e == nil {
		return nil
	}
	c := *e
	if e.OriginalTransactionID != nil {
		v := *e.OriginalTransactionID
		c.OriginalTransactionID = &v
	}
	if e.Metadata != nil {
		c.Metadata = make(datatypes.JSONMap, len(e.Metadata))
		for k, v := range e.Metadata {
			c.Metadata[k] = v
		}
	}
	return &c
}
