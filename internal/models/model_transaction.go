package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionStatus is the business status of a ledger record.
type TransactionStatus string

// Canonical status spellings; these are the wire and storage forms.
const (
	TransactionStatusInitiated     TransactionStatus = "Initiated"
	TransactionStatusPending       TransactionStatus = "Pending"
	TransactionStatusSuccess       TransactionStatus = "Success"
	TransactionStatusFailed        TransactionStatus = "Failed"
	TransactionStatusCompleted     TransactionStatus = "Completed"
	TransactionStatusRefunded      TransactionStatus = "Refunded"
	TransactionStatusRefundPending TransactionStatus = "Refund Pending"
	TransactionStatusRefundFailed  TransactionStatus = "Refund Failed"
	TransactionStatusVoided        TransactionStatus = "Voided"
	TransactionStatusReversed      TransactionStatus = "Reversed"
)

var knownStatuses = []TransactionStatus{
	TransactionStatusInitiated,
	TransactionStatusPending,
	TransactionStatusSuccess,
	TransactionStatusFailed,
	TransactionStatusCompleted,
	TransactionStatusRefunded,
	TransactionStatusRefundPending,
	TransactionStatusRefundFailed,
	TransactionStatusVoided,
	TransactionStatusReversed,
}

// canonicalKey folds case, surrounding whitespace and "_"/"-" separators so
// "REFUND_PENDING", " refund pending " and "Refund Pending" compare equal.
func canonicalKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// ParseTransactionStatus maps any known spelling to its canonical status.
func ParseTransactionStatus(raw string) (TransactionStatus, bool) {
	key := canonicalKey(raw)
	for _, s := range knownStatuses {
		if canonicalKey(string(s)) == key {
			return s, true
		}
	}
	return TransactionStatus(strings.TrimSpace(raw)), false
}

// Canonical returns the canonical form of s; unknown values are returned trimmed.
func (s TransactionStatus) Canonical() TransactionStatus {
	c, _ := ParseTransactionStatus(string(s))
	return c
}

func (s TransactionStatus) Is(other TransactionStatus) bool {
	return s.Canonical() == other.Canonical()
}

// TransactionType is the kind of a ledger record.
type TransactionType string

// Types are stored uppercase. Other writers of the same tables may use
// lowercase ("sale", "charge", "refund", "void", "reversal"); those read back
// as the canonical value, so a reversed original stored here as "REVERSAL"
// equals one stored elsewhere as "reversal".
const (
	TransactionTypeSale     TransactionType = "SALE"
	TransactionTypeRefund   TransactionType = "REFUND"
	TransactionTypeVoid     TransactionType = "VOID"
	TransactionTypeReversal TransactionType = "REVERSAL"
)

// typeAliases lists alternate spellings folded into a canonical type.
var typeAliases = map[string]TransactionType{
	"sale":     TransactionTypeSale,
	"charge":   TransactionTypeSale,
	"refund":   TransactionTypeRefund,
	"void":     TransactionTypeVoid,
	"reversal": TransactionTypeReversal,
}

// ParseTransactionType maps any known spelling (case-insensitive, CHARGE as
// an alias of SALE) to its canonical type.
func ParseTransactionType(raw string) (TransactionType, bool) {
	if t, ok := typeAliases[canonicalKey(raw)]; ok {
		return t, true
	}
	return TransactionType(strings.TrimSpace(raw)), false
}

func (t TransactionType) Canonical() TransactionType {
	c, _ := ParseTransactionType(string(t))
	return c
}

func (t TransactionType) Valid() bool {
	_, ok := ParseTransactionType(string(t))
	return ok
}

// Transaction is one ledger record.
type Transaction struct {
	TransactionID   string            `gorm:"column:transaction_id;primaryKey;type:varchar(128)" json:"transaction_id"`
	Amount          decimal.Decimal   `gorm:"column:amount;type:numeric(20,4);not null" json:"amount"`
	ProcessorID     string            `gorm:"column:processor_id;type:varchar(128)" json:"processor_id"`
	Status          TransactionStatus `gorm:"column:status;type:varchar(32);not null;index" json:"status"`
	TransactionType TransactionType   `gorm:"column:transaction_type;type:varchar(32);not null" json:"transaction_type"`
	Source          string            `gorm:"column:source;type:varchar(64)" json:"source"`
	// OriginalTransactionID is set only on derived (void) records.
	OriginalTransactionID *string `gorm:"column:original_transaction_id;type:varchar(128);index" json:"original_transaction_id,omitempty"`
	Reason                *string `gorm:"column:reason;type:text" json:"reason,omitempty"`
	// EncryptedToken is the KMS ciphertext of the secure token issued at sale initiation.
	EncryptedToken []byte    `gorm:"column:encrypted_token;type:bytea" json:"-"`
	Timestamp      time.Time `gorm:"column:timestamp;not null" json:"timestamp"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Transaction) TableName() string {
	return "payment_ledger"
}

// Normalize folds Status and TransactionType to their canonical spellings.
// Stores call it when decoding records.
func (t *Transaction) Normalize() {
	if t == nil {
		return
	}
	t.Status = t.Status.Canonical()
	t.TransactionType = t.TransactionType.Canonical()
}

// AfterFind normalizes records loaded through gorm.
func (t *Transaction) AfterFind(_ *gorm.DB) error {
	t.Normalize()
	return nil
}

// IsDerived reports whether t was derived from another record.
func (t *Transaction) IsDerived() bool {
	return t != nil && t.OriginalTransactionID != nil && *t.OriginalTransactionID != ""
}

// Clone returns a deep copy of t.
func (t *Transaction) Clone() *Transaction {
	if t == nil {
		return nil
	}
	c := *t
	if t.OriginalTransactionID != nil {
		v := *t.OriginalTransactionID
		c.OriginalTransactionID = &v
	}
	if t.Reason != nil {
		v := *t.Reason
		c.Reason = &v
	}
	if t.EncryptedToken != nil {
		c.EncryptedToken = append([]byte(nil), t.EncryptedToken...)
	}
	return &c
}
