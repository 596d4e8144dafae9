package transaction

import (
	"context"

	"github.com/shopspring/decimal"

	models "github.com/fatflowers/txledger/internal/models"
)

type InitiateRequest struct {
	Amount          decimal.Decimal `json:"amount" swaggertype:"string" example:"100.00"`
	ProcessorID     string          `json:"processor_id" example:"stripe"`
	Source          string          `json:"source,omitempty" example:"web"`
	TransactionType string          `json:"transaction_type,omitempty" example:"SALE"`
}

type ApplyResponseRequest struct {
	TransactionID     string `json:"-"`
	ProcessorResponse string `json:"processor_response" example:"success"`
	Source            string `json:"source,omitempty"`
	// TransactionType defaults to the stored record's type; only SALE and REFUND are accepted.
	TransactionType string `json:"transaction_type,omitempty"`
}

type ApplyResponseResult struct {
	TransactionID string                   `json:"transaction_id"`
	Status        models.TransactionStatus `json:"status"`
	AuditID       string                   `json:"audit_id"`
}

type VoidRequest struct {
	TransactionID string `json:"-"`
	UserID        string `json:"user_id" example:"u-42"`
	Reason        string `json:"reason" example:"duplicate charge"`
	// VoidAmount defaults to the original amount.
	VoidAmount      *decimal.Decimal `json:"void_amount,omitempty" swaggertype:"string" example:"20.00"`
	TransactionType string           `json:"transaction_type,omitempty" example:"VOID"`
}

type ReverseRequest struct {
	TransactionID  string          `json:"-"`
	ReversalAmount decimal.Decimal `json:"reversal_amount" swaggertype:"string" example:"50.00"`
	Reason         string          `json:"reason,omitempty"`
	Initiator      string          `json:"initiator,omitempty"`
}

type ReversalResult struct {
	TransactionID  string                   `json:"transaction_id"`
	Status         models.TransactionStatus `json:"status"`
	ReversalAmount decimal.Decimal          `json:"reversal_amount" swaggertype:"string"`
	AuditID        string                   `json:"audit_id"`
}

type ProcessPaymentRequest struct {
	InitiateRequest
	// SimulateStatus is echoed back as the processor's status.
	SimulateStatus string `json:"simulate_status,omitempty" example:"success"`
}

type PaymentResult struct {
	TransactionID   string                   `json:"transaction_id"`
	TransactionType models.TransactionType   `json:"transaction_type"`
	Status          models.TransactionStatus `json:"status"`
	TokenEncrypted  bool                     `json:"token_encrypted"`
}

// TransactionManager is the ledger service surface used by the HTTP layer.
type TransactionManager interface {
	// Initiate creates a SALE or REFUND record in Initiated status.
	Initiate(ctx context.Context, req *InitiateRequest) (*models.Transaction, error)
	// ApplyResponse moves a record to the status its processor response maps to.
	ApplyResponse(ctx context.Context, req *ApplyResponseRequest) (*ApplyResponseResult, error)
	// Void writes the derived {id}-VOID record and notifies downstream.
	Void(ctx context.Context, req *VoidRequest) (*models.Transaction, error)
	// Reverse marks a completed sale or refund as reversed.
	Reverse(ctx context.Context, req *ReverseRequest) (*ReversalResult, error)
	// ProcessPayment runs initiate, token encryption and a simulated processor
	// response in one call.
	ProcessPayment(ctx context.Context, req *ProcessPaymentRequest) (*PaymentResult, error)
	Get(ctx context.Context, transactionID string) (*models.Transaction, error)
	AuditTrail(ctx context.Context, transactionID string) ([]*models.AuditEntry, error)
}
