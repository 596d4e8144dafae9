package handlers

import (
	"time"

	"github.com/fatflowers/txledger/internal/app/service/transaction"
	"github.com/fatflowers/txledger/pkg/response"
)

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

// RespError is the envelope of every failed call; Data carries the error message.
type RespError struct {
	Code    response.APIResponseCode `json:"code" example:"40000"`
	Message string                   `json:"message" example:"bad request"`
	Data    string                   `json:"data" example:"invariant violation: amount exceeds original transaction amount"`
}

// SwaggerTransaction is a simplified view of models.Transaction for documentation purposes.
type SwaggerTransaction struct {
	TransactionID         string    `json:"transaction_id" example:"T2-VOID"`
	Amount                string    `json:"amount" example:"-20"`
	ProcessorID           string    `json:"processor_id" example:"stripe"`
	Status                string    `json:"status" example:"Voided"`
	TransactionType       string    `json:"transaction_type" example:"VOID"`
	Source                string    `json:"source" example:"web"`
	OriginalTransactionID string    `json:"original_transaction_id,omitempty" example:"T2"`
	Reason                string    `json:"reason,omitempty" example:"customer request"`
	Timestamp             time.Time `json:"timestamp"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// SwaggerAuditEntry is a simplified view of models.AuditEntry for documentation purposes.
type SwaggerAuditEntry struct {
	AuditID               string                 `json:"audit_id"`
	TransactionID         string                 `json:"transaction_id"`
	OriginalTransactionID string                 `json:"original_transaction_id,omitempty"`
	Action                string                 `json:"action" example:"VOID"`
	Status                string                 `json:"status" example:"SUCCESS"`
	TransactionType       string                 `json:"transaction_type"`
	Source                string                 `json:"source"`
	Initiator             string                 `json:"initiator"`
	QueryDetails          string                 `json:"query_details,omitempty"`
	ResponseData          string                 `json:"response_data,omitempty"`
	Metadata              map[string]interface{} `json:"metadata,omitempty"`
	Timestamp             time.Time              `json:"timestamp"`
	UpdatedAt             time.Time              `json:"updated_at"`
}

type RespTransaction struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    SwaggerTransaction       `json:"data"`
}

type RespAuditTrail struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    []SwaggerAuditEntry      `json:"data"`
}

type RespPayment struct {
	Code    response.APIResponseCode  `json:"code"`
	Message string                    `json:"message"`
	Data    transaction.PaymentResult `json:"data"`
}

type RespApplyResponse struct {
	Code    response.APIResponseCode        `json:"code"`
	Message string                          `json:"message"`
	Data    transaction.ApplyResponseResult `json:"data"`
}

type RespReversal struct {
	Code    response.APIResponseCode   `json:"code"`
	Message string                     `json:"message"`
	Data    transaction.ReversalResult `json:"data"`
}

// RespHealth wraps HealthStatus.
type RespHealth struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    HealthStatus             `json:"data"`
}
