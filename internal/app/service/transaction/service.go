package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/fatflowers/txledger/internal/app/service/audit"
	models "github.com/fatflowers/txledger/internal/models"
	"github.com/fatflowers/txledger/internal/repository"
	"github.com/fatflowers/txledger/pkg/logctx"
	"github.com/fatflowers/txledger/pkg/metrics"
	"github.com/fatflowers/txledger/pkg/tool"
)

const (
	defaultSource         = "unknown"
	defaultReversalReason = "No reason provided"
	defaultInitiator      = "System"
)

type Params struct {
	fx.In

	Ledger repository.LedgerStore
	Audit  *audit.Service
	Queue  repository.NotificationQueue
	// Encrypter is nil when encryption.driver is none.
	Encrypter  repository.TokenEncrypter `optional:"true"`
	Normalizer ResponseNormalizer        `optional:"true"`
	Metrics    *metrics.LedgerMetrics    `optional:"true"`
	Log        *zap.SugaredLogger
}

// Service is the only component that writes to the ledger, the audit store
// and the notification queue. Every operation follows
// validate -> mutate ledger -> record audit -> (void only) enqueue.
type Service struct {
	ledger     repository.LedgerStore
	audit      *audit.Service
	queue      repository.NotificationQueue
	encrypter  repository.TokenEncrypter
	normalizer ResponseNormalizer
	metrics    *metrics.LedgerMetrics
	log        *zap.SugaredLogger
	now        func() time.Time
	newID      func() string
}

func NewService(p Params) *Service {
	normalizer := p.Normalizer
	if normalizer == nil {
		normalizer = StatusFieldNormalizer{}
	}
	return &Service{
		ledger:     p.Ledger,
		audit:      p.Audit,
		queue:      p.Queue,
		encrypter:  p.Encrypter,
		normalizer: normalizer,
		metrics:    p.Metrics,
		log:        p.Log,
		now:        time.Now,
		newID:      tool.GenerateUUIDV7,
	}
}

func (s *Service) observe(op string, start time.Time, err *error) {
	s.metrics.ObserveOp(op, start, *err)
}

func (s *Service) load(ctx context.Context, id string) (*models.Transaction, error) {
	tx, err := s.ledger.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}
	if err != nil {
		return nil, persistenceError("load transaction", err)
	}
	return tx, nil
}

func (s *Service) Initiate(ctx context.Context, req *InitiateRequest) (tx *models.Transaction, err error) {
	defer s.observe("initiate", time.Now(), &err)
	return s.initiate(ctx, req)
}

func (s *Service) initiate(ctx context.Context, req *InitiateRequest) (*models.Transaction, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request body", ErrMissingField)
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative, got %s", ErrInvalidAmount, req.Amount)
	}
	if strings.TrimSpace(req.ProcessorID) == "" {
		return nil, fmt.Errorf("%w: processor_id", ErrMissingField)
	}
	txType := models.TransactionTypeSale
	if req.TransactionType != "" {
		t, ok := models.ParseTransactionType(req.TransactionType)
		if !ok || (t != models.TransactionTypeSale && t != models.TransactionTypeRefund) {
			return nil, fmt.Errorf("%w: %q cannot be initiated", ErrInvalidTransactionType, req.TransactionType)
		}
		txType = t
	}
	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = defaultSource
	}

	now := s.now().UTC()
	tx := &models.Transaction{
		TransactionID:   s.newID(),
		Amount:          req.Amount,
		ProcessorID:     req.ProcessorID,
		Status:          models.TransactionStatusInitiated,
		TransactionType: txType,
		Source:          source,
		Timestamp:       now,
		UpdatedAt:       now,
	}
	if err := s.ledger.Put(ctx, tx, repository.PutIfAbsent); err != nil {
		return nil, persistenceError("initiate transaction", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("transaction_initiated",
		"transaction_id", tx.TransactionID, "type", tx.TransactionType, "source", source, "processor_id", tx.ProcessorID)
	return tx, nil
}

func (s *Service) ApplyResponse(ctx context.Context, req *ApplyResponseRequest) (res *ApplyResponseResult, err error) {
	defer s.observe("apply_response", time.Now(), &err)
	return s.applyResponse(ctx, req)
}

func (s *Service) applyResponse(ctx context.Context, req *ApplyResponseRequest) (*ApplyResponseResult, error) {
	if req == nil || strings.TrimSpace(req.TransactionID) == "" {
		return nil, fmt.Errorf("%w: transaction_id", ErrMissingField)
	}
	tx, err := s.load(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}

	rawType := req.TransactionType
	if rawType == "" {
		rawType = string(tx.TransactionType)
	}
	txType, ok := models.ParseTransactionType(rawType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTransactionType, rawType)
	}
	// VOID and REVERSAL only go through Void and Reverse, which run the
	// eligibility checks first.
	if txType != models.TransactionTypeSale && txType != models.TransactionTypeRefund {
		return nil, fmt.Errorf("%w: processor responses apply to SALE or REFUND, got %s", ErrInvalidTransactionType, txType)
	}
	signal, err := s.normalizer.Normalize(req.ProcessorResponse)
	if err != nil {
		return nil, err
	}
	status, action, err := Apply(txType, signal)
	if err != nil {
		return nil, err
	}

	source := req.Source
	if source == "" {
		source = tx.Source
	}
	entry, err := s.audit.Begin(ctx, &models.AuditEntry{
		TransactionID:   tx.TransactionID,
		Action:          action,
		TransactionType: txType,
		Source:          source,
		Initiator:       initiatorOr(ctx, defaultInitiator),
		QueryDetails: fmt.Sprintf("Payment processed for amount: %s using processor: %s from source: %s with type %s",
			tx.Amount, tx.ProcessorID, source, txType),
		ResponseData: fmt.Sprintf("Processor response: %s", req.ProcessorResponse),
		Metadata:     datatypes.JSONMap{models.MetadataAmount: tx.Amount.String()},
	})
	if err != nil {
		return nil, persistenceError("record audit", err)
	}

	if err := s.ledger.Update(ctx, tx.TransactionID, repository.LedgerUpdate{Status: &status}); err != nil {
		s.failAudit(ctx, entry)
		return nil, persistenceError("update transaction status", err)
	}
	if err := s.audit.Complete(ctx, entry.AuditID); err != nil {
		s.auditLeftPending(ctx, entry, err)
		return nil, persistenceError("finalize audit", err)
	}

	logctx.FromCtx(ctx, s.log).Infow("transaction_status_applied",
		"transaction_id", tx.TransactionID, "type", txType, "signal", signal, "status", status, "audit_id", entry.AuditID)
	return &ApplyResponseResult{TransactionID: tx.TransactionID, Status: status, AuditID: entry.AuditID}, nil
}

func (s *Service) Void(ctx context.Context, req *VoidRequest) (derived *models.Transaction, err error) {
	defer s.observe("void", time.Now(), &err)
	return s.void(ctx, req)
}

func (s *Service) void(ctx context.Context, req *VoidRequest) (*models.Transaction, error) {
	if req == nil || strings.TrimSpace(req.TransactionID) == "" {
		return nil, fmt.Errorf("%w: transaction_id", ErrMissingField)
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, fmt.Errorf("%w: user_id", ErrMissingField)
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, fmt.Errorf("%w: reason", ErrMissingField)
	}
	if req.TransactionType != "" {
		if t, ok := models.ParseTransactionType(req.TransactionType); !ok || t != models.TransactionTypeVoid {
			return nil, fmt.Errorf("%w: %q is not VOID", ErrInvalidTransactionType, req.TransactionType)
		}
	}

	original, err := s.load(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}
	amount := original.Amount
	if req.VoidAmount != nil {
		amount = *req.VoidAmount
	}
	derived, err := DeriveVoid(original, amount, req.Reason, s.now())
	if err != nil {
		return nil, err
	}

	err = s.ledger.Put(ctx, derived, repository.PutIfAbsent)
	if errors.Is(err, repository.ErrConditionFailed) {
		return nil, fmt.Errorf("%w: %s", ErrVoidConflict, derived.TransactionID)
	}
	if err != nil {
		return nil, persistenceError("create void record", err)
	}

	log := logctx.FromCtx(ctx, s.log)
	entry, err := s.audit.Begin(ctx, &models.AuditEntry{
		TransactionID:         derived.TransactionID,
		OriginalTransactionID: &original.TransactionID,
		Action:                models.AuditActionVoid,
		TransactionType:       models.TransactionTypeVoid,
		Source:                original.Source,
		Initiator:             req.UserID,
		QueryDetails:          fmt.Sprintf("Void of %s for amount: %s requested by %s", original.TransactionID, amount, req.UserID),
		Metadata: datatypes.JSONMap{
			models.MetadataAmount: amount.String(),
			models.MetadataReason: req.Reason,
		},
	})
	if err != nil {
		log.Errorw("void_audit_missing", "transaction_id", derived.TransactionID, "err", err)
		return nil, persistenceError("record audit", err)
	}

	msg := repository.VoidNotification{TransactionID: derived.TransactionID, Amount: derived.Amount, Reason: req.Reason}
	if err := s.queue.Send(ctx, msg, derived.TransactionID); err != nil {
		s.auditLeftPending(ctx, entry, err)
		return nil, persistenceError("enqueue void notification", err)
	}
	if err := s.audit.Complete(ctx, entry.AuditID); err != nil {
		s.auditLeftPending(ctx, entry, err)
		return nil, persistenceError("finalize audit", err)
	}

	log.Infow("void_enqueued",
		"transaction_id", original.TransactionID, "void_transaction_id", derived.TransactionID,
		"amount", amount.String(), "user_id", req.UserID, "audit_id", entry.AuditID)
	return derived, nil
}

func (s *Service) Reverse(ctx context.Context, req *ReverseRequest) (res *ReversalResult, err error) {
	defer s.observe("reverse", time.Now(), &err)
	return s.reverse(ctx, req)
}

func (s *Service) reverse(ctx context.Context, req *ReverseRequest) (*ReversalResult, error) {
	if req == nil || strings.TrimSpace(req.TransactionID) == "" {
		return nil, fmt.Errorf("%w: transaction_id", ErrMissingField)
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = defaultReversalReason
	}
	initiator := strings.TrimSpace(req.Initiator)
	if initiator == "" {
		initiator = initiatorOr(ctx, defaultInitiator)
	}

	original, err := s.load(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}
	if err := CheckReversal(original, req.ReversalAmount); err != nil {
		return nil, err
	}

	status, txType, action := ReverseOriginal()
	entry, err := s.audit.Begin(ctx, &models.AuditEntry{
		TransactionID:   original.TransactionID,
		Action:          action,
		TransactionType: txType,
		Source:          original.Source,
		Initiator:       initiator,
		QueryDetails:    fmt.Sprintf("Reversal of %s for amount: %s", original.TransactionID, req.ReversalAmount),
		Metadata: datatypes.JSONMap{
			models.MetadataReversalAmount: req.ReversalAmount.String(),
			models.MetadataReason:         reason,
		},
	})
	if err != nil {
		return nil, persistenceError("record audit", err)
	}

	upd := repository.LedgerUpdate{Status: &status, TransactionType: &txType}
	if err := s.ledger.Update(ctx, original.TransactionID, upd); err != nil {
		s.failAudit(ctx, entry)
		return nil, persistenceError("update original transaction", err)
	}
	if err := s.audit.Complete(ctx, entry.AuditID); err != nil {
		s.auditLeftPending(ctx, entry, err)
		return nil, persistenceError("finalize audit", err)
	}

	logctx.FromCtx(ctx, s.log).Infow("transaction_reversed",
		"transaction_id", original.TransactionID, "amount", req.ReversalAmount.String(),
		"initiator", initiator, "audit_id", entry.AuditID)
	return &ReversalResult{
		TransactionID:  original.TransactionID,
		Status:         status,
		ReversalAmount: req.ReversalAmount,
		AuditID:        entry.AuditID,
	}, nil
}

// simulatedResponse is the processor response ProcessPayment feeds back into
// ApplyResponse.
type simulatedResponse struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
	Amount        string `json:"amount"`
	ProcessorID   string `json:"processor_id"`
}

func (s *Service) ProcessPayment(ctx context.Context, req *ProcessPaymentRequest) (res *PaymentResult, err error) {
	defer s.observe("process_payment", time.Now(), &err)
	if req == nil {
		return nil, fmt.Errorf("%w: request body", ErrMissingField)
	}

	tx, err := s.initiate(ctx, &req.InitiateRequest)
	if err != nil {
		return nil, err
	}

	encrypted := false
	if s.encrypter != nil {
		token := secureToken(tx.TransactionID, tx.Amount, tx.ProcessorID)
		ciphertext, err := s.encrypter.Encrypt(ctx, []byte(token))
		if err != nil {
			return nil, persistenceError("encrypt secure token", err)
		}
		if err := s.ledger.Update(ctx, tx.TransactionID, repository.LedgerUpdate{EncryptedToken: ciphertext}); err != nil {
			return nil, persistenceError("store secure token", err)
		}
		encrypted = true
	}

	body, err := json.Marshal(simulatedResponse{
		Status:        strings.ToLower(strings.TrimSpace(req.SimulateStatus)),
		TransactionID: tx.TransactionID,
		Amount:        tx.Amount.String(),
		ProcessorID:   tx.ProcessorID,
	})
	if err != nil {
		return nil, fmt.Errorf("encode processor response: %w", err)
	}

	applied, err := s.applyResponse(ctx, &ApplyResponseRequest{
		TransactionID:     tx.TransactionID,
		ProcessorResponse: string(body),
		Source:            tx.Source,
		TransactionType:   string(tx.TransactionType),
	})
	if err != nil {
		return nil, err
	}
	return &PaymentResult{
		TransactionID:   tx.TransactionID,
		TransactionType: tx.TransactionType,
		Status:          applied.Status,
		TokenEncrypted:  encrypted,
	}, nil
}

func (s *Service) Get(ctx context.Context, transactionID string) (*models.Transaction, error) {
	if strings.TrimSpace(transactionID) == "" {
		return nil, fmt.Errorf("%w: transaction_id", ErrMissingField)
	}
	return s.load(ctx, transactionID)
}

func (s *Service) AuditTrail(ctx context.Context, transactionID string) ([]*models.AuditEntry, error) {
	if _, err := s.Get(ctx, transactionID); err != nil {
		return nil, err
	}
	entries, err := s.audit.ListByTransaction(ctx, transactionID)
	if err != nil {
		return nil, persistenceError("list audit trail", err)
	}
	return entries, nil
}

func secureToken(transactionID string, amount decimal.Decimal, processorID string) string {
	return fmt.Sprintf("%s:%s:%s", transactionID, amount, processorID)
}

func initiatorOr(ctx context.Context, fallback string) string {
	if v := logctx.Initiator(ctx); v != "" {
		return v
	}
	return fallback
}

// failAudit marks entry FAILED after the ledger write it documents failed.
// A failure here only leaves the entry PENDING for reconciliation.
func (s *Service) failAudit(ctx context.Context, entry *models.AuditEntry) {
	if err := s.audit.Fail(ctx, entry.AuditID); err != nil {
		s.auditLeftPending(ctx, entry, err)
	}
}

func (s *Service) auditLeftPending(ctx context.Context, entry *models.AuditEntry, cause error) {
	s.metrics.AuditLeftPending(string(entry.Action))
	logctx.FromCtx(ctx, s.log).Errorw("audit_left_pending",
		"audit_id", entry.AuditID, "transaction_id", entry.TransactionID, "action", entry.Action, "err", cause)
}
