package dynamo

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/fatflowers/txledger/internal/models"
)

// Attribute names shared by both tables.
const (
	attrTransactionID         = "TransactionID"
	attrOriginalTransactionID = "OriginalTransactionID"
	attrAmount                = "Amount"
	attrProcessorID           = "ProcessorID"
	attrStatus                = "Status"
	attrTransactionType       = "TransactionType"
	attrSource                = "Source"
	attrReason                = "Reason"
	attrEncryptedToken        = "EncryptedToken"
	attrTimestamp             = "Timestamp"
	attrUpdatedAt             = "UpdatedAt"
	attrAuditID               = "AuditID"
	attrAction                = "Action"
	attrInitiator             = "Initiator"
	attrQueryDetails          = "QueryDetails"
	attrResponseData          = "ResponseData"
	attrMetadata              = "Metadata"
)

func sv(v string) types.AttributeValue { return &types.AttributeValueMemberS{Value: v} }

func ts(t time.Time) types.AttributeValue { return sv(t.UTC().Format(time.RFC3339Nano)) }

func putOptional(item map[string]types.AttributeValue, key string, v *string) {
	if v != nil {
		item[key] = sv(*v)
	}
}

func getS(item map[string]types.AttributeValue, key string) string {
	if v, ok := item[key].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func getOptionalS(item map[string]types.AttributeValue, key string) *string {
	if v, ok := item[key].(*types.AttributeValueMemberS); ok {
		out := v.Value
		return &out
	}
	return nil
}

func getTime(item map[string]types.AttributeValue, key string) (time.Time, error) {
	raw := getS(item, key)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode %s: %w", key, err)
	}
	return t, nil
}

func transactionToItem(tx *models.Transaction) map[string]types.AttributeValue {
	item := map[string]types.AttributeValue{
		attrTransactionID:   sv(tx.TransactionID),
		attrAmount:          &types.AttributeValueMemberN{Value: tx.Amount.String()},
		attrProcessorID:     sv(tx.ProcessorID),
		attrStatus:          sv(string(tx.Status)),
		attrTransactionType: sv(string(tx.TransactionType)),
		attrSource:          sv(tx.Source),
		attrTimestamp:       ts(tx.Timestamp),
	}
	updated := tx.UpdatedAt
	if updated.IsZero() {
		updated = tx.Timestamp
	}
	item[attrUpdatedAt] = ts(updated)
	putOptional(item, attrOriginalTransactionID, tx.OriginalTransactionID)
	putOptional(item, attrReason, tx.Reason)
	if len(tx.EncryptedToken) > 0 {
		item[attrEncryptedToken] = &types.AttributeValueMemberB{Value: tx.EncryptedToken}
	}
	return item
}

func itemToTransaction(item map[string]types.AttributeValue) (*models.Transaction, error) {
	tx := &models.Transaction{
		TransactionID:         getS(item, attrTransactionID),
		ProcessorID:           getS(item, attrProcessorID),
		Status:                models.TransactionStatus(getS(item, attrStatus)),
		TransactionType:       models.TransactionType(getS(item, attrTransactionType)),
		Source:                getS(item, attrSource),
		OriginalTransactionID: getOptionalS(item, attrOriginalTransactionID),
		Reason:                getOptionalS(item, attrReason),
	}
	switch v := item[attrAmount].(type) {
	case *types.AttributeValueMemberN:
		amt, err := decimal.NewFromString(v.Value)
		if err != nil {
			return nil, fmt.Errorf("decode amount of %s: %w", tx.TransactionID, err)
		}
		tx.Amount = amt
	case *types.AttributeValueMemberS:
		amt, err := decimal.NewFromString(v.Value)
		if err != nil {
			return nil, fmt.Errorf("decode amount of %s: %w", tx.TransactionID, err)
		}
		tx.Amount = amt
	}
	if b, ok := item[attrEncryptedToken].(*types.AttributeValueMemberB); ok {
		tx.EncryptedToken = b.Value
	}
	var err error
	if tx.Timestamp, err = getTime(item, attrTimestamp); err != nil {
		return nil, err
	}
	if tx.UpdatedAt, err = getTime(item, attrUpdatedAt); err != nil {
		return nil, err
	}
	tx.Normalize()
	return tx, nil
}

func auditToItem(e *models.AuditEntry) (map[string]types.AttributeValue, error) {
	item := map[string]types.AttributeValue{
		attrAuditID:         sv(e.AuditID),
		attrTransactionID:   sv(e.TransactionID),
		attrAction:          sv(string(e.Action)),
		attrStatus:          sv(string(e.Status)),
		attrTransactionType: sv(string(e.TransactionType)),
		attrSource:          sv(e.Source),
		attrInitiator:       sv(e.Initiator),
		attrQueryDetails:    sv(e.QueryDetails),
		attrResponseData:    sv(e.ResponseData),
		attrTimestamp:       ts(e.Timestamp),
	}
	updated := e.UpdatedAt
	if updated.IsZero() {
		updated = e.Timestamp
	}
	item[attrUpdatedAt] = ts(updated)
	putOptional(item, attrOriginalTransactionID, e.OriginalTransactionID)
	if len(e.Metadata) > 0 {
		meta, err := attributevalue.MarshalMap(map[string]any(e.Metadata))
		if err != nil {
			return nil, fmt.Errorf("encode metadata of %s: %w", e.AuditID, err)
		}
		item[attrMetadata] = &types.AttributeValueMemberM{Value: meta}
	}
	return item, nil
}

func itemToAudit(item map[string]types.AttributeValue) (*models.AuditEntry, error) {
	e := &models.AuditEntry{
		AuditID:               getS(item, attrAuditID),
		TransactionID:         getS(item, attrTransactionID),
		OriginalTransactionID: getOptionalS(item, attrOriginalTransactionID),
		Action:                models.AuditAction(getS(item, attrAction)),
		Status:                models.ParseAuditStatus(getS(item, attrStatus)),
		TransactionType:       models.TransactionType(getS(item, attrTransactionType)).Canonical(),
		Source:                getS(item, attrSource),
		Initiator:             getS(item, attrInitiator),
		QueryDetails:          getS(item, attrQueryDetails),
		ResponseData:          getS(item, attrResponseData),
	}
	if m, ok := item[attrMetadata].(*types.AttributeValueMemberM); ok {
		meta := map[string]any{}
		if err := attributevalue.UnmarshalMap(m.Value, &meta); err != nil {
			return nil, fmt.Errorf("decode metadata of %s: %w", e.AuditID, err)
		}
		e.Metadata = datatypes.JSONMap(meta)
	}
	var err error
	if e.Timestamp, err = getTime(item, attrTimestamp); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = getTime(item, attrUpdatedAt); err != nil {
		return nil, err
	}
	return e, nil
}
