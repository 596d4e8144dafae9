package dynamo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/fatflowers/txledger/internal/models"
	"github.com/fatflowers/txledger/internal/repository"
	"github.com/fatflowers/txledger/pkg/tool"
)

type AuditStore struct {
	api   API
	table string
	// index is a GSI with TransactionID as its partition key.
	index string
	now   func() time.Time
}

func NewAuditStore(api API, table, index string) *AuditStore {
	return &AuditStore{api: api, table: table, index: index, now: time.Now}
}

func (s *AuditStore) Put(ctx context.Context, entry *models.AuditEntry) error {
	item, err := auditToItem(entry)
	if err != nil {
		return err
	}
	_, err = s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(AuditID)"),
	})
	if err != nil {
		if isConditionFailed(err) {
			return repository.ErrConditionFailed
		}
		return fmt.Errorf("put audit entry %s: %w", entry.AuditID, err)
	}
	return nil
}

func (s *AuditStore) UpdateStatus(ctx context.Context, auditID string, status models.AuditStatus) error {
	if !models.AuditStatusPending.CanTransitionTo(status) {
		return repository.ErrConditionFailed
	}
	_, err := s.api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                aws.String(s.table),
		Key:                      map[string]types.AttributeValue{attrAuditID: sv(auditID)},
		UpdateExpression:         aws.String("SET #status = :next, UpdatedAt = :updated"),
		ConditionExpression:      aws.String("#status = :pending"),
		ExpressionAttributeNames: map[string]string{"#status": attrStatus},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":next":    sv(string(status)),
			":pending": sv(string(models.AuditStatusPending)),
			":updated": ts(s.now()),
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return repository.ErrConditionFailed
		}
		return fmt.Errorf("update audit entry %s: %w", auditID, err)
	}
	return nil
}

// ListByTransaction queries the TransactionID index for the record itself
// and for its derived void record, whose audit entries are keyed by the
// derived id.
func (s *AuditStore) ListByTransaction(ctx context.Context, transactionID string) ([]*models.AuditEntry, error) {
	var out []*models.AuditEntry
	for _, id := range []string{transactionID, tool.VoidTransactionID(transactionID)} {
		entries, err := s.query(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.TransactionID == transactionID || (e.OriginalTransactionID != nil && *e.OriginalTransactionID == transactionID) {
				out = append(out, e)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (s *AuditStore) query(ctx context.Context, transactionID string) ([]*models.AuditEntry, error) {
	var (
		out   []*models.AuditEntry
		start map[string]types.AttributeValue
	)
	for {
		res, err := s.api.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(s.table),
			IndexName:                 aws.String(s.index),
			KeyConditionExpression:    aws.String("TransactionID = :tid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{":tid": sv(transactionID)},
			ExclusiveStartKey:         start,
		})
		if err != nil {
			return nil, fmt.Errorf("query audit entries for %s: %w", transactionID, err)
		}
		for _, item := range res.Items {
			e, err := itemToAudit(item)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
		if len(res.LastEvaluatedKey) == 0 {
			return out, nil
		}
		start = res.LastEvaluatedKey
	}
}
