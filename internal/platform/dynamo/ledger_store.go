package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/fatflowers/txledger/internal/models"
	"github.com/fatflowers/txledger/internal/repository"
)

type LedgerStore struct {
	api   API
	table string
	now   func() time.Time
}

func NewLedgerStore(api API, table string) *LedgerStore {
	return &LedgerStore{api: api, table: table, now: time.Now}
}

func (s *LedgerStore) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{attrTransactionID: &types.AttributeValueMemberS{Value: id}}
}

func (s *LedgerStore) Get(ctx context.Context, id string) (*models.Transaction, error) {
	out, err := s.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            s.key(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get ledger record %s: %w", id, err)
	}
	if len(out.Item) == 0 {
		return nil, repository.ErrNotFound
	}
	return itemToTransaction(out.Item)
}

func (s *LedgerStore) Put(ctx context.Context, tx *models.Transaction, cond repository.PutCondition) error {
	in := &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      transactionToItem(tx),
	}
	if cond == repository.PutIfAbsent {
		in.ConditionExpression = aws.String("attribute_not_exists(TransactionID)")
	}
	if _, err := s.api.PutItem(ctx, in); err != nil {
		if isConditionFailed(err) {
			return repository.ErrConditionFailed
		}
		return fmt.Errorf("put ledger record %s: %w", tx.TransactionID, err)
	}
	return nil
}

// Update sets the given fields in one UpdateItem call conditioned on the
// record existing, so a missing id never creates a partial record.
func (s *LedgerStore) Update(ctx context.Context, id string, upd repository.LedgerUpdate) error {
	expr := "SET UpdatedAt = :updated"
	names := map[string]string{}
	values := map[string]types.AttributeValue{
		":updated": ts(s.now()),
	}
	if upd.Status != nil {
		expr += ", #status = :status"
		names["#status"] = attrStatus
		values[":status"] = sv(string(*upd.Status))
	}
	if upd.TransactionType != nil {
		expr += ", TransactionType = :type"
		values[":type"] = sv(string(*upd.TransactionType))
	}
	if upd.EncryptedToken != nil {
		expr += ", EncryptedToken = :token"
		values[":token"] = &types.AttributeValueMemberB{Value: upd.EncryptedToken}
	}
	in := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.table),
		Key:                       s.key(id),
		UpdateExpression:          aws.String(expr),
		ConditionExpression:       aws.String("attribute_exists(TransactionID)"),
		ExpressionAttributeValues: values,
	}
	if len(names) > 0 {
		in.ExpressionAttributeNames = names
	}
	if _, err := s.api.UpdateItem(ctx, in); err != nil {
		if isConditionFailed(err) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("update ledger record %s: %w", id, err)
	}
	return nil
}
