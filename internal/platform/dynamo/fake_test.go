package dynamo

import (
	"context"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeTable is an in-memory stand-in for one DynamoDB table. It understands
// exactly the expressions the stores in this package issue.
type fakeTable struct {
	mu      sync.Mutex
	keyAttr string
	items   map[string]map[string]types.AttributeValue

	putInputs    []*dynamodb.PutItemInput
	updateInputs []*dynamodb.UpdateItemInput
	queryInputs  []*dynamodb.QueryInput
	// pageSize > 0 splits query results into pages.
	pageSize int
	err      error
}

func newFakeTable(keyAttr string) *fakeTable {
	return &fakeTable{keyAttr: keyAttr, items: map[string]map[string]types.AttributeValue{}}
}

func keyOf(item map[string]types.AttributeValue, attr string) string {
	return getS(item, attr)
}

func (f *fakeTable) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.GetItemOutput{Item: f.items[keyOf(in.Key, f.keyAttr)]}, nil
}

func (f *fakeTable) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.putInputs = append(f.putInputs, in)
	if f.err != nil {
		return nil, f.err
	}
	k := keyOf(in.Item, f.keyAttr)
	if _, exists := f.items[k]; exists && in.ConditionExpression != nil {
		return nil, &types.ConditionalCheckFailedException{}
	}
	f.items[k] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeTable) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateInputs = append(f.updateInputs, in)
	if f.err != nil {
		return nil, f.err
	}
	item, exists := f.items[keyOf(in.Key, f.keyAttr)]
	if !exists {
		return nil, &types.ConditionalCheckFailedException{}
	}
	if pending, ok := in.ExpressionAttributeValues[":pending"]; ok && getS(item, attrStatus) != pending.(*types.AttributeValueMemberS).Value {
		return nil, &types.ConditionalCheckFailedException{}
	}
	set := map[string]string{
		":status":  attrStatus,
		":next":    attrStatus,
		":type":    attrTransactionType,
		":token":   attrEncryptedToken,
		":updated": attrUpdatedAt,
	}
	for placeholder, attr := range set {
		if v, ok := in.ExpressionAttributeValues[placeholder]; ok {
			item[attr] = v
		}
	}
	return &dynamodb.UpdateItemOutput{}, nil
}

func (f *fakeTable) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queryInputs = append(f.queryInputs, in)
	if f.err != nil {
		return nil, f.err
	}
	tid := in.ExpressionAttributeValues[":tid"].(*types.AttributeValueMemberS).Value
	var keys []string
	for k, item := range f.items {
		if getS(item, attrTransactionID) == tid {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	startAfter := ""
	if in.ExclusiveStartKey != nil {
		startAfter = keyOf(in.ExclusiveStartKey, f.keyAttr)
	}
	out := &dynamodb.QueryOutput{}
	for _, k := range keys {
		if startAfter != "" && k <= startAfter {
			continue
		}
		out.Items = append(out.Items, f.items[k])
		if f.pageSize > 0 && len(out.Items) == f.pageSize {
			out.LastEvaluatedKey = map[string]types.AttributeValue{f.keyAttr: sv(k)}
			break
		}
	}
	return out, nil
}
