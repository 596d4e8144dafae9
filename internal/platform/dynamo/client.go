// Package dynamo implements the ledger and audit stores on DynamoDB.
package dynamo

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/fx"

	"github.com/fatflowers/txledger/internal/platform/awscfg"
	"github.com/fatflowers/txledger/internal/repository"
	cfgpkg "github.com/fatflowers/txledger/pkg/config"
)

// API is the subset of *dynamodb.Client the stores use.
type API interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

func NewClient(awsCfg aws.Config, cfg *cfgpkg.Config) *dynamodb.Client {
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if ep := awscfg.Endpoint(cfg); ep != nil {
			o.BaseEndpoint = ep
		}
	})
}

func isConditionFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

func newLedgerStore(c *dynamodb.Client, cfg *cfgpkg.Config) *LedgerStore {
	return NewLedgerStore(c, cfg.DynamoDB.LedgerTable)
}

func newAuditStore(c *dynamodb.Client, cfg *cfgpkg.Config) *AuditStore {
	return NewAuditStore(c, cfg.DynamoDB.AuditTable, cfg.DynamoDB.AuditTransactionIndex)
}

// Module provides the DynamoDB-backed stores. It is only included when
// storage.driver is dynamodb.
var Module = fx.Options(
	fx.Provide(NewClient),
	fx.Provide(
		fx.Annotate(newLedgerStore, fx.As(new(repository.LedgerStore))),
		fx.Annotate(newAuditStore, fx.As(new(repository.AuditStore))),
	),
)
