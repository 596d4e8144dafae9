package app

import (
	"go.uber.org/fx"

	"github.com/fatflowers/txledger/internal/platform/awscfg"
	"github.com/fatflowers/txledger/internal/platform/db"
	"github.com/fatflowers/txledger/internal/platform/dynamo"
	"github.com/fatflowers/txledger/internal/platform/kms"
	"github.com/fatflowers/txledger/internal/platform/queue"
	"github.com/fatflowers/txledger/internal/repository"
	"github.com/fatflowers/txledger/internal/repository/memory"
	"github.com/fatflowers/txledger/pkg/config"
)

var memoryStores = fx.Provide(
	fx.Annotate(memory.NewLedgerStore, fx.As(new(repository.LedgerStore))),
	fx.Annotate(memory.NewAuditStore, fx.As(new(repository.AuditStore))),
)

var memoryQueue = fx.Provide(
	fx.Annotate(memory.NewQueue, fx.As(new(repository.NotificationQueue))),
)

func newMemoryEncrypter() repository.TokenEncrypter { return memory.Encrypter{} }

// Drivers selects the repository implementations named in cfg. cfg has
// already been validated, so unknown drivers cannot reach here.
func Drivers(cfg *config.Config) fx.Option {
	var opts []fx.Option
	if cfg.NeedsAWS() {
		opts = append(opts, fx.Provide(awscfg.New))
	}

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		opts = append(opts, db.Module)
	case config.StorageDriverDynamoDB:
		opts = append(opts, dynamo.Module)
	case config.StorageDriverMemory:
		opts = append(opts, memoryStores)
	}

	switch cfg.Queue.Driver {
	case config.QueueDriverSQS:
		opts = append(opts, queue.SQSModule)
	case config.QueueDriverRedis:
		opts = append(opts, queue.RedisModule)
	case config.QueueDriverMemory:
		opts = append(opts, memoryQueue)
	}

	switch cfg.Encryption.Driver {
	case config.EncryptionDriverKMS:
		opts = append(opts, kms.Module)
	case config.EncryptionDriverMemory:
		opts = append(opts, fx.Provide(newMemoryEncrypter))
	}
	return fx.Options(opts...)
}
