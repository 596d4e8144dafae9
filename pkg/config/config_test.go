package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsFromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "ledger.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
storage:
  driver: memory
queue:
  driver: memory
server:
  port: 9000
`), 0o600))
	t.Setenv("APP_CONFIG_FILE", file)

	cfg, err := New()
	require.NoError(t, err)
	require.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	require.Equal(t, 9000, cfg.Server.Port)
	require.Equal(t, "void-transaction-group", cfg.Queue.MessageGroupID)
	require.Equal(t, 5*time.Minute, cfg.Queue.DedupWindow)
	require.Equal(t, EncryptionDriverNone, cfg.Encryption.Driver)
}

func TestNew_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "ledger.yaml")
	require.NoError(t, os.WriteFile(file, []byte("storage:\n  driver: memory\n"), 0o600))
	t.Setenv("APP_CONFIG_FILE", file)
	t.Setenv("APP_QUEUE_DRIVER", "redis")
	t.Setenv("APP_REDIS_ADDR", "cache:6379")

	cfg, err := New()
	require.NoError(t, err)
	require.Equal(t, QueueDriverRedis, cfg.Queue.Driver)
	require.Equal(t, "cache:6379", cfg.Redis.Addr)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Storage:    StorageConfig{Driver: StorageDriverMemory},
			Queue:      QueueConfig{Driver: QueueDriverMemory},
			Encryption: EncryptionConfig{Driver: EncryptionDriverNone},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		aws     bool
	}{
		{name: "all memory", mutate: func(c *Config) {}},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Storage.Driver = StorageDriverPostgres }, wantErr: true},
		{name: "dynamodb without tables", mutate: func(c *Config) { c.Storage.Driver = StorageDriverDynamoDB }, wantErr: true},
		{
			name: "dynamodb with tables",
			mutate: func(c *Config) {
				c.Storage.Driver = StorageDriverDynamoDB
				c.DynamoDB = DynamoDBConfig{LedgerTable: "l", AuditTable: "a"}
			},
			aws: true,
		},
		{name: "sqs without url", mutate: func(c *Config) { c.Queue.Driver = QueueDriverSQS }, wantErr: true},
		{name: "kms without key", mutate: func(c *Config) { c.Encryption.Driver = EncryptionDriverKMS }, wantErr: true},
		{
			name: "kms with key",
			mutate: func(c *Config) {
				c.Encryption = EncryptionConfig{Driver: EncryptionDriverKMS, KMSKeyARN: "arn:aws:kms:us-east-1:1:key/abc"}
			},
			aws: true,
		},
		{name: "unknown storage", mutate: func(c *Config) { c.Storage.Driver = "mongo" }, wantErr: true},
		{name: "unknown queue", mutate: func(c *Config) { c.Queue.Driver = "kafka" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.aws, c.NeedsAWS())
		})
	}
}
