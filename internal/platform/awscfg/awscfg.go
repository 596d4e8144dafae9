// Package awscfg loads the shared aws.Config used by the DynamoDB, SQS and
// KMS clients.
package awscfg

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"go.uber.org/zap"

	cfgpkg "github.com/fatflowers/txledger/pkg/config"
)

// New loads the default AWS config chain for the configured region. Static
// credentials from config take precedence when both parts are set.
func New(l *zap.SugaredLogger, cfg *cfgpkg.Config) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.AWS.Region),
	}
	if cfg.AWS.AccessKeyID != "" && cfg.AWS.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWS.AccessKeyID, cfg.AWS.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	l.Infow("aws config loaded", "region", cfg.AWS.Region, "endpoint_override", cfg.AWS.Endpoint != "")
	return awsCfg, nil
}

// Endpoint returns the endpoint override, or nil to use the SDK resolver.
func Endpoint(cfg *cfgpkg.Config) *string {
	if cfg.AWS.Endpoint == "" {
		return nil
	}
	return aws.String(cfg.AWS.Endpoint)
}
