// Package kms encrypts secure tokens with AWS KMS.
package kms

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kms"
	"go.uber.org/fx"

	"github.com/fatflowers/txledger/internal/platform/awscfg"
	"github.com/fatflowers/txledger/internal/repository"
	cfgpkg "github.com/fatflowers/txledger/pkg/config"
)

// API is the subset of *kms.Client the encrypter uses.
type API interface {
	Encrypt(ctx context.Context, in *kms.EncryptInput, optFns ...func(*kms.Options)) (*kms.EncryptOutput, error)
}

type Encrypter struct {
	api   API
	keyID string
}

func NewEncrypter(api API, keyID string) *Encrypter {
	return &Encrypter{api: api, keyID: keyID}
}

func (e *Encrypter) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	out, err := e.api.Encrypt(ctx, &kms.EncryptInput{
		KeyId:     aws.String(e.keyID),
		Plaintext: plaintext,
	})
	if err != nil {
		return nil, fmt.Errorf("kms encrypt: %w", err)
	}
	return out.CiphertextBlob, nil
}

func NewClient(awsCfg aws.Config, cfg *cfgpkg.Config) *kms.Client {
	return kms.NewFromConfig(awsCfg, func(o *kms.Options) {
		if ep := awscfg.Endpoint(cfg); ep != nil {
			o.BaseEndpoint = ep
		}
	})
}

func newEncrypter(awsCfg aws.Config, cfg *cfgpkg.Config) repository.TokenEncrypter {
	return NewEncrypter(NewClient(awsCfg, cfg), cfg.Encryption.KMSKeyARN)
}

// Module provides the TokenEncrypter when encryption.driver is kms.
var Module = fx.Provide(newEncrypter)
