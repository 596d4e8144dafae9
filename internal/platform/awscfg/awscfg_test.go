package awscfg

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cfgpkg "github.com/fatflowers/txledger/pkg/config"
)

func TestNew_StaticCredentials(t *testing.T) {
	cfg := &cfgpkg.Config{AWS: cfgpkg.AWSConfig{
		Region:          "eu-west-1",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
	}}
	awsCfg, err := New(zap.NewNop().Sugar(), cfg)
	require.NoError(t, err)
	require.Equal(t, "eu-west-1", awsCfg.Region)

	creds, err := awsCfg.Credentials.Retrieve(t.Context())
	require.NoError(t, err)
	require.Equal(t, "AKIDEXAMPLE", creds.AccessKeyID)
}

func TestEndpoint(t *testing.T) {
	require.Nil(t, Endpoint(&cfgpkg.Config{}))
	ep := Endpoint(&cfgpkg.Config{AWS: cfgpkg.AWSConfig{Endpoint: "http://localhost:4566"}})
	require.Equal(t, "http://localhost:4566", aws.ToString(ep))
}
