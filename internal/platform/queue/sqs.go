package queue

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/fatflowers/txledger/internal/platform/awscfg"
	"github.com/fatflowers/txledger/internal/repository"
	cfgpkg "github.com/fatflowers/txledger/pkg/config"
)

// SQSAPI is the subset of *sqs.Client the queue uses.
type SQSAPI interface {
	SendMessage(ctx context.Context, in *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSQueue sends to a FIFO queue. Every message shares one group; the dedup
// key becomes the MessageDeduplicationId.
type SQSQueue struct {
	api      SQSAPI
	queueURL string
	groupID  string
}

func NewSQSQueue(api SQSAPI, queueURL, groupID string) *SQSQueue {
	return &SQSQueue{api: api, queueURL: queueURL, groupID: groupID}
}

func NewSQSClient(awsCfg aws.Config, cfg *cfgpkg.Config) *sqs.Client {
	return sqs.NewFromConfig(awsCfg, func(o *sqs.Options) {
		if ep := awscfg.Endpoint(cfg); ep != nil {
			o.BaseEndpoint = ep
		}
	})
}

func (q *SQSQueue) Send(ctx context.Context, msg repository.VoidNotification, dedupKey string) error {
	body, err := encode(msg)
	if err != nil {
		return err
	}
	_, err = q.api.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:               aws.String(q.queueURL),
		MessageBody:            aws.String(body),
		MessageGroupId:         aws.String(q.groupID),
		MessageDeduplicationId: aws.String(dedupKey),
	})
	if err != nil {
		return fmt.Errorf("send void notification %s: %w", msg.TransactionID, err)
	}
	return nil
}
