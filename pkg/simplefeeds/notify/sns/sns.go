// Package sns implements simplefeeds.Publisher on Amazon SNS.
package sns

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"github.com/tendant/simple-feeds/pkg/simplefeeds"
)

// Config contains configuration for the SNS publisher
type Config struct {
	Region          string
	TopicARN        string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // for LocalStack or other SNS-compatible endpoints
}

// Publisher publishes feed notifications to an SNS topic
type Publisher struct {
	client   *awssns.Client
	topicARN string
}

// New creates a new SNS publisher with the given configuration
func New(cfg Config) (*Publisher, error) {
	if cfg.TopicARN == "" {
		return nil, fmt.Errorf("topic ARN is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("region is required")
	}

	var awsCfg aws.Config
	var err error

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.TODO(),
			awsconfig.WithRegion(cfg.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.TODO(),
			awsconfig.WithRegion(cfg.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := awssns.NewFromConfig(awsCfg, func(o *awssns.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return &Publisher{client: client, topicARN: cfg.TopicARN}, nil
}

// Publish sends the notification to the configured topic. The feed and
// owner identifiers travel as message attributes so subscribers can
// filter without parsing the body.
func (p *Publisher) Publish(ctx context.Context, n simplefeeds.Notification) error {
	_, err := p.client.Publish(ctx, &awssns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(n.Message),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"feedId": {
				DataType:    aws.String("String"),
				StringValue: aws.String(n.FeedID.String()),
			},
			"userId": {
				DataType:    aws.String("String"),
				StringValue: aws.String(n.UserID),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	return nil
}
