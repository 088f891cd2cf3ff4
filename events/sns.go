package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"

	"quote-service/models"
)

// Publisher emits domain events for downstream services.
type Publisher interface {
	PublishShipmentCreated(ctx context.Context, evt models.ShipmentCreatedEvent) error
}

// SNSPublisher implements Publisher on an AWS SNS topic.
type SNSPublisher struct {
	client   *sns.Client
	topicARN string
	logger   *zap.Logger
}

// NewSNSPublisher creates an SNS-backed publisher using the default AWS
// credential chain.
func NewSNSPublisher(ctx context.Context, topicARN, region string, logger *zap.Logger) (*SNSPublisher, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SNSPublisher{
		client:   sns.NewFromConfig(cfg),
		topicARN: topicARN,
		logger:   logger,
	}, nil
}

// PublishShipmentCreated publishes a shipment-created event.
func (p *SNSPublisher) PublishShipmentCreated(ctx context.Context, evt models.ShipmentCreatedEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(string(body)),
		Subject:  aws.String("shipment.created"),
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}

	p.logger.Info("published shipment created event",
		zap.String("shipment_number", evt.ShipmentNumber))
	return nil
}

// NopPublisher discards events. Used when no topic is configured.
type NopPublisher struct{}

func (NopPublisher) PublishShipmentCreated(context.Context, models.ShipmentCreatedEvent) error {
	return nil
}
