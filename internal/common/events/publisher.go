// internal/common/events/publisher.go
package events

import (
	"context"
	"encoding/json"
	"time"

	"thenetwork-workers/internal/common/errors"
	"thenetwork-workers/internal/common/logger"
	"thenetwork-workers/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

const EventPlanGenerated = "plan.generated"

// SNSAPI is the slice of the SNS client the publisher needs.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Envelope is the JSON body of every published event.
type Envelope struct {
	EventType  string      `json:"eventType"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

// Publisher sends plan lifecycle events to an SNS topic. A Publisher without
// a client or topic drops events.
type Publisher struct {
	client   SNSAPI
	topicARN string
	logger   logger.Logger
}

func NewPublisher(client SNSAPI, topicARN string, log logger.Logger) *Publisher {
	return &Publisher{
		client:   client,
		topicARN: topicARN,
		logger:   log.WithFields(map[string]interface{}{"component": "plan-events"}),
	}
}

// NewSNSPublisher builds a Publisher from the default AWS credential chain.
func NewSNSPublisher(ctx context.Context, region, topicARN string, log logger.Logger) (*Publisher, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return NewPublisher(sns.NewFromConfig(cfg), topicARN, log), nil
}

// Enabled reports whether events are actually sent.
func (p *Publisher) Enabled() bool {
	return p != nil && p.client != nil && p.topicARN != ""
}

// PublishPlanGenerated announces a freshly generated plan.
func (p *Publisher) PublishPlanGenerated(ctx context.Context, plan *models.ReadyPlan) error {
	if !p.Enabled() {
		return nil
	}

	body, err := json.Marshal(Envelope{
		EventType:  EventPlanGenerated,
		OccurredAt: plan.GeneratedAt,
		Payload:    plan,
	})
	if err != nil {
		return errors.NewEventPublishFailedError(EventPlanGenerated, err)
	}

	attrs := map[string]types.MessageAttributeValue{
		"eventType": stringAttribute(EventPlanGenerated),
	}
	// SNS rejects empty string attributes.
	if plan.City != "" {
		attrs["city"] = stringAttribute(plan.City)
	}

	out, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn:          aws.String(p.topicARN),
		Message:           aws.String(string(body)),
		MessageAttributes: attrs,
	})
	if err != nil {
		return errors.NewEventPublishFailedError(EventPlanGenerated, err)
	}

	p.logger.Debug("plan event published", map[string]interface{}{
		"planId":    plan.PlanID,
		"messageId": aws.ToString(out.MessageId),
	})
	return nil
}

func stringAttribute(v string) types.MessageAttributeValue {
	return types.MessageAttributeValue{
		DataType:    aws.String("String"),
		StringValue: aws.String(v),
	}
}
