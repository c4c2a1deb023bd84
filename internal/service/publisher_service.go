package service

import (
	"context"
	"encoding/json"

	"propdesk-be/internal/dto"
	"propdesk-be/internal/pkg/logger"
	"propdesk-be/pkg/events"
	pktNats "propdesk-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	Publish(ctx context.Context, event dto.DocumentEventMessage) error
}

type publisherService struct {
	topicName      string
	publisher      message.Publisher
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

// NewPublisherService publishes to the in-process topic and, when eventPublisher is set,
// mirrors each event to NATS. A NATS failure is logged only.
func NewPublisherService(topicName string, publisher message.Publisher, eventPublisher *pktNats.Publisher, log logger.ILogger) IPublisherService {
	return &publisherService{
		topicName:      topicName,
		publisher:      publisher,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (p *publisherService) Publish(ctx context.Context, event dto.DocumentEventMessage) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		return err
	}

	if p.eventPublisher != nil {
		evt := events.NewDocumentEvent(event.Type, event.OrganizationId, event.DocumentId, map[string]interface{}{
			"target_kind": event.TargetKind,
			"target_id":   event.TargetId,
		})
		if err := p.eventPublisher.Publish(ctx, evt); err != nil {
			p.logger.Warn("EVENTS", "Failed to publish event to NATS", map[string]interface{}{
				"type":  event.Type,
				"error": err.Error(),
			})
		}
	}

	return nil
}
