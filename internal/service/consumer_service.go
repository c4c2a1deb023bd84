package service

import (
	"context"
	"encoding/json"

	"propdesk-be/internal/constant"
	"propdesk-be/internal/dto"
	"propdesk-be/internal/pkg/logger"
	"propdesk-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService keeps the search index in step with document writes and, when cleanup
// is enabled, removes the associations of deleted documents.
type consumerService struct {
	subscriber    message.Subscriber
	topicName     string
	uowFactory    unitofwork.RepositoryFactory
	searchService ISearchService
	cleanup       bool
	logger        logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	searchService ISearchService,
	cleanup bool,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:    subscriber,
		topicName:     topicName,
		uowFactory:    uowFactory,
		searchService: searchService,
		cleanup:       cleanup,
		logger:        log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// Every message is acked. A failed index or cleanup is logged and not retried.
	defer msg.Ack()

	var event dto.DocumentEventMessage
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal document event", map[string]interface{}{"error": err.Error()})
		return
	}

	switch event.Type {
	case constant.EventDocumentCreated, constant.EventDocumentUpdated:
		cs.reindex(ctx, event)
	case constant.EventDocumentDeleted:
		cs.searchService.Remove(event.DocumentId)
		if cs.cleanup {
			cs.removeAssociations(ctx, event)
		}
	}
}

func (cs *consumerService) reindex(ctx context.Context, event dto.DocumentEventMessage) {
	doc, err := cs.uowFactory.NewUnitOfWork(ctx).DocumentRepository().FindById(ctx, event.OrganizationId, event.DocumentId)
	if err != nil {
		cs.logger.Error("CONSUMER", "Failed to load document for indexing", map[string]interface{}{
			"document_id": event.DocumentId,
			"error":       err.Error(),
		})
		return
	}
	if doc == nil {
		// Deleted before the event was handled.
		return
	}
	cs.searchService.Index(doc)
}

func (cs *consumerService) removeAssociations(ctx context.Context, event dto.DocumentEventMessage) {
	removed, err := cs.uowFactory.NewUnitOfWork(ctx).AssociationRepository().DeleteByDocument(ctx, event.OrganizationId, event.DocumentId)
	if err != nil {
		cs.logger.Error("CONSUMER", "Failed to remove associations of deleted document", map[string]interface{}{
			"document_id": event.DocumentId,
			"error":       err.Error(),
		})
		return
	}
	if removed > 0 {
		cs.logger.Info("CONSUMER", "Removed associations of deleted document", map[string]interface{}{
			"document_id": event.DocumentId,
			"removed":     removed,
		})
	}
}
