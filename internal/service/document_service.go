package service

import (
	"context"
	"strings"
	"time"

	"propdesk-be/internal/constant"
	"propdesk-be/internal/dto"
	"propdesk-be/internal/entity"
	"propdesk-be/internal/pkg/apperror"
	"propdesk-be/internal/pkg/logger"
	"propdesk-be/internal/pkg/metrics"
	"propdesk-be/internal/repository/unitofwork"
	"propdesk-be/pkg/content"

	"github.com/google/uuid"
)

type IDocumentService interface {
	List(ctx context.Context, organizationId string, req *dto.ListDocumentsRequest) (*dto.DocumentListResponse, error)
	Show(ctx context.Context, organizationId string, id string) (*dto.DocumentResponse, error)
	Create(ctx context.Context, organizationId string, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error)
	Update(ctx context.Context, organizationId string, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error)
	Delete(ctx context.Context, organizationId string, id string) (*dto.DeleteDocumentResponse, error)
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
	metrics          *metrics.Collector
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
	collector *metrics.Collector,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           log,
		metrics:          collector,
	}
}

// derived metadata keys, recomputed whenever the payload changes
var derivedMetadataKeys = []string{"size", "size_human", "page_count"}

func (s *documentService) List(ctx context.Context, organizationId string, req *dto.ListDocumentsRequest) (*dto.DocumentListResponse, error) {
	if req.Visibility != "" && !entity.IsValidVisibility(req.Visibility) {
		return nil, invalidVisibility()
	}

	filter := entity.DocumentFilter{
		Title:      strings.TrimSpace(req.Title),
		Type:       req.Type,
		Visibility: req.Visibility,
		PropertyId: req.PropertyId,
		PersonId:   req.PersonId,
		GroupId:    req.GroupId,
	}
	page := entity.Page{Page: req.Page, PageSize: req.PageSize}
	page.Normalize()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	docs, err := uow.DocumentRepository().FindAll(ctx, organizationId, filter, page)
	if err != nil {
		return nil, err
	}
	total, err := uow.DocumentRepository().Count(ctx, organizationId, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		items = append(items, toDocumentResponse(doc))
	}

	return &dto.DocumentListResponse{
		Items:      items,
		HasMore:    int64(page.Offset()+len(docs)) < total,
		TotalCount: total,
	}, nil
}

func (s *documentService) Show(ctx context.Context, organizationId string, id string) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := findDocument(ctx, uow, organizationId, id)
	if err != nil {
		return nil, err
	}

	associations, err := uow.AssociationRepository().FindByDocument(ctx, organizationId, id)
	if err != nil {
		return nil, err
	}
	doc.Associations = associations

	return toDocumentResponse(doc), nil
}

func (s *documentService) Create(ctx context.Context, organizationId string, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.Validation("title is required")
	}
	docType := strings.TrimSpace(req.Type)
	if docType == "" {
		return nil, apperror.Validation("type is required")
	}
	visibility := req.Visibility
	if visibility == "" {
		visibility = constant.VisibilityInternal
	}
	if !entity.IsValidVisibility(visibility) {
		return nil, invalidVisibility()
	}

	payload := req.CanonicalContent()
	metadata, err := s.inspectPayload(docType, payload, cloneMetadata(req.Metadata))
	if err != nil {
		return nil, err
	}

	doc := entity.Document{
		Id:             uuid.NewString(),
		OrganizationId: organizationId,
		Title:          title,
		Type:           docType,
		Visibility:     visibility,
		Content:        payload,
		Metadata:       metadata,
		Version:        1,
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
		return nil, err
	}

	s.metrics.DocumentWritten("create")
	s.publish(ctx, constant.EventDocumentCreated, &doc)

	return toDocumentResponse(&doc), nil
}

func (s *documentService) Update(ctx context.Context, organizationId string, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, apperror.Validation("title is required")
	}
	if req.Type != nil && strings.TrimSpace(*req.Type) == "" {
		return nil, apperror.Validation("type is required")
	}
	if req.Visibility != nil && !entity.IsValidVisibility(*req.Visibility) {
		return nil, invalidVisibility()
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := findDocument(ctx, uow, organizationId, req.Id)
	if err != nil {
		return nil, err
	}

	payloadChanged := false
	if req.Title != nil {
		doc.Title = strings.TrimSpace(*req.Title)
	}
	if req.Type != nil {
		payloadChanged = doc.Type != strings.TrimSpace(*req.Type)
		doc.Type = strings.TrimSpace(*req.Type)
	}
	if req.Visibility != nil {
		doc.Visibility = *req.Visibility
	}
	if req.HasContent() {
		doc.Content = req.CanonicalContent()
		payloadChanged = true
	}
	if req.Metadata != nil {
		doc.Metadata = cloneMetadata(req.Metadata)
	} else if payloadChanged {
		for _, k := range derivedMetadataKeys {
			delete(doc.Metadata, k)
		}
	}

	if payloadChanged {
		doc.Metadata, err = s.inspectPayload(doc.Type, doc.Content, doc.Metadata)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	doc.Version++
	doc.UpdatedAt = &now

	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return nil, err
	}

	s.metrics.DocumentWritten("update")
	s.publish(ctx, constant.EventDocumentUpdated, doc)

	return toDocumentResponse(doc), nil
}

// Delete removes the document only. Its associations are left for the cleanup consumer.
func (s *documentService) Delete(ctx context.Context, organizationId string, id string) (*dto.DeleteDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := findDocument(ctx, uow, organizationId, id)
	if err != nil {
		return nil, err
	}

	if err := uow.DocumentRepository().Delete(ctx, organizationId, id); err != nil {
		return nil, err
	}

	s.metrics.DocumentWritten("delete")
	s.publish(ctx, constant.EventDocumentDeleted, doc)

	return &dto.DeleteDocumentResponse{
		Success: true,
		Id:      id,
	}, nil
}

func (s *documentService) inspectPayload(docType, payload string, metadata map[string]interface{}) (map[string]interface{}, error) {
	facts, err := content.Inspect(docType, payload)
	if err != nil {
		return nil, apperror.Validation("%s", err.Error())
	}
	if facts != nil && facts.PageCountErr != nil {
		s.logger.Warn("DOCUMENT", "Could not read pdf page count", map[string]interface{}{
			"error": facts.PageCountErr.Error(),
		})
	}
	return facts.Apply(metadata), nil
}

func (s *documentService) publish(ctx context.Context, eventType string, doc *entity.Document) {
	err := s.publisherService.Publish(ctx, dto.DocumentEventMessage{
		Type:           eventType,
		DocumentId:     doc.Id,
		OrganizationId: doc.OrganizationId,
	})
	if err != nil {
		s.logger.Error("DOCUMENT", "Failed to publish document event", map[string]interface{}{
			"type":        eventType,
			"document_id": doc.Id,
			"error":       err.Error(),
		})
	}
}

func findDocument(ctx context.Context, uow unitofwork.UnitOfWork, organizationId string, id string) (*entity.Document, error) {
	doc, err := uow.DocumentRepository().FindById(ctx, organizationId, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperror.NotFound("document not found")
	}
	return doc, nil
}

func invalidVisibility() error {
	return apperror.Validation("visibility must be one of: %s, %s, %s",
		constant.VisibilityInternal, constant.VisibilityExternal, constant.VisibilityConfidential)
}

func cloneMetadata(src map[string]interface{}) map[string]interface{} {
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func toDocumentResponse(doc *entity.Document) *dto.DocumentResponse {
	res := &dto.DocumentResponse{
		Id:             doc.Id,
		OrganizationId: doc.OrganizationId,
		Title:          doc.Title,
		Type:           doc.Type,
		Visibility:     doc.Visibility,
		Content:        doc.Content,
		Data:           doc.Content,
		Metadata:       doc.Metadata,
		Version:        doc.Version,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
	if res.Metadata == nil {
		res.Metadata = map[string]interface{}{}
	}
	if doc.Associations != nil {
		res.Associations = make([]*dto.AssociationResponse, 0, len(doc.Associations))
		for _, a := range doc.Associations {
			res.Associations = append(res.Associations, toAssociationResponse(a))
		}
	}
	return res
}

func toAssociationResponse(a *entity.Association) *dto.AssociationResponse {
	metadata := a.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return &dto.AssociationResponse{
		DocumentId: a.DocumentId,
		TargetKind: string(a.TargetKind),
		TargetId:   a.TargetId,
		Metadata:   metadata,
		CreatedAt:  a.CreatedAt,
	}
}
