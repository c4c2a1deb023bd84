package service

import (
	"context"
	"strings"

	"propdesk-be/internal/constant"
	"propdesk-be/internal/dto"
	"propdesk-be/internal/entity"
	"propdesk-be/internal/pkg/apperror"
	"propdesk-be/internal/pkg/logger"
	"propdesk-be/internal/pkg/metrics"
	"propdesk-be/internal/repository/unitofwork"
	"propdesk-be/pkg/search"
)

const (
	searchSourceIndex = "index"
	searchSourceStore = "store"
)

type ISearchService interface {
	Search(ctx context.Context, organizationId string, req *dto.SearchDocumentsRequest) (*dto.SearchDocumentsResponse, error)
	Index(doc *entity.Document)
	Remove(id string)
}

type searchService struct {
	uowFactory unitofwork.RepositoryFactory
	index      search.Index
	logger     logger.ILogger
	metrics    *metrics.Collector
}

// NewSearchService accepts a nil index. Searches then always go to the store.
func NewSearchService(uowFactory unitofwork.RepositoryFactory, index search.Index, log logger.ILogger, collector *metrics.Collector) ISearchService {
	return &searchService{
		uowFactory: uowFactory,
		index:      index,
		logger:     log,
		metrics:    collector,
	}
}

func (s *searchService) Search(ctx context.Context, organizationId string, req *dto.SearchDocumentsRequest) (*dto.SearchDocumentsResponse, error) {
	q := strings.TrimSpace(req.Query)
	if q == "" {
		return nil, apperror.Validation("q is required")
	}
	limit := req.Limit
	if limit < 1 {
		limit = constant.DefaultPageSize
	}
	if limit > constant.MaxPageSize {
		limit = constant.MaxPageSize
	}

	if s.index != nil && s.index.Healthy() {
		records, err := s.index.Query(organizationId, q, limit)
		if err == nil {
			items := make([]*dto.SearchHitResponse, 0, len(records))
			for _, r := range records {
				items = append(items, &dto.SearchHitResponse{Id: r.Id, Title: r.Title, Type: r.Type, Visibility: r.Visibility})
			}
			return &dto.SearchDocumentsResponse{Items: items, Source: searchSourceIndex}, nil
		}
		s.logger.Warn("SEARCH", "Index query failed, falling back to store", map[string]interface{}{"error": err.Error()})
	}

	s.metrics.SearchFellBack()
	page := entity.Page{Page: 1, PageSize: limit}
	docs, err := s.uowFactory.NewUnitOfWork(ctx).DocumentRepository().FindAll(ctx, organizationId, entity.DocumentFilter{Title: q}, page)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.SearchHitResponse, 0, len(docs))
	for _, d := range docs {
		items = append(items, &dto.SearchHitResponse{Id: d.Id, Title: d.Title, Type: d.Type, Visibility: d.Visibility})
	}
	return &dto.SearchDocumentsResponse{Items: items, Source: searchSourceStore}, nil
}

func (s *searchService) Index(doc *entity.Document) {
	if s.index == nil {
		return
	}
	err := s.index.Upsert(search.Record{
		Id:             doc.Id,
		OrganizationId: doc.OrganizationId,
		Title:          doc.Title,
		Type:           doc.Type,
		Visibility:     doc.Visibility,
		Content:        indexableContent(doc),
	})
	if err != nil {
		s.logger.Warn("SEARCH", "Failed to index document", map[string]interface{}{"document_id": doc.Id, "error": err.Error()})
	}
}

func (s *searchService) Remove(id string) {
	if s.index == nil {
		return
	}
	if err := s.index.Delete(id); err != nil {
		s.logger.Warn("SEARCH", "Failed to remove document from index", map[string]interface{}{"document_id": id, "error": err.Error()})
	}
}

// Binary payloads are not indexed.
func indexableContent(doc *entity.Document) string {
	switch doc.Type {
	case constant.DocumentTypeFile, constant.DocumentTypePdf:
		return ""
	}
	return doc.Content
}
