package service

import (
	"context"
	"errors"

	"propdesk-be/internal/dto"
	"propdesk-be/internal/entity"
	"propdesk-be/internal/pkg/apperror"
	"propdesk-be/internal/pkg/download"
	"propdesk-be/internal/pkg/logger"
	"propdesk-be/internal/pkg/metrics"
	"propdesk-be/internal/repository/unitofwork"
	"propdesk-be/pkg/content"
	"propdesk-be/pkg/markdown"
)

type IRenderService interface {
	// Render never fails on bad markdown. It returns the raw text with Rendered=false instead.
	Render(ctx context.Context, organizationId string, id string) (*dto.RenderDocumentResponse, error)
	Download(ctx context.Context, organizationId string, id string) (*content.Download, error)
	DownloadLink(ctx context.Context, organizationId string, id string) (*dto.DownloadLinkResponse, error)
	Redeem(ctx context.Context, token string) (*content.Download, error)
}

type renderService struct {
	uowFactory unitofwork.RepositoryFactory
	renderer   *markdown.Renderer
	linker     download.Linker
	logger     logger.ILogger
	metrics    *metrics.Collector
}

func NewRenderService(
	uowFactory unitofwork.RepositoryFactory,
	renderer *markdown.Renderer,
	linker download.Linker,
	log logger.ILogger,
	collector *metrics.Collector,
) IRenderService {
	return &renderService{
		uowFactory: uowFactory,
		renderer:   renderer,
		linker:     linker,
		logger:     log,
		metrics:    collector,
	}
}

func (s *renderService) Render(ctx context.Context, organizationId string, id string) (*dto.RenderDocumentResponse, error) {
	doc, err := findDocument(ctx, s.uowFactory.NewUnitOfWork(ctx), organizationId, id)
	if err != nil {
		return nil, err
	}

	res := &dto.RenderDocumentResponse{
		Id:   doc.Id,
		Type: doc.Type,
	}

	// Only markdown gets an inline preview. Other payloads are reached through the download link.
	if !doc.IsMarkdown() {
		link, err := s.link(ctx, doc)
		if err != nil {
			s.logger.Warn("RENDER", "Download link unavailable", map[string]interface{}{
				"document_id": doc.Id,
				"error":       err.Error(),
			})
			return res, nil
		}
		res.DownloadUrl = link.URL
		return res, nil
	}

	res.Content = doc.Content
	html, err := s.renderer.Render(doc.Content)
	if err != nil {
		renderErr := apperror.Render(err, "render markdown")
		s.metrics.RenderFellBack()
		s.logger.Warn("RENDER", "Markdown render failed, serving raw text", map[string]interface{}{
			"document_id": doc.Id,
			"error":       renderErr.Error(),
		})
		return res, nil
	}

	res.Rendered = true
	res.Html = html
	return res, nil
}

func (s *renderService) Download(ctx context.Context, organizationId string, id string) (*content.Download, error) {
	doc, err := findDocument(ctx, s.uowFactory.NewUnitOfWork(ctx), organizationId, id)
	if err != nil {
		return nil, err
	}
	return buildDownload(doc)
}

func (s *renderService) DownloadLink(ctx context.Context, organizationId string, id string) (*dto.DownloadLinkResponse, error) {
	doc, err := findDocument(ctx, s.uowFactory.NewUnitOfWork(ctx), organizationId, id)
	if err != nil {
		return nil, err
	}

	link, err := s.link(ctx, doc)
	if err != nil {
		return nil, err
	}
	return &dto.DownloadLinkResponse{Url: link.URL, ExpiresAt: link.ExpiresAt}, nil
}

func (s *renderService) Redeem(ctx context.Context, token string) (*content.Download, error) {
	ticket, err := s.linker.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, download.ErrTokenNotFound) {
			return nil, apperror.NotFound("%s", err.Error())
		}
		return nil, apperror.Upstream(err, "resolve download link")
	}
	return s.Download(ctx, ticket.OrganizationId, ticket.DocumentId)
}

func (s *renderService) link(ctx context.Context, doc *entity.Document) (*download.Link, error) {
	d, err := buildDownload(doc)
	if err != nil {
		return nil, err
	}
	link, err := s.linker.Link(ctx, doc.OrganizationId, doc.Id, d)
	if err != nil {
		return nil, apperror.Upstream(err, "create download link")
	}
	return link, nil
}

func buildDownload(doc *entity.Document) (*content.Download, error) {
	d, err := content.BuildDownload(doc.Title, doc.Type, doc.Content, doc.Metadata)
	if err != nil {
		return nil, apperror.Upstream(err, "stored payload of document %s is unreadable", doc.Id)
	}
	return d, nil
}
