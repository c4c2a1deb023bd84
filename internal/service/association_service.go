package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"propdesk-be/internal/constant"
	"propdesk-be/internal/dto"
	"propdesk-be/internal/entity"
	"propdesk-be/internal/pkg/apperror"
	"propdesk-be/internal/pkg/logger"
	"propdesk-be/internal/pkg/metrics"
	"propdesk-be/internal/repository/contract"
	"propdesk-be/internal/repository/unitofwork"
)

// TargetRule is the per-kind part of an association: which request fields carry the
// target id and any extra check on that id.
type TargetRule struct {
	Kind entity.TargetKind
	// Field is the canonical request field, used in error messages.
	Field string
	// Aliases are read in order when Field is empty.
	Aliases  []string
	Validate func(targetId string) error
}

func (r TargetRule) TargetId(req *dto.AssociateRequest) string {
	if id := strings.TrimSpace(req.Field(r.Field)); id != "" {
		return id
	}
	for _, alias := range r.Aliases {
		if id := strings.TrimSpace(req.Field(alias)); id != "" {
			return id
		}
	}
	return ""
}

const maxTargetIdLength = 64

func targetIdFits(field string) func(string) error {
	return func(targetId string) error {
		if len(targetId) > maxTargetIdLength {
			return apperror.Validation("%s must be at most %d characters", field, maxTargetIdLength)
		}
		return nil
	}
}

// DefaultTargetRules covers properties, people and tags. Tags take the older group_id as the tag id.
func DefaultTargetRules() map[entity.TargetKind]TargetRule {
	return map[entity.TargetKind]TargetRule{
		entity.TargetKindProperty: {
			Kind:     entity.TargetKindProperty,
			Field:    "property_id",
			Validate: targetIdFits("property_id"),
		},
		entity.TargetKindPerson: {
			Kind:     entity.TargetKindPerson,
			Field:    "person_id",
			Validate: targetIdFits("person_id"),
		},
		entity.TargetKindTag: {
			Kind:     entity.TargetKindTag,
			Field:    "tag_id",
			Aliases:  []string{"group_id"},
			Validate: targetIdFits("tag_id"),
		},
	}
}

type IAssociationService interface {
	// Associate links a document to a target. created is false when the link already existed.
	Associate(ctx context.Context, organizationId string, kind entity.TargetKind, documentId string, req *dto.AssociateRequest) (res *dto.AssociationResponse, created bool, err error)
	Disassociate(ctx context.Context, organizationId string, kind entity.TargetKind, documentId string, targetId string) (*dto.DisassociateResponse, error)
}

type associationService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	rules            map[entity.TargetKind]TargetRule
	logger           logger.ILogger
	metrics          *metrics.Collector
}

func NewAssociationService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	rules map[entity.TargetKind]TargetRule,
	log logger.ILogger,
	collector *metrics.Collector,
) IAssociationService {
	return &associationService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		rules:            rules,
		logger:           log,
		metrics:          collector,
	}
}

func (s *associationService) rule(kind entity.TargetKind) (TargetRule, error) {
	rule, ok := s.rules[kind]
	if !ok {
		return TargetRule{}, apperror.Validation("unsupported target kind %q", kind)
	}
	return rule, nil
}

func (s *associationService) Associate(ctx context.Context, organizationId string, kind entity.TargetKind, documentId string, req *dto.AssociateRequest) (*dto.AssociationResponse, bool, error) {
	rule, err := s.rule(kind)
	if err != nil {
		return nil, false, err
	}

	targetId := rule.TargetId(req)
	if err := s.validateTarget(rule, targetId); err != nil {
		return nil, false, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, false, apperror.Upstream(err, "begin association transaction")
	}
	defer uow.Rollback()

	if err := s.checkEndpoints(ctx, uow, organizationId, rule, documentId, targetId); err != nil {
		return nil, false, err
	}

	existing, err := uow.AssociationRepository().FindOne(ctx, organizationId, documentId, kind, targetId)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return toAssociationResponse(existing), false, nil
	}

	association := entity.Association{
		DocumentId:     documentId,
		TargetKind:     kind,
		TargetId:       targetId,
		OrganizationId: organizationId,
		Metadata:       cloneMetadata(req.Metadata),
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}
	if err := uow.AssociationRepository().Create(ctx, &association); err != nil {
		if errors.Is(err, contract.ErrAssociationExists) {
			// A concurrent request stored the link first. The failed insert aborts a postgres
			// transaction, so the winner's row is read outside it.
			uow.Rollback()
			return s.existingAssociation(ctx, organizationId, kind, documentId, targetId)
		}
		return nil, false, err
	}
	if err := uow.Commit(); err != nil {
		return nil, false, apperror.Upstream(err, "commit association")
	}

	s.metrics.AssociationWritten("create", kind.String())
	s.publish(ctx, constant.EventDocumentAssociated, &association)

	return toAssociationResponse(&association), true, nil
}

func (s *associationService) existingAssociation(ctx context.Context, organizationId string, kind entity.TargetKind, documentId string, targetId string) (*dto.AssociationResponse, bool, error) {
	existing, err := s.uowFactory.NewUnitOfWork(ctx).AssociationRepository().FindOne(ctx, organizationId, documentId, kind, targetId)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, apperror.Upstream(contract.ErrAssociationExists, "association changed concurrently")
	}
	return toAssociationResponse(existing), false, nil
}

func (s *associationService) Disassociate(ctx context.Context, organizationId string, kind entity.TargetKind, documentId string, targetId string) (*dto.DisassociateResponse, error) {
	rule, err := s.rule(kind)
	if err != nil {
		return nil, err
	}

	targetId = strings.TrimSpace(targetId)
	if err := s.validateTarget(rule, targetId); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.checkEndpoints(ctx, uow, organizationId, rule, documentId, targetId); err != nil {
		return nil, err
	}

	if err := uow.AssociationRepository().Delete(ctx, organizationId, documentId, kind, targetId); err != nil {
		return nil, err
	}

	s.metrics.AssociationWritten("delete", kind.String())
	s.publish(ctx, constant.EventDocumentDisassociated, &entity.Association{
		DocumentId:     documentId,
		TargetKind:     kind,
		TargetId:       targetId,
		OrganizationId: organizationId,
	})

	return &dto.DisassociateResponse{Success: true}, nil
}

func (s *associationService) validateTarget(rule TargetRule, targetId string) error {
	if targetId == "" {
		return apperror.Validation("%s is required", rule.Field)
	}
	if rule.Validate != nil {
		return rule.Validate(targetId)
	}
	return nil
}

// checkEndpoints requires both the document and the target to exist in the organization.
func (s *associationService) checkEndpoints(ctx context.Context, uow unitofwork.UnitOfWork, organizationId string, rule TargetRule, documentId string, targetId string) error {
	if _, err := findDocument(ctx, uow, organizationId, documentId); err != nil {
		return err
	}

	exists, err := uow.TargetRepository().Exists(ctx, organizationId, rule.Kind, targetId)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NotFound("%s not found", rule.Kind)
	}
	return nil
}

func (s *associationService) publish(ctx context.Context, eventType string, a *entity.Association) {
	err := s.publisherService.Publish(ctx, dto.DocumentEventMessage{
		Type:           eventType,
		DocumentId:     a.DocumentId,
		OrganizationId: a.OrganizationId,
		TargetKind:     string(a.TargetKind),
		TargetId:       a.TargetId,
	})
	if err != nil {
		s.logger.Error("ASSOCIATION", "Failed to publish association event", map[string]interface{}{
			"type":        eventType,
			"document_id": a.DocumentId,
			"error":       err.Error(),
		})
	}
}
