package contract

import (
	"context"

	"propdesk-be/internal/entity"
	"propdesk-be/internal/pkg/apperror"
)

// ErrAssociationExists is returned by Create when the (document, kind, target) key is already stored.
var ErrAssociationExists = apperror.Validation("association already exists")

type AssociationRepository interface {
	Create(ctx context.Context, association *entity.Association) error
	Delete(ctx context.Context, organizationId string, documentId string, kind entity.TargetKind, targetId string) error
	DeleteByDocument(ctx context.Context, organizationId string, documentId string) (int64, error)
	FindOne(ctx context.Context, organizationId string, documentId string, kind entity.TargetKind, targetId string) (*entity.Association, error)
	FindByDocument(ctx context.Context, organizationId string, documentId string) ([]*entity.Association, error)
}
