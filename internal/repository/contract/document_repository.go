package contract

import (
	"context"

	"propdesk-be/internal/entity"
)

// DocumentRepository persists documents scoped by organization.
// Find methods return (nil, nil) when nothing matches.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	Update(ctx context.Context, doc *entity.Document) error
	Delete(ctx context.Context, organizationId string, id string) error
	FindById(ctx context.Context, organizationId string, id string) (*entity.Document, error)
	FindAll(ctx context.Context, organizationId string, filter entity.DocumentFilter, page entity.Page) ([]*entity.Document, error)
	Count(ctx context.Context, organizationId string, filter entity.DocumentFilter) (int64, error)
}
