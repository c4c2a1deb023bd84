package implementation

import (
	"context"
	"errors"

	"propdesk-be/internal/entity"
	"propdesk-be/internal/mapper"
	"propdesk-be/internal/model"
	"propdesk-be/internal/pkg/apperror"
	"propdesk-be/internal/repository/contract"
	"propdesk-be/internal/repository/scope"
	"propdesk-be/internal/repository/specification"

	"gorm.io/gorm"
)

type DocumentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentMapper
}

func NewDocumentRepository(db *gorm.DB) contract.DocumentRepository {
	return &DocumentRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentMapper(),
	}
}

func (r *DocumentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DocumentRepositoryImpl) Create(ctx context.Context, doc *entity.Document) error {
	m := r.mapper.ToModel(doc)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.Upstream(err, "create document")
	}
	*doc = *r.mapper.ToEntity(m)
	return nil
}

func (r *DocumentRepositoryImpl) Update(ctx context.Context, doc *entity.Document) error {
	m := r.mapper.ToModel(doc)
	res := r.db.WithContext(ctx).
		Model(&model.Document{}).
		Where("id = ? AND organization_id = ?", m.Id, m.OrganizationId).
		Select("title", "type", "visibility", "content", "metadata", "version", "updated_at").
		Updates(m)
	if res.Error != nil {
		return apperror.Upstream(res.Error, "update document")
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("document not found")
	}
	return nil
}

func (r *DocumentRepositoryImpl) Delete(ctx context.Context, organizationId string, id string) error {
	res := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationId).
		Delete(&model.Document{}, "id = ?", id)
	if res.Error != nil {
		return apperror.Upstream(res.Error, "delete document")
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("document not found")
	}
	return nil
}

func (r *DocumentRepositoryImpl) FindById(ctx context.Context, organizationId string, id string) (*entity.Document, error) {
	var m model.Document
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.ByID{ID: id},
		specification.ByOrganization{OrganizationID: organizationId},
	)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.Upstream(err, "find document")
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DocumentRepositoryImpl) FindAll(ctx context.Context, organizationId string, filter entity.DocumentFilter, page entity.Page) ([]*entity.Document, error) {
	var models []*model.Document

	specs := append([]specification.Specification{
		specification.ByOrganization{OrganizationID: organizationId},
	}, specification.FromDocumentFilter(filter)...)
	specs = append(specs, specification.Pagination{Limit: page.PageSize, Offset: page.Offset()})

	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Document{}).Scopes(scope.NewestFirst), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, apperror.Upstream(err, "list documents")
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentRepositoryImpl) Count(ctx context.Context, organizationId string, filter entity.DocumentFilter) (int64, error) {
	var count int64
	specs := append([]specification.Specification{
		specification.ByOrganization{OrganizationID: organizationId},
	}, specification.FromDocumentFilter(filter)...)

	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Document{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, apperror.Upstream(err, "count documents")
	}
	return count, nil
}
