package implementation

import (
	"context"

	"propdesk-be/internal/entity"
	"propdesk-be/internal/mapper"
	"propdesk-be/internal/pkg/apperror"
	"propdesk-be/internal/repository/contract"
	"propdesk-be/internal/repository/specification"

	"gorm.io/gorm"
)

type TargetRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TargetMapper
}

func NewTargetRepository(db *gorm.DB) contract.TargetRepository {
	return &TargetRepositoryImpl{
		db:     db,
		mapper: mapper.NewTargetMapper(),
	}
}

func (r *TargetRepositoryImpl) Create(ctx context.Context, target *entity.Target) error {
	if err := r.db.WithContext(ctx).Create(r.mapper.ToModel(target)).Error; err != nil {
		return apperror.Upstream(err, "create %s", target.Kind)
	}
	return nil
}

func (r *TargetRepositoryImpl) Exists(ctx context.Context, organizationId string, kind entity.TargetKind, id string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Table(r.mapper.TableName(kind))
	query = specification.ByID{ID: id}.Apply(query)
	query = specification.ByOrganization{OrganizationID: organizationId}.Apply(query)
	if err := query.Count(&count).Error; err != nil {
		return false, apperror.Upstream(err, "lookup %s", kind)
	}
	return count > 0, nil
}
