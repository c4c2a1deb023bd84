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

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes the association table can raise.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

type AssociationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AssociationMapper
}

func NewAssociationRepository(db *gorm.DB) contract.AssociationRepository {
	return &AssociationRepositoryImpl{
		db:     db,
		mapper: mapper.NewAssociationMapper(),
	}
}

func (r *AssociationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AssociationRepositoryImpl) Create(ctx context.Context, association *entity.Association) error {
	m := r.mapper.ToModel(association)
	if err := r.db.WithContext(ctx).Omit("Document").Create(m).Error; err != nil {
		return mapAssociationError(err)
	}
	*association = *r.mapper.ToEntity(m)
	return nil
}

func (r *AssociationRepositoryImpl) Delete(ctx context.Context, organizationId string, documentId string, kind entity.TargetKind, targetId string) error {
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.ByOrganization{OrganizationID: organizationId},
		specification.ByDocumentID{DocumentID: documentId},
		specification.ByTarget{Kind: kind, TargetID: targetId},
	)
	res := query.Delete(&model.DocumentAssociation{})
	if res.Error != nil {
		return apperror.Upstream(res.Error, "delete association")
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("association not found")
	}
	return nil
}

func (r *AssociationRepositoryImpl) DeleteByDocument(ctx context.Context, organizationId string, documentId string) (int64, error) {
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.ByOrganization{OrganizationID: organizationId},
		specification.ByDocumentID{DocumentID: documentId},
	)
	res := query.Delete(&model.DocumentAssociation{})
	if res.Error != nil {
		return 0, apperror.Upstream(res.Error, "delete document associations")
	}
	return res.RowsAffected, nil
}

func (r *AssociationRepositoryImpl) FindOne(ctx context.Context, organizationId string, documentId string, kind entity.TargetKind, targetId string) (*entity.Association, error) {
	var m model.DocumentAssociation
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.ByOrganization{OrganizationID: organizationId},
		specification.ByDocumentID{DocumentID: documentId},
		specification.ByTarget{Kind: kind, TargetID: targetId},
	)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.Upstream(err, "find association")
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AssociationRepositoryImpl) FindByDocument(ctx context.Context, organizationId string, documentId string) ([]*entity.Association, error) {
	var rows []*model.DocumentAssociation
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.ByOrganization{OrganizationID: organizationId},
		specification.ByDocumentID{DocumentID: documentId},
	)
	if err := query.Scopes(scope.OldestFirst).Find(&rows).Error; err != nil {
		return nil, apperror.Upstream(err, "list associations")
	}
	return r.mapper.ToEntities(rows), nil
}

// mapAssociationError turns a dangling document reference into NotFound.
func mapAssociationError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return apperror.NotFound("document not found")
		case pgUniqueViolation:
			return contract.ErrAssociationExists
		}
	}
	return apperror.Upstream(err, "create association")
}
