package mapper

import (
	"propdesk-be/internal/entity"
	"propdesk-be/internal/model"

	"gorm.io/datatypes"
)

type AssociationMapper struct{}

func NewAssociationMapper() *AssociationMapper {
	return &AssociationMapper{}
}

func (m *AssociationMapper) ToEntity(a *model.DocumentAssociation) *entity.Association {
	if a == nil {
		return nil
	}
	return &entity.Association{
		DocumentId:     a.DocumentId,
		TargetKind:     entity.TargetKind(a.TargetKind),
		TargetId:       a.TargetId,
		OrganizationId: a.OrganizationId,
		Metadata:       cloneMetadata(a.Metadata),
		CreatedAt:      a.CreatedAt,
	}
}

func (m *AssociationMapper) ToModel(a *entity.Association) *model.DocumentAssociation {
	if a == nil {
		return nil
	}
	return &model.DocumentAssociation{
		DocumentId:     a.DocumentId,
		TargetKind:     string(a.TargetKind),
		TargetId:       a.TargetId,
		OrganizationId: a.OrganizationId,
		Metadata:       datatypes.JSONMap(cloneMetadata(a.Metadata)),
		CreatedAt:      a.CreatedAt,
	}
}

func (m *AssociationMapper) ToEntities(rows []*model.DocumentAssociation) []*entity.Association {
	entities := make([]*entity.Association, len(rows))
	for i, a := range rows {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
