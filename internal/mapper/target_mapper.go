package mapper

import (
	"propdesk-be/internal/entity"
	"propdesk-be/internal/model"
)

type TargetMapper struct{}

func NewTargetMapper() *TargetMapper {
	return &TargetMapper{}
}

// ToModel returns the concrete table model for the target's kind, ready for gorm.Create.
func (m *TargetMapper) ToModel(t *entity.Target) interface{} {
	row := model.Target{
		Id:             t.Id,
		OrganizationId: t.OrganizationId,
		Name:           t.Name,
		CreatedAt:      t.CreatedAt,
	}
	switch t.Kind {
	case entity.TargetKindPerson:
		return &model.Person{Target: row}
	case entity.TargetKindTag:
		return &model.Tag{Target: row}
	default:
		return &model.Property{Target: row}
	}
}

// TableName resolves the table holding targets of the given kind.
func (m *TargetMapper) TableName(kind entity.TargetKind) string {
	switch kind {
	case entity.TargetKindPerson:
		return model.Person{}.TableName()
	case entity.TargetKindTag:
		return model.Tag{}.TableName()
	default:
		return model.Property{}.TableName()
	}
}
