package mapper

import (
	"time"

	"propdesk-be/internal/entity"
	"propdesk-be/internal/model"

	"gorm.io/datatypes"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.Document{
		Id:             d.Id,
		OrganizationId: d.OrganizationId,
		Title:          d.Title,
		Type:           d.Type,
		Visibility:     d.Visibility,
		Content:        d.Content,
		Metadata:       cloneMetadata(d.Metadata),
		Version:        d.Version,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.Document{
		Id:             d.Id,
		OrganizationId: d.OrganizationId,
		Title:          d.Title,
		Type:           d.Type,
		Visibility:     d.Visibility,
		Content:        d.Content,
		Metadata:       datatypes.JSONMap(cloneMetadata(d.Metadata)),
		Version:        d.Version,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}

// cloneMetadata copies the top level so callers never share a map with the store.
func cloneMetadata(src map[string]interface{}) map[string]interface{} {
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
