package model

import (
	"time"

	"gorm.io/datatypes"
)

// DocumentAssociation links a document to a property, person or tag.
// target_id is polymorphic over target_kind, so only document_id carries a foreign key.
type DocumentAssociation struct {
	DocumentId     string            `gorm:"type:varchar(64);primaryKey"`
	TargetKind     string            `gorm:"type:varchar(16);primaryKey;index:idx_document_associations_target,priority:1"`
	TargetId       string            `gorm:"type:varchar(64);primaryKey;index:idx_document_associations_target,priority:2"`
	OrganizationId string            `gorm:"type:varchar(64);not null;default:'';index"`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt      time.Time         `gorm:"autoCreateTime"`

	Document *Document `gorm:"foreignKey:DocumentId;references:Id;constraint:OnDelete:RESTRICT"`
}

func (DocumentAssociation) TableName() string {
	return "document_associations"
}
