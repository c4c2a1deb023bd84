package specification

import (
	"propdesk-be/internal/entity"

	"gorm.io/gorm"
)

type ByDocumentID struct {
	DocumentID string
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

type ByTarget struct {
	Kind     entity.TargetKind
	TargetID string
}

func (s ByTarget) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("target_kind = ? AND target_id = ?", string(s.Kind), s.TargetID)
}
