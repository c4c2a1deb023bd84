package specification

import (
	"strings"

	"propdesk-be/internal/entity"

	"gorm.io/gorm"
)

// TitleContains is a case-insensitive substring match on documents.title
type TitleContains struct {
	Title string
}

func (s TitleContains) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + escapeLike(s.Title) + "%"
	return db.Where("documents.title ILIKE ?", pattern)
}

type ByType struct {
	Type string
}

func (s ByType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("documents.type = ?", s.Type)
}

type ByVisibility struct {
	Visibility string
}

func (s ByVisibility) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("documents.visibility = ?", s.Visibility)
}

// AssociatedWith keeps documents linked to the given target
type AssociatedWith struct {
	Kind     entity.TargetKind
	TargetID string
}

func (s AssociatedWith) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"documents.id IN (SELECT document_id FROM document_associations WHERE target_kind = ? AND target_id = ?)",
		string(s.Kind), s.TargetID,
	)
}

// FromDocumentFilter expands a filter into specifications. Empty fields add nothing.
func FromDocumentFilter(f entity.DocumentFilter) []Specification {
	specs := make([]Specification, 0, 6)
	if f.Title != "" {
		specs = append(specs, TitleContains{Title: f.Title})
	}
	if f.Type != "" {
		specs = append(specs, ByType{Type: f.Type})
	}
	if f.Visibility != "" {
		specs = append(specs, ByVisibility{Visibility: f.Visibility})
	}
	if f.PropertyId != "" {
		specs = append(specs, AssociatedWith{Kind: entity.TargetKindProperty, TargetID: f.PropertyId})
	}
	if f.PersonId != "" {
		specs = append(specs, AssociatedWith{Kind: entity.TargetKindPerson, TargetID: f.PersonId})
	}
	if f.GroupId != "" {
		specs = append(specs, AssociatedWith{Kind: entity.TargetKindTag, TargetID: f.GroupId})
	}
	return specs
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
