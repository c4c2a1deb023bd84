package entity

import (
	"math"
	"time"

	"propdesk-be/internal/constant"
)

type Document struct {
	Id             string
	OrganizationId string
	Title          string
	Type           string
	Visibility     string
	Content        string
	Metadata       map[string]interface{}
	Version        int
	CreatedAt      time.Time
	UpdatedAt      *time.Time

	// Denormalized view filled on reads. Not authoritative.
	Associations []*Association
}

func (d *Document) IsMarkdown() bool {
	return d.Type == constant.DocumentTypeMarkdown
}

// IsValidVisibility reports whether v is one of internal, external, confidential.
func IsValidVisibility(v string) bool {
	switch v {
	case constant.VisibilityInternal, constant.VisibilityExternal, constant.VisibilityConfidential:
		return true
	}
	return false
}

// DocumentFilter combines with AND semantics. Empty fields impose no constraint.
type DocumentFilter struct {
	Title      string
	Type       string
	Visibility string
	PropertyId string
	PersonId   string
	GroupId    string
}

type Page struct {
	Page     int
	PageSize int
}

// Normalize clamps the size into [1, constant.MaxPageSize] and the page so its offset fits in an int.
func (p *Page) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = constant.DefaultPageSize
	}
	if p.PageSize > constant.MaxPageSize {
		p.PageSize = constant.MaxPageSize
	}
	// Keep (Page-1)*PageSize inside int.
	if p.Page > math.MaxInt/p.PageSize {
		p.Page = math.MaxInt / p.PageSize
	}
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.PageSize
}
