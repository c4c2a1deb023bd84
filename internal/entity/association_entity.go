package entity

import "time"

// TargetKind is the category of entity a document association points to.
type TargetKind string

const (
	TargetKindProperty TargetKind = "property"
	TargetKindPerson   TargetKind = "person"
	TargetKindTag      TargetKind = "tag"
)

var TargetKinds = []TargetKind{TargetKindProperty, TargetKindPerson, TargetKindTag}

func (k TargetKind) Valid() bool {
	switch k {
	case TargetKindProperty, TargetKindPerson, TargetKindTag:
		return true
	}
	return false
}

func (k TargetKind) String() string {
	return string(k)
}

// Association is identified by (DocumentId, TargetKind, TargetId).
type Association struct {
	DocumentId     string
	TargetKind     TargetKind
	TargetId       string
	OrganizationId string
	Metadata       map[string]interface{}
	CreatedAt      time.Time
}
