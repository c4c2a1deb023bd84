package entity

import "time"

// Target is a property, person or tag a document can be linked to.
// Only existence and tenancy matter to the document model.
type Target struct {
	Id             string
	Kind           TargetKind
	OrganizationId string
	Name           string
	CreatedAt      time.Time
}
