package dto

import "time"

// AssociateRequest holds every per-kind id field. Which one is read depends on the route.
type AssociateRequest struct {
	PropertyId string                 `json:"property_id"`
	PersonId   string                 `json:"person_id"`
	TagId      string                 `json:"tag_id"`
	GroupId    string                 `json:"group_id"`
	Metadata   map[string]interface{} `json:"metadata"`
}

// Field returns the value of the json field name, or "" for unknown names.
func (r *AssociateRequest) Field(name string) string {
	switch name {
	case "property_id":
		return r.PropertyId
	case "person_id":
		return r.PersonId
	case "tag_id":
		return r.TagId
	case "group_id":
		return r.GroupId
	}
	return ""
}

type AssociationResponse struct {
	DocumentId string                 `json:"document_id"`
	TargetKind string                 `json:"target_kind"`
	TargetId   string                 `json:"target_id"`
	Metadata   map[string]interface{} `json:"metadata"`
	CreatedAt  time.Time              `json:"created_at"`
}

type DisassociateResponse struct {
	Success bool `json:"success"`
}
