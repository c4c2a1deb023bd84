// Package search keeps a full-text index of document titles and content.
package search

// Record is the indexed projection of a document.
type Record struct {
	Id             string `json:"id"`
	OrganizationId string `json:"organization_id"`
	Title          string `json:"title"`
	Type           string `json:"type"`
	Visibility     string `json:"visibility"`
	Content        string `json:"content"`
}

// Index is implemented by Meili. Callers fall back to the store when Healthy is false.
type Index interface {
	Healthy() bool
	Upsert(record Record) error
	Delete(id string) error
	Query(organizationId, q string, limit int) ([]Record, error)
	Close()
}
