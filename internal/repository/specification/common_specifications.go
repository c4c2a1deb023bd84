package specification

import "gorm.io/gorm"

// ByID filters by primary key
type ByID struct {
	ID string
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// ByOrganization scopes a query to one tenant. An empty id is the default tenant, not "any".
type ByOrganization struct {
	OrganizationID string
}

func (s ByOrganization) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("organization_id = ?", s.OrganizationID)
}

// Pagination
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit).Offset(s.Offset)
}
