package model

import "time"

// Target holds the columns shared by the properties, people and tags tables.
type Target struct {
	Id             string    `gorm:"type:varchar(64);primaryKey"`
	OrganizationId string    `gorm:"type:varchar(64);not null;default:'';index"`
	Name           string    `gorm:"type:varchar(255);not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

type Property struct {
	Target
}

func (Property) TableName() string {
	return "properties"
}

type Person struct {
	Target
}

func (Person) TableName() string {
	return "people"
}

// Tag replaces the older "group" concept; group ids are tag ids.
type Tag struct {
	Target
}

func (Tag) TableName() string {
	return "tags"
}
