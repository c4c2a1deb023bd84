package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Document struct {
	Id             string            `gorm:"type:varchar(64);primaryKey"`
	OrganizationId string            `gorm:"type:varchar(64);not null;default:'';index"`
	Title          string            `gorm:"type:varchar(255);not null"`
	Type           string            `gorm:"type:varchar(64);not null;index"`
	Visibility     string            `gorm:"type:varchar(32);not null;default:'internal';index"`
	Content        string            `gorm:"type:text"`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb"`
	Version        int               `gorm:"not null;default:1"`
	CreatedAt      time.Time         `gorm:"autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt    `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
