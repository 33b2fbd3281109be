package models

import "gorm.io/gorm"

// Probe is a connectivity check record written through the /tests endpoint.
type Probe struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name       string `json:"name" gorm:"type:varchar(100)" validate:"required"`
	gorm.Model // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
