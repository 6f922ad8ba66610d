package model

import (
	"time"

	"gorm.io/gorm"
)

// Technician is service staff assignable to work orders and service calls.
type Technician struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OrganizationID uint           `json:"organization_id" gorm:"index;not null"`
	Name           string         `json:"name" gorm:"type:varchar(100);not null"`
	Initials       string         `json:"initials" gorm:"type:varchar(5)"`
	Phone          string         `json:"phone" gorm:"type:varchar(30)"`
	Zone           string         `json:"zone" gorm:"type:varchar(60)"`
	Certification  string         `json:"certification" gorm:"type:varchar(100)"`
	Status         string         `json:"status" gorm:"type:varchar(30)"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}
