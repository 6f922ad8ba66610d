package model

import (
	"time"

	"gorm.io/gorm"
)

// Customer is a client of the organization (building management, company).
type Customer struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OrganizationID uint           `json:"organization_id" gorm:"index;not null"`
	Name           string         `json:"name" gorm:"type:varchar(150);not null"`
	ContactName    string         `json:"contact_name" gorm:"type:varchar(100)"`
	Phone          string         `json:"phone" gorm:"type:varchar(30)"`
	Email          string         `json:"email" gorm:"type:varchar(255)"`
	Address        string         `json:"address" gorm:"type:text"`
	TaxID          string         `json:"tax_id" gorm:"type:varchar(30)"`
	Notes          string         `json:"notes" gorm:"type:text"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}
