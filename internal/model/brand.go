package model

import (
	"time"

	"gorm.io/gorm"
)

// Brand is an appliance manufacturer the organization is an authorized
// service partner for.
type Brand struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OrganizationID uint           `json:"organization_id" gorm:"index;not null"`
	Name           string         `json:"name" gorm:"type:varchar(100);not null"`
	AuthCode       string         `json:"auth_code" gorm:"type:varchar(60)"`
	AuthStartDate  *time.Time     `json:"auth_start_date"`
	AuthEndDate    *time.Time     `json:"auth_end_date"`
	ContactName    string         `json:"contact_name" gorm:"type:varchar(100)"`
	ContactPhone   string         `json:"contact_phone" gorm:"type:varchar(30)"`
	ContactEmail   string         `json:"contact_email" gorm:"type:varchar(255)"`
	Notes          string         `json:"notes" gorm:"type:text"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}
