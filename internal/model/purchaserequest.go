package model

import (
	"time"

	"gorm.io/gorm"
)

// PurchaseRequest is an upgrade-interest lead captured from a trial tenant.
type PurchaseRequest struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	OrganizationID  uint           `json:"organization_id" gorm:"index;not null"`
	FullName        string         `json:"full_name" gorm:"type:varchar(100);not null"`
	Email           string         `json:"email" gorm:"type:varchar(255);not null"`
	Phone           string         `json:"phone" gorm:"type:varchar(30);not null"`
	MonthlyJobs     int            `json:"monthly_jobs"`
	TechnicianCount int            `json:"technician_count"`
	City            string         `json:"city" gorm:"type:varchar(60)"`
	Note            string         `json:"note" gorm:"type:text"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}
