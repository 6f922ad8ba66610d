package model

import (
	"time"

	"gorm.io/gorm"
)

// MaintenancePlan is a recurrence rule producing a rolling due date for
// periodic service on an asset. Marking a plan done advances NextDueAt by
// PeriodMonths.
type MaintenancePlan struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OrganizationID uint           `json:"organization_id" gorm:"index;not null"`
	AssetID        uint           `json:"asset_id" gorm:"index;not null"`
	ContractID     *uint          `json:"contract_id" gorm:"index"`
	PeriodMonths   int            `json:"period_months" gorm:"not null;default:1"`
	LastDoneAt     *time.Time     `json:"last_done_at"`
	NextDueAt      time.Time      `json:"next_due_at" gorm:"index;not null"`
	Notes          string         `json:"notes" gorm:"type:text"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	Asset Asset `json:"asset,omitempty" gorm:"foreignKey:AssetID"`
}
