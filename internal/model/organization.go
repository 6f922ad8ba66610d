package model

import (
	"time"

	"gorm.io/gorm"
)

// Plan tiers
const (
	PlanTrial = "TRIAL"
	PlanPro   = "PRO"
)

// Verticals supported by the platform
const (
	VerticalElevator   = "ELEVATOR"
	VerticalWhiteGoods = "WHITE_GOODS"
)

// Organization is the tenant boundary. Every business row carries an
// OrganizationID and every query is filtered by it.
type Organization struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"type:varchar(100);not null"`
	Slug        string         `json:"slug" gorm:"type:varchar(40);uniqueIndex;not null"`
	Vertical    string         `json:"vertical" gorm:"type:varchar(20);not null;default:'ELEVATOR'"`
	PlanTier    string         `json:"plan_tier" gorm:"type:varchar(20);not null;default:'TRIAL'"`
	TrialEndsAt time.Time      `json:"trial_ends_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Users []User `json:"users,omitempty" gorm:"foreignKey:OrganizationID"`
}
