package model

import (
	"time"

	"gorm.io/gorm"
)

// ServiceInvoice is a proforma financial document derived 1:1 from a service
// call. Warranty-covered lines are excluded from the subtotal at creation.
type ServiceInvoice struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OrganizationID uint           `json:"organization_id" gorm:"not null;uniqueIndex:idx_service_invoices_org_number"`
	ServiceCallID  uint           `json:"service_call_id" gorm:"uniqueIndex;not null"`
	CustomerID     uint           `json:"customer_id" gorm:"index;not null"`
	Number         string         `json:"number" gorm:"type:varchar(20);not null;uniqueIndex:idx_service_invoices_org_number"`
	Status         string         `json:"status" gorm:"type:varchar(10);not null;default:'DRAFT'"`
	Currency       string         `json:"currency" gorm:"type:varchar(3);not null;default:'TRY'"`
	Subtotal       int64          `json:"subtotal" gorm:"not null;default:0"`
	TaxRate        int64          `json:"tax_rate" gorm:"not null;default:2000"`
	TaxAmount      int64          `json:"tax_amount" gorm:"not null;default:0"`
	Total          int64          `json:"total" gorm:"not null;default:0"`
	IssuedAt       time.Time      `json:"issued_at"`
	DueAt          *time.Time     `json:"due_at"`
	PaidAt         *time.Time     `json:"paid_at"`
	Notes          string         `json:"notes" gorm:"type:text"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Customer    Customer     `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	ServiceCall *ServiceCall `json:"service_call,omitempty" gorm:"foreignKey:ServiceCallID;references:ID"`
}
