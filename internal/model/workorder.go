package model

import (
	"time"

	"gorm.io/gorm"
)

// Work order types
const (
	WorkOrderFault               = "FAULT"
	WorkOrderPeriodicMaintenance = "PERIODIC_MAINTENANCE"
	WorkOrderAnnualInspection    = "ANNUAL_INSPECTION"
	WorkOrderRevision            = "REVISION"
	WorkOrderInstallation        = "INSTALLATION"
)

// Work order statuses. Plain enumeration, any status may be assigned via PATCH.
const (
	WorkOrderPending    = "PENDING"
	WorkOrderInProgress = "IN_PROGRESS"
	WorkOrderUrgent     = "URGENT"
	WorkOrderDone       = "DONE"
	WorkOrderCanceled   = "CANCELED"
)

// WorkOrderTypes lists the accepted work order type values
var WorkOrderTypes = []string{
	WorkOrderFault, WorkOrderPeriodicMaintenance, WorkOrderAnnualInspection,
	WorkOrderRevision, WorkOrderInstallation,
}

// WorkOrderStatuses lists the accepted work order status values
var WorkOrderStatuses = []string{
	WorkOrderPending, WorkOrderInProgress, WorkOrderUrgent,
	WorkOrderDone, WorkOrderCanceled,
}

// WorkOrder is a scheduled or reactive unit of field work (elevator vertical).
// Cost fields are integer minor-currency units.
type WorkOrder struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OrganizationID uint           `json:"organization_id" gorm:"not null;uniqueIndex:idx_work_orders_org_code"`
	CustomerID     uint           `json:"customer_id" gorm:"index;not null"`
	AssetID        *uint          `json:"asset_id" gorm:"index"`
	TechnicianID   *uint          `json:"technician_id" gorm:"index"`
	Code           string         `json:"code" gorm:"type:varchar(20);not null;uniqueIndex:idx_work_orders_org_code"`
	Type           string         `json:"type" gorm:"type:varchar(30);not null;default:'FAULT'"`
	Status         string         `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	Priority       string         `json:"priority" gorm:"type:varchar(20);default:'Normal'"`
	Note           string         `json:"note" gorm:"type:text"`
	LaborCost      int64          `json:"labor_cost" gorm:"default:0"`
	ServiceFee     int64          `json:"service_fee" gorm:"default:0"`
	ScheduledAt    *time.Time     `json:"scheduled_at"`
	CompletedAt    *time.Time     `json:"completed_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Customer   Customer    `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Asset      *Asset      `json:"asset,omitempty" gorm:"foreignKey:AssetID"`
	Technician *Technician `json:"technician,omitempty" gorm:"foreignKey:TechnicianID"`
	PartsUsed  []PartUsage `json:"parts_used,omitempty" gorm:"foreignKey:WorkOrderID"`
	Invoice    *Invoice    `json:"invoice,omitempty" gorm:"foreignKey:WorkOrderID"`
}

// PartUsage is a stock line item consumed on a work order.
type PartUsage struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	WorkOrderID uint      `json:"work_order_id" gorm:"index;not null"`
	PartID      uint      `json:"part_id" gorm:"index;not null"`
	Quantity    int       `json:"quantity" gorm:"not null;default:1"`
	CreatedAt   time.Time `json:"created_at"`

	Part Part `json:"part,omitempty" gorm:"foreignKey:PartID"`
}

// ValidWorkOrderType reports whether the given type is accepted
func ValidWorkOrderType(t string) bool {
	for _, v := range WorkOrderTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ValidWorkOrderStatus reports whether the given status is accepted
func ValidWorkOrderStatus(s string) bool {
	for _, v := range WorkOrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}
