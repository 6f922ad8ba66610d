package model

import (
	"time"

	"gorm.io/gorm"
)

// Service call types (white goods vertical)
const (
	CallFaultRepair         = "FAULT_REPAIR"
	CallWarrantyRepair      = "WARRANTY_REPAIR"
	CallPeriodicMaintenance = "PERIODIC_MAINTENANCE"
	CallInstallation        = "INSTALLATION"
	CallUninstallation      = "UNINSTALLATION"
	CallTechnicalInspection = "TECHNICAL_INSPECTION"
	CallCustomerMisuse      = "CUSTOMER_MISUSE"
	CallSparePartSupply     = "SPARE_PART_SUPPLY"
)

// Service call statuses
const (
	CallReceived        = "RECEIVED"
	CallScheduled       = "SCHEDULED"
	CallTechnicianWay   = "TECHNICIAN_WAY"
	CallInProgress      = "IN_PROGRESS"
	CallWaitingParts    = "WAITING_PARTS"
	CallWaitingApproval = "WAITING_APPROVAL"
	CallCompleted       = "COMPLETED"
	CallCannotRepair    = "CANNOT_REPAIR"
	CallCanceled        = "CANCELED"
)

// Service call priorities
const (
	PriorityUrgent = "URGENT"
	PriorityHigh   = "HIGH"
	PriorityNormal = "NORMAL"
	PriorityLow    = "LOW"
)

// Warranty statuses
const (
	InWarranty        = "IN_WARRANTY"
	OutOfWarranty     = "OUT_OF_WARRANTY"
	ExtendedWarrantyS = "EXTENDED_WARRANTY"
	WarrantyUnknown   = "UNKNOWN"
)

// Visit types
const (
	VisitHome     = "HOME_VISIT"
	VisitWorkshop = "WORKSHOP"
	VisitRemote   = "REMOTE"
)

// ServiceCallTypes lists the accepted call type values
var ServiceCallTypes = []string{
	CallFaultRepair, CallWarrantyRepair, CallPeriodicMaintenance, CallInstallation,
	CallUninstallation, CallTechnicalInspection, CallCustomerMisuse, CallSparePartSupply,
}

// ServiceCallStatuses lists the accepted call status values
var ServiceCallStatuses = []string{
	CallReceived, CallScheduled, CallTechnicianWay, CallInProgress,
	CallWaitingParts, CallWaitingApproval, CallCompleted, CallCannotRepair, CallCanceled,
}

// ServiceCall is a reactive unit of appliance repair work. The 30-day legal
// repair deadline is tracked from ReceivedAt. Cost fields are integer
// minor-currency units.
type ServiceCall struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	OrganizationID    uint           `json:"organization_id" gorm:"not null;uniqueIndex:idx_service_calls_org_code"`
	CustomerID        uint           `json:"customer_id" gorm:"index;not null"`
	DeviceID          uint           `json:"device_id" gorm:"index;not null"`
	TechnicianID      *uint          `json:"technician_id" gorm:"index"`
	Code              string         `json:"code" gorm:"type:varchar(20);not null;uniqueIndex:idx_service_calls_org_code"`
	CallType          string         `json:"call_type" gorm:"type:varchar(30);not null;default:'FAULT_REPAIR'"`
	Status            string         `json:"status" gorm:"type:varchar(30);not null;default:'RECEIVED'"`
	Priority          string         `json:"priority" gorm:"type:varchar(10);not null;default:'NORMAL'"`
	WarrantyStatus    string         `json:"warranty_status" gorm:"type:varchar(20);not null;default:'UNKNOWN'"`
	IsUnderWarranty   bool           `json:"is_under_warranty" gorm:"default:false"`
	IsWarrantyCovered bool           `json:"is_warranty_covered" gorm:"default:false"`
	FaultDescription  string         `json:"fault_description" gorm:"type:text"`
	FaultDiagnosis    string         `json:"fault_diagnosis" gorm:"type:text"`
	FaultCode         string         `json:"fault_code" gorm:"type:varchar(30)"`
	RepairDescription string         `json:"repair_description" gorm:"type:text"`
	VisitType         string         `json:"visit_type" gorm:"type:varchar(20);not null;default:'HOME_VISIT'"`
	Address           string         `json:"address" gorm:"type:text"`
	ReceivedAt        time.Time      `json:"received_at"`
	ScheduledAt       *time.Time     `json:"scheduled_at"`
	CompletedAt       *time.Time     `json:"completed_at"`
	WorkingDaysUsed   *int           `json:"working_days_used"`
	LaborCost         int64          `json:"labor_cost" gorm:"default:0"`
	TransportCost     int64          `json:"transport_cost" gorm:"default:0"`
	DiagnosticFee     int64          `json:"diagnostic_fee" gorm:"default:0"`
	CustomerInformed  bool           `json:"customer_informed" gorm:"default:false"`
	RightToReplace    bool           `json:"right_to_replace" gorm:"default:false"`
	RightToRefund     bool           `json:"right_to_refund" gorm:"default:false"`
	Notes             string         `json:"notes" gorm:"type:text"`
	InternalNotes     string         `json:"internal_notes" gorm:"type:text"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Customer   Customer           `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Device     Device             `json:"device,omitempty" gorm:"foreignKey:DeviceID"`
	Technician *Technician        `json:"technician,omitempty" gorm:"foreignKey:TechnicianID"`
	PartsUsed  []ServicePartUsage `json:"parts_used,omitempty" gorm:"foreignKey:ServiceCallID"`
	Invoice    *ServiceInvoice    `json:"invoice,omitempty" gorm:"foreignKey:ServiceCallID"`
}

// ServicePartUsage is a stock line item consumed on a service call.
// Warranty-covered lines are excluded from invoicing.
type ServicePartUsage struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	ServiceCallID     uint      `json:"service_call_id" gorm:"index;not null"`
	PartID            uint      `json:"part_id" gorm:"index;not null"`
	Quantity          int       `json:"quantity" gorm:"not null;default:1"`
	UnitPrice         int64     `json:"unit_price" gorm:"default:0"`
	IsWarrantyCovered bool      `json:"is_warranty_covered" gorm:"default:false"`
	CreatedAt         time.Time `json:"created_at"`

	Part Part `json:"part,omitempty" gorm:"foreignKey:PartID"`
}

// ValidServiceCallType reports whether the given call type is accepted
func ValidServiceCallType(t string) bool {
	for _, v := range ServiceCallTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ValidServiceCallStatus reports whether the given status is accepted
func ValidServiceCallStatus(s string) bool {
	for _, v := range ServiceCallStatuses {
		if v == s {
			return true
		}
	}
	return false
}
