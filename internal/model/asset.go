package model

import (
	"time"

	"gorm.io/gorm"
)

// Inspection labels assigned by the accredited inspection body
const (
	LabelGreen  = "YESIL"
	LabelBlue   = "MAVI"
	LabelYellow = "SARI"
	LabelRed    = "KIRMIZI"
)

// Asset is an elevator installed at a customer site. Inspection and
// maintenance metadata is denormalized here for list screens.
type Asset struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	OrganizationID    uint           `json:"organization_id" gorm:"index;not null"`
	CustomerID        uint           `json:"customer_id" gorm:"index;not null"`
	Name              string         `json:"name" gorm:"type:varchar(150);not null"`
	Category          string         `json:"category" gorm:"type:varchar(50)"`
	SerialNumber      string         `json:"serial_number" gorm:"type:varchar(60)"`
	ElevatorIDNo      string         `json:"elevator_id_no" gorm:"type:varchar(60)"`
	LocationNote      string         `json:"location_note" gorm:"type:text"`
	BuildingName      string         `json:"building_name" gorm:"type:varchar(150)"`
	DoorNumber        string         `json:"door_number" gorm:"type:varchar(20)"`
	Stops             int            `json:"stops"`
	CapacityKg        int            `json:"capacity_kg"`
	ControllerBrand   string         `json:"controller_brand" gorm:"type:varchar(60)"`
	InstallYear       int            `json:"install_year"`
	RiskScore         int            `json:"risk_score"`
	LastMaintenanceAt *time.Time     `json:"last_maintenance_at"`
	LastInspectionAt  *time.Time     `json:"last_inspection_at"`
	NextInspectionAt  *time.Time     `json:"next_inspection_at"`
	InspectionLabel   string         `json:"inspection_label" gorm:"type:varchar(20)"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`

	Customer Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}
