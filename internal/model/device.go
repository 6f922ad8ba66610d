package model

import (
	"time"

	"gorm.io/gorm"
)

// Device categories (white goods vertical)
const (
	DeviceWashingMachine = "WASHING_MACHINE"
	DeviceDryer          = "DRYER"
	DeviceWasherDryer    = "WASHER_DRYER"
	DeviceDishwasher     = "DISHWASHER"
	DeviceRefrigerator   = "REFRIGERATOR"
	DeviceFreezer        = "FREEZER"
	DeviceFridgeFreezer  = "FRIDGE_FREEZER"
	DeviceOven           = "OVEN"
	DeviceCooktop        = "COOKTOP"
	DeviceRangeHood      = "RANGE_HOOD"
	DeviceMicrowave      = "MICROWAVE"
	DeviceAirConditioner = "AIR_CONDITIONER"
	DeviceWaterHeater    = "WATER_HEATER"
	DeviceVacuumCleaner  = "VACUUM_CLEANER"
	DeviceSmallAppliance = "SMALL_APPLIANCE"
	DeviceOther          = "OTHER"
)

// DeviceCategories lists the accepted device category values
var DeviceCategories = []string{
	DeviceWashingMachine, DeviceDryer, DeviceWasherDryer, DeviceDishwasher,
	DeviceRefrigerator, DeviceFreezer, DeviceFridgeFreezer, DeviceOven,
	DeviceCooktop, DeviceRangeHood, DeviceMicrowave, DeviceAirConditioner,
	DeviceWaterHeater, DeviceVacuumCleaner, DeviceSmallAppliance, DeviceOther,
}

// Device is a household appliance registered for a customer.
type Device struct {
	ID                  uint           `json:"id" gorm:"primaryKey"`
	OrganizationID      uint           `json:"organization_id" gorm:"index;not null"`
	CustomerID          uint           `json:"customer_id" gorm:"index;not null"`
	BrandID             *uint          `json:"brand_id" gorm:"index"`
	Category            string         `json:"category" gorm:"type:varchar(30);not null"`
	ModelName           string         `json:"model_name" gorm:"type:varchar(100)"`
	ModelCode           string         `json:"model_code" gorm:"type:varchar(60)"`
	SerialNumber        string         `json:"serial_number" gorm:"type:varchar(60)"`
	ProductionYear      int            `json:"production_year"`
	Color               string         `json:"color" gorm:"type:varchar(30)"`
	PurchaseDate        *time.Time     `json:"purchase_date"`
	PurchasePlace       string         `json:"purchase_place" gorm:"type:varchar(100)"`
	InvoiceNumber       string         `json:"invoice_number" gorm:"type:varchar(60)"`
	InstallDate         *time.Time     `json:"install_date"`
	LocationNote        string         `json:"location_note" gorm:"type:text"`
	WarrantyYears       int            `json:"warranty_years" gorm:"default:2"`
	WarrantyEndDate     *time.Time     `json:"warranty_end_date"`
	ExtendedWarranty    bool           `json:"extended_warranty" gorm:"default:false"`
	ExtendedWarrantyEnd *time.Time     `json:"extended_warranty_end"`
	PowerWatts          int            `json:"power_watts"`
	Voltage             string         `json:"voltage" gorm:"type:varchar(20)"`
	Capacity            string         `json:"capacity" gorm:"type:varchar(30)"`
	EnergyClass         string         `json:"energy_class" gorm:"type:varchar(10)"`
	IsUnderRepair       bool           `json:"is_under_repair" gorm:"default:false"`
	LastServiceAt       *time.Time     `json:"last_service_at"`
	TotalServiceCount   int            `json:"total_service_count" gorm:"default:0"`
	Notes               string         `json:"notes" gorm:"type:text"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `json:"-" gorm:"index"`

	Customer Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Brand    *Brand   `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
}

// ValidDeviceCategory reports whether the given category is accepted
func ValidDeviceCategory(category string) bool {
	for _, c := range DeviceCategories {
		if c == category {
			return true
		}
	}
	return false
}
