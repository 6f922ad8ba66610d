package model

import (
	"time"

	"gorm.io/gorm"
)

// Contract statuses
const (
	ContractDraft      = "DRAFT"
	ContractActive     = "ACTIVE"
	ContractExpired    = "EXPIRED"
	ContractTerminated = "TERMINATED"
)

// ContractStatuses lists the accepted contract status values
var ContractStatuses = []string{
	ContractDraft, ContractActive, ContractExpired, ContractTerminated,
}

// Contract is a maintenance agreement tying a customer to a set of assets.
// MonthlyFee is integer minor-currency units.
type Contract struct {
	ID                  uint           `json:"id" gorm:"primaryKey"`
	OrganizationID      uint           `json:"organization_id" gorm:"index;not null"`
	CustomerID          uint           `json:"customer_id" gorm:"index;not null"`
	ContractNumber      string         `json:"contract_number" gorm:"type:varchar(40)"`
	StartDate           time.Time      `json:"start_date" gorm:"not null"`
	EndDate             *time.Time     `json:"end_date"`
	AutoRenew           bool           `json:"auto_renew" gorm:"default:true"`
	MonthlyFee          int64          `json:"monthly_fee" gorm:"default:0"`
	Status              string         `json:"status" gorm:"type:varchar(20);not null;default:'DRAFT'"`
	TechnicianName      string         `json:"technician_name" gorm:"type:varchar(100)"`
	TechnicianCert      string         `json:"technician_cert" gorm:"type:varchar(100)"`
	HasEncryptionDevice bool           `json:"has_encryption_device" gorm:"default:false"`
	EncryptionNote      string         `json:"encryption_note" gorm:"type:text"`
	Notes               string         `json:"notes" gorm:"type:text"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Customer Customer        `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Assets   []ContractAsset `json:"assets,omitempty" gorm:"foreignKey:ContractID"`
}

// ContractAsset links a contract to one covered asset.
type ContractAsset struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ContractID uint      `json:"contract_id" gorm:"index;not null"`
	AssetID    uint      `json:"asset_id" gorm:"index;not null"`
	CreatedAt  time.Time `json:"created_at"`

	Asset Asset `json:"asset,omitempty" gorm:"foreignKey:AssetID"`
}

// ValidContractStatus reports whether the given status is accepted
func ValidContractStatus(s string) bool {
	for _, v := range ContractStatuses {
		if v == s {
			return true
		}
	}
	return false
}
