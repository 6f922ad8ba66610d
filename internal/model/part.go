package model

import (
	"time"

	"gorm.io/gorm"
)

// Part is a stock item. Stock must never go negative; deductions are done
// with conditional updates (stock = stock - n WHERE stock >= n).
type Part struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OrganizationID uint           `json:"organization_id" gorm:"index;not null"`
	Name           string         `json:"name" gorm:"type:varchar(150);not null"`
	Category       string         `json:"category" gorm:"type:varchar(60)"`
	Unit           string         `json:"unit" gorm:"type:varchar(20);default:'Adet'"`
	Supplier       string         `json:"supplier" gorm:"type:varchar(100)"`
	Price          int64          `json:"price" gorm:"default:0"`
	Stock          int            `json:"stock" gorm:"not null;default:0"`
	MinStock       int            `json:"min_stock" gorm:"not null;default:0"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

// LowStock reports whether the part is at or below its minimum stock threshold
func (p *Part) LowStock() bool {
	return p.Stock <= p.MinStock
}
