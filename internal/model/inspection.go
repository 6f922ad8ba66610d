package model

import (
	"time"

	"gorm.io/gorm"
)

// Inspection results as reported by the inspection body
const (
	ResultNoDefect    = "UYGUNSUZLUK_YOK"
	ResultMinorDefect = "HAFIF_KUSURLU"
	ResultDefective   = "KUSURLU"
	ResultUnsafe      = "GUVENSIZ"
)

// InspectionResults lists the accepted inspection result values
var InspectionResults = []string{
	ResultNoDefect, ResultMinorDefect, ResultDefective, ResultUnsafe,
}

// resultLabels maps an inspection result to the label color affixed to the cabin.
var resultLabels = map[string]string{
	ResultNoDefect:    LabelGreen,
	ResultMinorDefect: LabelBlue,
	ResultDefective:   LabelYellow,
	ResultUnsafe:      LabelRed,
}

// Inspection is a periodic regulatory-compliance record for an asset.
type Inspection struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OrganizationID uint           `json:"organization_id" gorm:"index;not null"`
	AssetID        uint           `json:"asset_id" gorm:"index;not null"`
	InspectionDate time.Time      `json:"inspection_date" gorm:"not null"`
	NextDueDate    time.Time      `json:"next_due_date" gorm:"not null"`
	InspectionBody string         `json:"inspection_body" gorm:"type:varchar(100)"`
	InspectorName  string         `json:"inspector_name" gorm:"type:varchar(100)"`
	Result         string         `json:"result" gorm:"type:varchar(30);not null;default:'UYGUNSUZLUK_YOK'"`
	Label          string         `json:"label" gorm:"type:varchar(20)"`
	Deficiencies   string         `json:"deficiencies" gorm:"type:text"`
	Notes          string         `json:"notes" gorm:"type:text"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	Asset Asset `json:"asset,omitempty" gorm:"foreignKey:AssetID"`
}

// LabelForResult returns the cabin label color for an inspection result,
// or the empty string for an unknown result.
func LabelForResult(result string) string {
	return resultLabels[result]
}

// ValidInspectionResult reports whether the given result is accepted
func ValidInspectionResult(r string) bool {
	_, ok := resultLabels[r]
	return ok
}
