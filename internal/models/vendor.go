// internal/models/vendor.go
package models

import "time"

// VendorApplication is decided exactly once: the status only ever moves from
// pending to approved or rejected.
type VendorApplication struct {
	BaseModel
	ApplicantEmail string            `json:"applicant_email" gorm:"size:255;not null;index"`
	ApplicantName  string            `json:"applicant_name" gorm:"size:100;not null"`
	ShopName       string            `json:"shop_name" gorm:"size:150;not null"`
	MarketName     string            `json:"market_name" gorm:"size:150"`
	Phone          string            `json:"phone" gorm:"size:30"`
	About          string            `json:"about" gorm:"type:text"`
	VendorStatus   ApplicationStatus `json:"vendor_status" gorm:"type:varchar(20);default:'pending';index"`
	DecidedAt      *time.Time        `json:"decided_at"`
}
