// internal/models/product.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// PriceHistory is an ordered sequence of observed prices, stored as jsonb.
type PriceHistory []PricePoint

func (h PriceHistory) Value() (driver.Value, error) {
	if h == nil {
		return nil, nil
	}
	return json.Marshal(h)
}

func (h *PriceHistory) Scan(value interface{}) error {
	if value == nil {
		*h = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, h)
}

type Product struct {
	BaseModel
	VendorEmail       string         `json:"vendor_email" gorm:"size:255;not null;index"`
	VendorName        string         `json:"vendor_name" gorm:"size:100"`
	MarketName        string         `json:"market_name" gorm:"size:150;index"`
	Date              time.Time      `json:"date"`
	ItemName          string         `json:"item_name" gorm:"size:255;not null"`
	PricePerUnit      float64        `json:"price_per_unit" gorm:"type:decimal(10,2);not null"`
	PriceHistory      PriceHistory   `json:"price_history" gorm:"type:jsonb"`
	Images            pq.StringArray `json:"images" gorm:"type:text[]"`
	Status            ReviewStatus   `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	RejectionReason   string         `json:"rejection_reason,omitempty" gorm:"size:255"`
	RejectionFeedback string         `json:"rejection_feedback,omitempty" gorm:"type:text"`
}
