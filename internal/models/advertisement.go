// internal/models/advertisement.go
package models

type Advertisement struct {
	BaseModel
	AdCreatedBy       string       `json:"ad_created_by" gorm:"size:255;not null;index"`
	Title             string       `json:"title" gorm:"size:255;not null"`
	ShortDescription  string       `json:"short_description" gorm:"type:text"`
	Image             string       `json:"image" gorm:"size:512"`
	Status            ReviewStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	RejectionReason   string       `json:"rejection_reason,omitempty" gorm:"size:255"`
	RejectionFeedback string       `json:"rejection_feedback,omitempty" gorm:"type:text"`
}
