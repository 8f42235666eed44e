// internal/models/comment.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is append-only.
type Comment struct {
	BaseModel
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	UserEmail string    `json:"user_email" gorm:"size:255;not null"`
	UserName  string    `json:"user_name" gorm:"size:100"`
	Rating    int       `json:"rating" gorm:"not null"`
	Text      string    `json:"text" gorm:"type:text"`
	Date      time.Time `json:"date"`
}
