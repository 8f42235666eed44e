// internal/repository/comment.go
package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bazarcheck/bazarcheck-backend/internal/models"
)

type CommentRepository interface {
	Create(comment *models.Comment) error
	ListByProduct(productID uuid.UUID) ([]models.Comment, error)
}

type gormCommentRepository struct {
	db *gorm.DB
}

func NewGormCommentRepository(db *gorm.DB) CommentRepository {
	return &gormCommentRepository{db: db}
}

func (r *gormCommentRepository) Create(comment *models.Comment) error {
	return translate(r.db.Create(comment).Error)
}

func (r *gormCommentRepository) ListByProduct(productID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("product_id = ?", productID).
		Order("date DESC").
		Find(&comments).Error
	if err != nil {
		return nil, translate(err)
	}
	return comments, nil
}
