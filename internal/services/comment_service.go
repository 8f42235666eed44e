// internal/services/comment_service.go
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bazarcheck/bazarcheck-backend/internal/apperr"
	"github.com/bazarcheck/bazarcheck-backend/internal/models"
	"github.com/bazarcheck/bazarcheck-backend/internal/repository"
)

type CommentService struct {
	comments repository.CommentRepository
	products repository.ProductRepository
}

func NewCommentService(comments repository.CommentRepository, products repository.ProductRepository) *CommentService {
	return &CommentService{comments: comments, products: products}
}

type CreateCommentInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Rating    int       `json:"rating" validate:"required,rating"`
	Text      string    `json:"text" validate:"max=2000"`
}

// Create appends a review to a product. Comments are never edited or removed
// through the API.
func (s *CommentService) Create(userEmail, userName string, input CreateCommentInput) (*models.Comment, error) {
	if _, err := s.products.GetByID(input.ProductID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Internal("failed to load product", err)
	}

	comment := &models.Comment{
		ProductID: input.ProductID,
		UserEmail: userEmail,
		UserName:  userName,
		Rating:    input.Rating,
		Text:      input.Text,
		Date:      time.Now(),
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, apperr.Internal("failed to create comment", err)
	}
	return comment, nil
}

func (s *CommentService) ListByProduct(productID uuid.UUID) ([]models.Comment, error) {
	comments, err := s.comments.ListByProduct(productID)
	if err != nil {
		return nil, apperr.Internal("failed to list comments", err)
	}
	return comments, nil
}
