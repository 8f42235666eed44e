// internal/handlers/comment_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bazarcheck/bazarcheck-backend/internal/services"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type createCommentRequest struct {
	services.CreateCommentInput
	UserName string `json:"user_name"`
}

// Create handles POST /comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req.CreateCommentInput); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	email, _ := utils.GetEmailFromContext(c)
	comment, err := h.comments.Create(email, req.UserName, req.CreateCommentInput)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.CreatedResponse(c, comment)
}

// ListByProduct handles GET /comments/:productId
func (h *CommentHandler) ListByProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product id", nil)
		return
	}

	comments, err := h.comments.ListByProduct(productID)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.SuccessResponse(c, comments)
}
