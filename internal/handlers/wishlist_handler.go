// internal/handlers/wishlist_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bazarcheck/bazarcheck-backend/internal/services"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

type WishlistHandler struct {
	wishlist *services.WishlistService
}

func NewWishlistHandler(wishlist *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist}
}

type addWishlistRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

// Add handles POST /wishlist
func (h *WishlistHandler) Add(c *gin.Context) {
	var req addWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	email, _ := utils.GetEmailFromContext(c)
	item, err := h.wishlist.Add(email, req.ProductID)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.CreatedResponse(c, item)
}

// List handles GET /get-wishlist
func (h *WishlistHandler) List(c *gin.Context) {
	email, _ := utils.GetEmailFromContext(c)
	entries, err := h.wishlist.List(email)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.SuccessResponse(c, entries)
}

// Remove handles DELETE /delete-wishlist/:id
func (h *WishlistHandler) Remove(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid wishlist item id", nil)
		return
	}

	email, _ := utils.GetEmailFromContext(c)
	if err := h.wishlist.Remove(id, email); err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Wishlist item removed"})
}
