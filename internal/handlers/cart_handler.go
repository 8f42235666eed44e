// internal/handlers/cart_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bazarcheck/bazarcheck-backend/internal/services"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

type CartHandler struct {
	cart *services.CartService
}

func NewCartHandler(cart *services.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

// Add handles POST /cart
func (h *CartHandler) Add(c *gin.Context) {
	var input services.AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	email, _ := utils.GetEmailFromContext(c)
	item, err := h.cart.Add(email, input)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.CreatedResponse(c, item)
}

// List handles GET /get-cart
func (h *CartHandler) List(c *gin.Context) {
	email, _ := utils.GetEmailFromContext(c)
	items, err := h.cart.List(email)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.SuccessResponse(c, items)
}

type adjustQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// AdjustQuantity handles PATCH /cart/update/:itemId
func (h *CartHandler) AdjustQuantity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid cart item id", nil)
		return
	}

	var req adjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	email, _ := utils.GetEmailFromContext(c)
	item, err := h.cart.AdjustQuantity(id, email, req.Delta)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.SuccessResponse(c, item)
}

// Remove handles DELETE /delete-productCart/:itemId
func (h *CartHandler) Remove(c *gin.Context) {
	id, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid cart item id", nil)
		return
	}

	email, _ := utils.GetEmailFromContext(c)
	if err := h.cart.Remove(id, email); err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Cart item removed"})
}

// Clear handles DELETE /clear-cart
func (h *CartHandler) Clear(c *gin.Context) {
	email, _ := utils.GetEmailFromContext(c)
	if err := h.cart.Clear(email); err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Cart cleared"})
}
