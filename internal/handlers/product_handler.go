// internal/handlers/product_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bazarcheck/bazarcheck-backend/internal/models"
	"github.com/bazarcheck/bazarcheck-backend/internal/repository"
	"github.com/bazarcheck/bazarcheck-backend/internal/services"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

type ProductHandler struct {
	products *services.ProductService
}

func NewProductHandler(products *services.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// Create handles POST /add-products (vendor)
func (h *ProductHandler) Create(c *gin.Context) {
	var input services.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	email, _ := utils.GetEmailFromContext(c)
	product, err := h.products.Create(email, input)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.CreatedResponse(c, product)
}

// Update handles PATCH /modify-product/:id (vendor or admin)
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product id", nil)
		return
	}

	var input services.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	email, _ := utils.GetEmailFromContext(c)
	role, _ := utils.GetRoleFromContext(c)
	product, err := h.products.Update(id, email, role, input)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.SuccessResponse(c, product)
}

// Delete handles DELETE /delete-products/:id (vendor or admin)
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product id", nil)
		return
	}

	email, _ := utils.GetEmailFromContext(c)
	role, _ := utils.GetRoleFromContext(c)
	if err := h.products.Delete(id, email, role); err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Product deleted"})
}

// Mine handles GET /my-products (vendor)
func (h *ProductHandler) Mine(c *gin.Context) {
	params := utils.GetPaginationParams(c, utils.DefaultProductLimit)
	email, _ := utils.GetEmailFromContext(c)

	products, total, err := h.products.ListByVendor(email, params)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.PaginatedResponse(c, utils.CreatePaginationResult(products, total, params))
}

// All handles GET /all-products (admin review queue)
func (h *ProductHandler) All(c *gin.Context) {
	params := utils.GetPaginationParams(c, utils.DefaultProductLimit)
	filter := repository.ProductFilter{
		Search:     params.Search,
		MarketName: c.Query("market"),
		Status:     models.ReviewStatus(c.Query("status")),
	}

	products, total, err := h.products.ListAll(filter, params)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.PaginatedResponse(c, utils.CreatePaginationResult(products, total, params))
}

// Approved handles GET /approved-products (public catalog)
func (h *ProductHandler) Approved(c *gin.Context) {
	params := utils.GetPaginationParams(c, utils.DefaultProductLimit)

	products, total, err := h.products.ListApproved(params.Search, c.Query("market"), params)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.PaginatedResponse(c, utils.CreatePaginationResult(products, total, params))
}

// Get handles GET /single-product/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product id", nil)
		return
	}

	email, _ := utils.GetEmailFromContext(c)
	role, _ := utils.GetRoleFromContext(c)
	product, err := h.products.Get(id, email, role)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.SuccessResponse(c, product)
}

// Approve handles PATCH /approve-product/:id (admin)
func (h *ProductHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product id", nil)
		return
	}

	product, err := h.products.Approve(id)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.SuccessResponse(c, product)
}

// Reject handles PATCH /reject-product/:id (admin)
func (h *ProductHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product id", nil)
		return
	}

	var input services.RejectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	product, err := h.products.Reject(id, input)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.SuccessResponse(c, product)
}
