// internal/handlers/ad_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bazarcheck/bazarcheck-backend/internal/models"
	"github.com/bazarcheck/bazarcheck-backend/internal/services"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

type AdHandler struct {
	ads *services.AdService
}

func NewAdHandler(ads *services.AdService) *AdHandler {
	return &AdHandler{ads: ads}
}

// Create handles POST /ads (vendor)
func (h *AdHandler) Create(c *gin.Context) {
	var input services.CreateAdInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	email, _ := utils.GetEmailFromContext(c)
	ad, err := h.ads.Create(email, input)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.CreatedResponse(c, ad)
}

// Mine handles GET /my-ads (vendor)
func (h *AdHandler) Mine(c *gin.Context) {
	params := utils.GetPaginationParams(c, utils.DefaultListLimit)
	email, _ := utils.GetEmailFromContext(c)

	ads, total, err := h.ads.ListByCreator(email, params)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.PaginatedResponse(c, utils.CreatePaginationResult(ads, total, params))
}

// All handles GET /all-ads (admin review queue)
func (h *AdHandler) All(c *gin.Context) {
	params := utils.GetPaginationParams(c, utils.DefaultListLimit)
	status := models.ReviewStatus(c.Query("status"))

	ads, total, err := h.ads.List(status, params)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.PaginatedResponse(c, utils.CreatePaginationResult(ads, total, params))
}

// Approved handles GET /approved-ads (public)
func (h *AdHandler) Approved(c *gin.Context) {
	params := utils.GetPaginationParams(c, utils.DefaultListLimit)

	ads, total, err := h.ads.ListApproved(params)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.PaginatedResponse(c, utils.CreatePaginationResult(ads, total, params))
}

// Delete handles DELETE /ads/:id (creator or admin)
func (h *AdHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid advertisement id", nil)
		return
	}

	email, _ := utils.GetEmailFromContext(c)
	role, _ := utils.GetRoleFromContext(c)
	if err := h.ads.Delete(id, email, role); err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Advertisement deleted"})
}

// Approve handles PATCH /approve-ad/:id (admin)
func (h *AdHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid advertisement id", nil)
		return
	}

	ad, err := h.ads.Approve(id)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.SuccessResponse(c, ad)
}

// Reject handles PATCH /reject-ad/:id (admin)
func (h *AdHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid advertisement id", nil)
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

	ad, err := h.ads.Reject(id, input)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.SuccessResponse(c, ad)
}
