// internal/handlers/contact_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bazarcheck/bazarcheck-backend/internal/services"
	"github.com/bazarcheck/bazarcheck-backend/internal/utils"
)

type ContactHandler struct {
	notifications *services.NotificationService
}

func NewContactHandler(notifications *services.NotificationService) *ContactHandler {
	return &ContactHandler{notifications: notifications}
}

// Send handles POST /contact
func (h *ContactHandler) Send(c *gin.Context) {
	var input services.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	if err := h.notifications.SendContactMessage(input); err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Message sent"})
}
