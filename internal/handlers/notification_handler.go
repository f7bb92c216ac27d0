package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nebulanet/topup-backend/internal/services"
)

// NotificationHandler serves the active, not-yet-expired notifications
type NotificationHandler struct {
	notificationService services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// GetActive handles GET /notifications
func (h *NotificationHandler) GetActive(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notifications": h.notificationService.Active()})
}
