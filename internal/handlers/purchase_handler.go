package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nebulanet/topup-backend/internal/services"
)

// PurchaseHandler handles purchase submission requests
type PurchaseHandler struct {
	purchaseService services.PurchaseService
	userService     services.UserService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService services.PurchaseService, userService services.UserService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
		userService:     userService,
	}
}

// SubmitAirtime handles POST /purchases/airtime
func (h *PurchaseHandler) SubmitAirtime(c *gin.Context) {
	var req services.AirtimePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user: " + err.Error()})
		return
	}

	tx, err := h.purchaseService.SubmitAirtime(c, user.ID, req)
	respondPurchase(c, tx, err)
}

// SubmitBundle handles POST /purchases/bundle
func (h *PurchaseHandler) SubmitBundle(c *gin.Context) {
	var req services.BundlePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user: " + err.Error()})
		return
	}

	tx, err := h.purchaseService.SubmitBundle(c, user.ID, req)
	respondPurchase(c, tx, err)
}

// respondPurchase maps the submission flow's error kinds onto HTTP
// statuses. An accrual failure still carries the persisted transaction: the
// purchase happened, only the counter is behind.
func respondPurchase(c *gin.Context, tx any, err error) {
	if err == nil {
		c.JSON(http.StatusCreated, gin.H{"transaction": tx})
		return
	}

	var validationErr *services.ValidationError
	var unknownErr *services.UnknownReferenceError
	var settlementErr *services.SettlementError
	var accrualErr *services.AccrualError

	switch {
	case errors.As(err, &validationErr), errors.As(err, &unknownErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &accrualErr):
		c.JSON(http.StatusCreated, gin.H{
			"transaction": tx,
			"warning":     "Purchase recorded but the savings counter could not be updated; it will be reconciled",
		})
	case errors.As(err, &settlementErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
