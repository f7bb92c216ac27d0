package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nebulanet/topup-backend/internal/services"
	"github.com/nebulanet/topup-backend/internal/store"
)

// TransactionHandler serves transaction history and the savings counter
type TransactionHandler struct {
	transactionService services.TransactionService
	userService        services.UserService
	sessionStore       *store.SessionStore
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(
	transactionService services.TransactionService,
	userService services.UserService,
	sessionStore *store.SessionStore,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		userService:        userService,
		sessionStore:       sessionStore,
	}
}

// GetHistory handles GET /transactions
func (h *TransactionHandler) GetHistory(c *gin.Context) {
	user, err := h.userService.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user: " + err.Error()})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	txs, err := h.transactionService.History(c, user.ID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get transactions: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txs, "total": len(txs)})
}

// GetSavings handles GET /transactions/savings
func (h *TransactionHandler) GetSavings(c *gin.Context) {
	user, err := h.userService.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user: " + err.Error()})
		return
	}

	savings, err := h.transactionService.TotalSavings(c, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get savings: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"totalSavings": savings})
}

// ResetSavings handles DELETE /transactions/savings
func (h *TransactionHandler) ResetSavings(c *gin.Context) {
	user, err := h.userService.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user: " + err.Error()})
		return
	}

	if err := h.transactionService.ResetSavings(c, user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset savings: " + err.Error()})
		return
	}
	h.sessionStore.Reset()

	c.JSON(http.StatusOK, gin.H{"message": "Savings reset"})
}

// GetSessionTransactions handles GET /session/transactions
func (h *TransactionHandler) GetSessionTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"transactions": h.sessionStore.List()})
}

// GetSessionSavings handles GET /session/savings
func (h *TransactionHandler) GetSessionSavings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"totalSavings": h.sessionStore.CurrentSavings()})
}
