package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nebulanet/topup-backend/internal/models"
	"github.com/nebulanet/topup-backend/internal/phone"
	"github.com/nebulanet/topup-backend/internal/refdata"
)

// NetworkHandler serves the static catalog and phone classification
type NetworkHandler struct{}

// NewNetworkHandler creates a new NetworkHandler
func NewNetworkHandler() *NetworkHandler {
	return &NetworkHandler{}
}

// GetNetworks handles GET /networks
func (h *NetworkHandler) GetNetworks(c *gin.Context) {
	c.JSON(http.StatusOK, refdata.Networks())
}

// GetTiers handles GET /networks/tiers
func (h *NetworkHandler) GetTiers(c *gin.Context) {
	c.JSON(http.StatusOK, refdata.Tiers())
}

// GetBundles handles GET /networks/bundles
func (h *NetworkHandler) GetBundles(c *gin.Context) {
	c.JSON(http.StatusOK, refdata.Bundles())
}

// GetNetworkStatus handles GET /networks/status. The float balances are a
// development stand-in for a provider float-account query.
func (h *NetworkHandler) GetNetworkStatus(c *gin.Context) {
	c.JSON(http.StatusOK, []models.NetworkBalance{
		{Network: "MTN", Balance: 15420.50, Status: "active"},
		{Network: "Airtel", Balance: 8750.25, Status: "active"},
		{Network: "Glo", Balance: 12300.75, Status: "active"},
		{Network: "9mobile", Balance: 5680.00, Status: "active"},
	})
}

// ClassifyPhone handles POST /phone/classify
func (h *NetworkHandler) ClassifyPhone(c *gin.Context) {
	var req struct {
		PhoneNumber string `json:"phoneNumber" binding:"required"`
		Network     string `json:"network"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := phone.Classify(req.PhoneNumber)

	// a carrier that differs from the selected network is a warning for
	// the caller, never a hard failure
	response := gin.H{"valid": result.Valid, "carrier": result.Carrier}
	if req.Network != "" && result.Valid {
		network, err := refdata.NetworkByID(req.Network)
		if err == nil && !strings.EqualFold(network.Name, result.Carrier) {
			response["warning"] = "Number belongs to " + result.Carrier + ", not " + network.Name
		}
	}
	c.JSON(http.StatusOK, response)
}
