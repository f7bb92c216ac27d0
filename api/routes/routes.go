package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/nebulanet/topup-backend/internal/config"
	"github.com/nebulanet/topup-backend/internal/handlers"
	"github.com/nebulanet/topup-backend/internal/middleware"
)

// HandlerDependencies carries the handlers the router wires up
type HandlerDependencies struct {
	PurchaseHandler     *handlers.PurchaseHandler
	NetworkHandler      *handlers.NetworkHandler
	TransactionHandler  *handlers.TransactionHandler
	NotificationHandler *handlers.NotificationHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, logger *slog.Logger, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(logger))

	api := router.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		networks := api.Group("/networks")
		{
			networks.GET("", deps.NetworkHandler.GetNetworks)
			networks.GET("/tiers", deps.NetworkHandler.GetTiers)
			networks.GET("/bundles", deps.NetworkHandler.GetBundles)
			networks.GET("/status", deps.NetworkHandler.GetNetworkStatus)
		}

		api.POST("/phone/classify", deps.NetworkHandler.ClassifyPhone)

		purchases := api.Group("/purchases")
		{
			purchases.POST("/airtime", deps.PurchaseHandler.SubmitAirtime)
			purchases.POST("/bundle", deps.PurchaseHandler.SubmitBundle)
		}

		transactions := api.Group("/transactions")
		{
			transactions.GET("", deps.TransactionHandler.GetHistory)
			transactions.GET("/savings", deps.TransactionHandler.GetSavings)
			transactions.DELETE("/savings", deps.TransactionHandler.ResetSavings)
		}

		session := api.Group("/session")
		{
			session.GET("/transactions", deps.TransactionHandler.GetSessionTransactions)
			session.GET("/savings", deps.TransactionHandler.GetSessionSavings)
		}

		api.GET("/notifications", deps.NotificationHandler.GetActive)
	}

	return router
}
