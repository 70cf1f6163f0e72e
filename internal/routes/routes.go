package routes

import (
	"net/http"

	"collegeskills_backend/internal/handlers"
	"collegeskills_backend/internal/middleware"
	"collegeskills_backend/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the HTTP API, the payment webhook and the
// websocket endpoint.
func RegisterRoutes(
	router *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.Handler,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.ProfileHandler.RegisterRoutes(api)
		appHandlers.GigHandler.RegisterRoutes(api)
		appHandlers.ProjectHandler.RegisterRoutes(api)
		appHandlers.ProposalHandler.RegisterRoutes(api)
		appHandlers.PaymentHandler.RegisterRoutes(api)
		appHandlers.OrderHandler.RegisterRoutes(api)
		appHandlers.ChatHandler.RegisterRoutes(api)
		appHandlers.NotificationHandler.RegisterRoutes(api)
		appHandlers.RecommendationHandler.RegisterRoutes(api)
		appHandlers.VerificationHandler.RegisterRoutes(api)
		appHandlers.ReviewHandler.RegisterRoutes(api)
		appHandlers.UploadHandler.RegisterRoutes(api)
	}

	// The gateway calls back at the root, signed but unauthenticated.
	appHandlers.PaymentHandler.RegisterWebhookRoutes(router)

	wsGroup := router.Group("/ws")
	wsGroup.Use(middleware.AuthMiddleware())
	{
		wsGroup.GET("", wsHandler.ServeWS)
	}
}
