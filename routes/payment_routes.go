package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/alumnifund/AlumniFund/controllers"
	"github.com/alumnifund/AlumniFund/middleware"
)

// initPaymentRoutes initializes payment order and provider webhook routes
func initPaymentRoutes(router *gin.RouterGroup) {
	payments := router.Group("/payments")
	{
		payments.POST("/orders", middleware.AuthMiddleware(), controllers.CreatePaymentOrder)

		// Provider-facing, no auth: the provider does not hold user tokens
		payments.POST("/webhook", controllers.PaymentWebhook)
		payments.GET("/orders/:order_id/status", controllers.GetPaymentStatus)
		payments.GET("/orders/:order_id/qr", controllers.GetOrderQR)
	}
}
