package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/alumnifund/AlumniFund/controllers"
	"github.com/alumnifund/AlumniFund/middleware"
)

// initDonationRoutes initializes donation feed, receipt and webhook routes
func initDonationRoutes(router *gin.RouterGroup) {
	donations := router.Group("/donations")
	{
		donations.POST("/webhook", controllers.DonationWebhook)
		donations.GET("/recent", controllers.RecentDonations)
		donations.GET("/campaign/:id", controllers.CampaignDonations)
		donations.GET("/live", controllers.LiveDonations)

		donations.GET("/:id/receipt", middleware.AuthMiddleware(), controllers.DownloadDonationReceipt)
	}
}
