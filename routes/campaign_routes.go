package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/alumnifund/AlumniFund/controllers"
	"github.com/alumnifund/AlumniFund/middleware"
)

// initCampaignRoutes initializes campaign browsing and management routes
func initCampaignRoutes(router *gin.RouterGroup) {
	campaigns := router.Group("/campaigns")
	{
		// Public routes
		campaigns.GET("", controllers.ListCampaigns)
		campaigns.GET("/:id", controllers.GetCampaign)
		campaigns.GET("/:id/donors", controllers.GetCampaignDonors)

		// Institution-only management routes
		managed := campaigns.Group("")
		managed.Use(middleware.AuthMiddleware(), middleware.InstitutionMiddleware())
		{
			managed.POST("", controllers.CreateCampaign)
			managed.PUT("/:id", controllers.UpdateCampaign)
			managed.DELETE("/:id", controllers.DeleteCampaign)
		}
	}
}
