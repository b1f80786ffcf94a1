package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/alumnifund/AlumniFund/controllers"
	"github.com/alumnifund/AlumniFund/middleware"
)

// initUserRoutes initializes profile and donation-history routes
func initUserRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me", controllers.GetProfile)
		users.PUT("/me", controllers.UpdateProfile)
		users.GET("/me/donations", controllers.GetMyDonations)
	}
}
