package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/alumnifund/AlumniFund/controllers"
	"github.com/alumnifund/AlumniFund/middleware"
)

// initAuthRoutes initializes registration, login and OAuth routes
func initAuthRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", controllers.RegisterUser)
		auth.POST("/login", controllers.LoginUser)
		auth.POST("/logout", middleware.AuthMiddleware(), controllers.LogoutUser)

		auth.GET("/google/login", controllers.GoogleLogin)
		auth.GET("/google/callback", controllers.GoogleCallback)
	}
}
