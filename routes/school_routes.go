package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/alumnifund/AlumniFund/controllers"
	"github.com/alumnifund/AlumniFund/middleware"
)

// initSchoolRoutes initializes school browsing and management routes
func initSchoolRoutes(router *gin.RouterGroup) {
	schools := router.Group("/schools")
	{
		// Public routes
		schools.GET("", controllers.ListSchools)
		schools.GET("/:id", controllers.GetSchool)

		// Institution-only management routes
		managed := schools.Group("")
		managed.Use(middleware.AuthMiddleware(), middleware.InstitutionMiddleware())
		{
			managed.POST("", controllers.CreateSchool)
			managed.PUT("/:id", controllers.UpdateSchool)
			managed.DELETE("/:id", controllers.DeleteSchool)
			managed.GET("/:id/donations/export", controllers.ExportSchoolDonations)
		}
	}
}
