package routes

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/alumnifund/AlumniFund/services"
	"github.com/alumnifund/AlumniFund/utils"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(faq *services.FAQStore) *gin.Engine {
	router := gin.New()

	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API group
	api := router.Group("/api")
	{
		initAuthRoutes(api)
		initUserRoutes(api)
		initSchoolRoutes(api)
		initCampaignRoutes(api)
		initPaymentRoutes(api)
		initDonationRoutes(api)
		initChatRoutes(api, faq)
	}

	return router
}
