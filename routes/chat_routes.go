package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/alumnifund/AlumniFund/controllers"
	"github.com/alumnifund/AlumniFund/services"
)

// initChatRoutes initializes the FAQ chatbot route
func initChatRoutes(router *gin.RouterGroup, faq *services.FAQStore) {
	router.POST("/chat", controllers.ChatHandler(faq))
}
