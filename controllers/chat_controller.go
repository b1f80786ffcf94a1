package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/alumnifund/AlumniFund/services"
	"github.com/alumnifund/AlumniFund/utils"
)

// ChatRequest represents the chat message request body
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatHandler answers FAQ questions from the injected knowledge base.
// FAQ keyword matches take precedence over the greeting and thanks
// heuristics.
func ChatHandler(store *services.FAQStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.LogError("Chat request failed - Invalid request format: %v", err)
			utils.BadRequest(c, "Invalid request format", "Please provide a message.")
			return
		}

		reply := store.Reply(req.Message)
		utils.LogInfo("Chat message answered with topic: %s", reply.Topic)
		utils.Success(c, "Message processed successfully", gin.H{"reply": reply})
	}
}
