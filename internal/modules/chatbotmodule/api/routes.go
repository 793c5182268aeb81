package api

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all chatbot module routes
func RegisterRoutes(router gin.IRouter, handler *Handler) {
	chatbot := router.Group("/api/chatbot")
	{
		chatbot.POST("/classify", handler.Classify)
		chatbot.POST("/turn", handler.Turn)
		chatbot.POST("/fallback", handler.Fallback)
		chatbot.GET("/health", handler.Health)
	}

	personas := chatbot.Group("/personas")
	{
		personas.GET("", handler.ListPersonas)
		personas.GET("/:id", handler.GetPersona)
		personas.PUT("/:id", handler.UpsertPersona)
		personas.POST("/reload", handler.ReloadPersonas)
		personas.POST("/reseed", handler.ReseedPersonas)
	}
}
