package router

import (
	"github.com/labstack/echo/v4"

	"mentorlink/internal/adapter/api/handler"
	"mentorlink/internal/adapter/api/middleware"
)

// SetupChatRouter sets up direct chat routes. The GET endpoints are the
// polling surface; clients that want push use the WebSocket instead.
func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	chatHandler := handler.GetChatHandler()

	chats := e.Group("/v1/chats")
	chats.Use(authMiddleware.Authenticate)
	chats.Use(roleMiddleware.LoadActor)

	chats.GET("", chatHandler.ListChats)
	chats.POST("", chatHandler.OpenChat)
	chats.GET("/:id", chatHandler.GetChat)
	chats.GET("/:id/recipient", chatHandler.GetRecipient)
	chats.POST("/:id/messages", chatHandler.SendMessage)
}
