package router

import (
	"github.com/labstack/echo/v4"

	"mentorlink/internal/adapter/api/handler"
	"mentorlink/internal/adapter/api/middleware"
)

func SetupGroupRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	groupHandler := handler.GetGroupHandler()

	groups := e.Group("/v1/groups")
	groups.Use(authMiddleware.Authenticate)
	groups.Use(roleMiddleware.LoadActor)

	groups.GET("", groupHandler.ListGroups)
	groups.POST("", groupHandler.CreateGroup)
	groups.GET("/:id", groupHandler.GetGroup)
	groups.POST("/:id/join", groupHandler.JoinGroup)
	groups.GET("/:id/messages", groupHandler.GetMessages)
	groups.POST("/:id/messages", groupHandler.SendMessage)
}
