package router

import (
	"github.com/labstack/echo/v4"

	"mentorlink/internal/adapter/api/handler"
	"mentorlink/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	userHandler := handler.GetUserHandler()

	// Public guides directory
	e.GET("/v1/guides", userHandler.ListGuides)

	users := e.Group("/v1/users")
	users.Use(authMiddleware.Authenticate)
	users.Use(roleMiddleware.LoadActor)

	users.GET("/me", userHandler.GetProfile)
	users.PATCH("/me", userHandler.UpdateProfile)
	users.POST("/me/avatar", userHandler.UploadAvatar)
	users.POST("/me/resume", userHandler.UploadResume)

	admin := e.Group("/v1/admin/users")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(roleMiddleware.LoadActor)
	admin.Use(roleMiddleware.AdminOnly)

	admin.GET("/:role", userHandler.ListUsers)
	admin.PATCH("/:role/:id/status", userHandler.SetUserStatus)
}
