package router

import (
	"github.com/labstack/echo/v4"

	"mentorlink/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	SetupAuthRouter(e, authMiddleware, roleMiddleware)
	SetupUserRouter(e, authMiddleware, roleMiddleware)
	SetupChatRouter(e, authMiddleware, roleMiddleware)
	SetupGroupRouter(e, authMiddleware, roleMiddleware)
	SetupJobRouter(e, authMiddleware, roleMiddleware)
	SetupCommunityRouter(e, authMiddleware, roleMiddleware)
	SetupHealthRouter(e)
}
