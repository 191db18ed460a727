package router

import (
	"github.com/labstack/echo/v4"

	"mentorlink/internal/adapter/api/handler"
	"mentorlink/internal/adapter/api/middleware"
)

func SetupCommunityRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	communityHandler := handler.GetCommunityHandler()

	communities := e.Group("/v1/communities")
	communities.Use(authMiddleware.Authenticate)
	communities.Use(roleMiddleware.LoadActor)

	communities.GET("", communityHandler.ListCommunities)
	communities.POST("", communityHandler.CreateCommunity)
	communities.GET("/:id", communityHandler.GetCommunity)
	communities.GET("/:id/posts", communityHandler.ListPosts)
	communities.POST("/:id/posts", communityHandler.CreatePost)
}
