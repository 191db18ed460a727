package router

import (
	"github.com/labstack/echo/v4"

	"mentorlink/internal/adapter/api/handler"
	"mentorlink/internal/adapter/api/middleware"
)

func SetupJobRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	jobHandler := handler.GetJobHandler()

	jobs := e.Group("/v1/jobs")
	jobs.Use(authMiddleware.Authenticate)
	jobs.Use(roleMiddleware.LoadActor)

	jobs.GET("", jobHandler.ListJobs)
	jobs.GET("/mine", jobHandler.ListMyJobs)
	jobs.POST("", jobHandler.CreateJob)
	jobs.GET("/:id", jobHandler.GetJob)
	jobs.PUT("/:id", jobHandler.UpdateJob)
	jobs.DELETE("/:id", jobHandler.DeleteJob)
}
