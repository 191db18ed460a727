package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mentorlink/internal/usecase"
	"mentorlink/pkg/response"
)

type JobHandler struct {
	jobUseCase *usecase.JobUseCase
}

func NewJobHandler(jobUseCase *usecase.JobUseCase) *JobHandler {
	return &JobHandler{
		jobUseCase: jobUseCase,
	}
}

func (h *JobHandler) CreateJob(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req usecase.JobInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	job, err := h.jobUseCase.CreateJob(c.Request().Context(), actor, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, job)
}

func (h *JobHandler) ListJobs(c echo.Context) error {
	jobs, err := h.jobUseCase.ListJobs(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, jobs)
}

func (h *JobHandler) ListMyJobs(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	jobs, err := h.jobUseCase.ListMyJobs(c.Request().Context(), actor)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, jobs)
}

func (h *JobHandler) GetJob(c echo.Context) error {
	job, err := h.jobUseCase.GetJob(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, job)
}

func (h *JobHandler) UpdateJob(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req usecase.JobInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	job, err := h.jobUseCase.UpdateJob(c.Request().Context(), actor, c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, job)
}

func (h *JobHandler) DeleteJob(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.jobUseCase.DeleteJob(c.Request().Context(), actor, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Job opening deleted",
	})
}
