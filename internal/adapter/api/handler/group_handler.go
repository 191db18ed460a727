package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mentorlink/internal/usecase"
	"mentorlink/pkg/response"
)

type GroupHandler struct {
	groupUseCase *usecase.GroupUseCase
}

func NewGroupHandler(groupUseCase *usecase.GroupUseCase) *GroupHandler {
	return &GroupHandler{
		groupUseCase: groupUseCase,
	}
}

func (h *GroupHandler) CreateGroup(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req struct {
		Name        string `json:"name" validate:"required,min=2,max=100"`
		Description string `json:"description" validate:"max=2000"`
		IconURL     string `json:"icon_url" validate:"omitempty,url"`
	}

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	group, err := h.groupUseCase.CreateGroup(c.Request().Context(), actor, usecase.CreateGroupInput{
		Name:        req.Name,
		Description: req.Description,
		IconURL:     req.IconURL,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, group)
}

// ListGroups returns the directory split into created, enrolled and
// available sections, optionally filtered by ?q=.
func (h *GroupHandler) ListGroups(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	directory, err := h.groupUseCase.ListGroups(c.Request().Context(), actor, c.QueryParam("q"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, directory)
}

func (h *GroupHandler) GetGroup(c echo.Context) error {
	group, err := h.groupUseCase.GetGroup(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, group)
}

func (h *GroupHandler) JoinGroup(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	group, err := h.groupUseCase.JoinGroup(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, group)
}

func (h *GroupHandler) GetMessages(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	messages, err := h.groupUseCase.FetchGroupMessages(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

func (h *GroupHandler) SendMessage(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req struct {
		Body string `json:"body" validate:"required,max=2000"`
	}

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	message, err := h.groupUseCase.SendGroupMessage(c.Request().Context(), actor, c.Param("id"), req.Body)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}
