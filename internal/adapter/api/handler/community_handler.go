package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mentorlink/internal/usecase"
	"mentorlink/pkg/response"
)

type CommunityHandler struct {
	communityUseCase *usecase.CommunityUseCase
}

func NewCommunityHandler(communityUseCase *usecase.CommunityUseCase) *CommunityHandler {
	return &CommunityHandler{
		communityUseCase: communityUseCase,
	}
}

func (h *CommunityHandler) CreateCommunity(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req struct {
		Name        string `json:"name" validate:"required,min=2,max=100"`
		Description string `json:"description" validate:"max=2000"`
	}

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	community, err := h.communityUseCase.CreateCommunity(c.Request().Context(), actor, req.Name, req.Description)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, community)
}

func (h *CommunityHandler) ListCommunities(c echo.Context) error {
	communities, err := h.communityUseCase.ListCommunities(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, communities)
}

func (h *CommunityHandler) GetCommunity(c echo.Context) error {
	community, err := h.communityUseCase.GetCommunity(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, community)
}

func (h *CommunityHandler) CreatePost(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req struct {
		Content string `json:"content" validate:"required,max=5000"`
	}

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	post, err := h.communityUseCase.CreatePost(c.Request().Context(), actor, c.Param("id"), req.Content)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, post)
}

func (h *CommunityHandler) ListPosts(c echo.Context) error {
	posts, err := h.communityUseCase.ListPosts(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, posts)
}
