package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mentorlink/internal/usecase"
	"mentorlink/pkg/errors"
	"mentorlink/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, actor)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req struct {
		Name   string `json:"name" validate:"omitempty,min=2,max=100"`
		Bio    string `json:"bio" validate:"max=2000"`
		Skills string `json:"skills" validate:"max=500"`
	}

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	updated, err := h.userUseCase.UpdateProfile(c.Request().Context(), actor, usecase.UpdateProfileInput{
		Name:   req.Name,
		Bio:    req.Bio,
		Skills: req.Skills,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, updated)
}

func (h *UserHandler) UploadAvatar(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("File is required", err))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to open uploaded file", err))
	}
	defer src.Close()

	updated, err := h.userUseCase.UploadAvatar(c.Request().Context(), actor, src, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, updated)
}

func (h *UserHandler) UploadResume(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("File is required", err))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to open uploaded file", err))
	}
	defer src.Close()

	updated, err := h.userUseCase.UploadResume(c.Request().Context(), actor, src, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, updated)
}

// guideProfile is the directory shape served without authentication.
// Account fields like the email and resume stay private.
type guideProfile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Bio       string `json:"bio,omitempty"`
	Skills    string `json:"skills,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

func (h *UserHandler) ListGuides(c echo.Context) error {
	guides, err := h.userUseCase.ListGuides(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return response.Error(c, err)
	}

	out := make([]guideProfile, 0, len(guides))
	for _, g := range guides {
		out = append(out, guideProfile{
			ID:        g.ID,
			Username:  g.Username,
			Name:      g.Name,
			Bio:       g.Bio,
			Skills:    g.Skills,
			AvatarURL: g.AvatarURL,
		})
	}
	return response.Success(c, out)
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	users, err := h.userUseCase.ListUsers(c.Request().Context(), actor, c.Param("role"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, users)
}

func (h *UserHandler) SetUserStatus(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req struct {
		Status string `json:"status" validate:"required,oneof=active suspended"`
	}

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	updated, err := h.userUseCase.SetUserStatus(c.Request().Context(), actor, c.Param("role"), c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, updated)
}
