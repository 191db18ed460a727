package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mentorlink/internal/usecase"
	"mentorlink/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

// ListChats returns the combined direct and group chat directory,
// optionally filtered by ?q=.
func (h *ChatHandler) ListChats(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	list, err := h.chatUseCase.ListChats(c.Request().Context(), actor, c.QueryParam("q"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, list)
}

// OpenChat resolves or lazily creates the conversation with the named
// counterpart and returns it.
func (h *ChatHandler) OpenChat(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req struct {
		Username string `json:"username" validate:"required,min=3"`
	}

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	conv, err := h.chatUseCase.OpenConversation(c.Request().Context(), actor, req.Username)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conv)
}

// GetChat returns the full message sequence for one conversation. The
// fetch also marks incoming messages as seen, so polling this endpoint
// keeps read receipts current.
func (h *ChatHandler) GetChat(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	conv, err := h.chatUseCase.FetchConversation(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conv)
}

func (h *ChatHandler) GetRecipient(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return response.Error(c, err)
	}

	recipient, err := h.chatUseCase.Recipient(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, recipient)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
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

	conv, err := h.chatUseCase.SendMessage(c.Request().Context(), actor, c.Param("id"), req.Body)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, conv)
}
