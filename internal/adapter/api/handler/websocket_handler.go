package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"mentorlink/internal/adapter/api/middleware"
	"mentorlink/internal/chatsync"
	"mentorlink/internal/domain/entity"
	ws "mentorlink/internal/infrastructure/websocket"
	"mentorlink/internal/usecase"
	"mentorlink/pkg/errors"
	"mentorlink/pkg/logger"
)

// Frame types exchanged over the socket. Inbound frames drive the sync
// engine; outbound frames carry full snapshots, never diffs.
const (
	frameTypePing        = "ping"
	frameTypePong        = "pong"
	frameTypeActivate    = "activate"
	frameTypeDeactivate  = "deactivate"
	frameTypeSendMessage = "send_message"
	frameTypeTyping      = "typing"
	frameTypeSnapshot    = "snapshot"
	frameTypeNotice      = "notice"
	frameTypeError       = "error"
)

type wsFrame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type activateData struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

type sendMessageData struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
	Body string `json:"body"`
}

type typingData struct {
	ConversationID string `json:"conversation_id"`
	UserID         string `json:"user_id,omitempty"`
	Username       string `json:"username,omitempty"`
}

type snapshotData struct {
	Kind          string                 `json:"kind"`
	TargetID      string                 `json:"target_id"`
	Messages      []entity.Message       `json:"messages,omitempty"`
	GroupMessages []*entity.GroupMessage `json:"group_messages,omitempty"`
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler bridges connections to per-account sync sessions.
// Each account has at most one active session; activating a new target
// stops the previous session before the new one starts.
type WebSocketHandler struct {
	wsManager      *ws.Manager
	authMiddleware *middleware.AuthMiddleware
	authUseCase    *usecase.AuthUseCase
	chatUseCase    *usecase.ChatUseCase
	groupUseCase   *usecase.GroupUseCase
	interval       time.Duration

	ctx       context.Context
	mu        sync.Mutex
	switchers map[string]*chatsync.Switcher
}

func NewWebSocketHandler(
	ctx context.Context,
	wsManager *ws.Manager,
	authMiddleware *middleware.AuthMiddleware,
	authUseCase *usecase.AuthUseCase,
	chatUseCase *usecase.ChatUseCase,
	groupUseCase *usecase.GroupUseCase,
	interval time.Duration,
) *WebSocketHandler {
	h := &WebSocketHandler{
		wsManager:      wsManager,
		authMiddleware: authMiddleware,
		authUseCase:    authUseCase,
		chatUseCase:    chatUseCase,
		groupUseCase:   groupUseCase,
		interval:       interval,
		ctx:            ctx,
		switchers:      make(map[string]*chatsync.Switcher),
	}

	wsManager.SetMessageHandler(h.handleFrame)
	wsManager.SetDisconnectHandler(h.handleDisconnect)

	return h
}

// HandleWebSocket upgrades the connection. The token arrives as a query
// parameter because browsers cannot set headers on WebSocket requests.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return errors.Unauthorized("Token is required", nil)
	}

	userID, err := h.authMiddleware.GetUIDFromToken(c.Request().Context(), token)
	if err != nil {
		return errors.Unauthorized("Invalid or expired token", err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.wsManager.Register <- client

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}

func (h *WebSocketHandler) handleFrame(client *ws.Client, raw []byte) {
	var frame wsFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		h.sendError(client, "Invalid frame format")
		return
	}

	switch frame.Type {
	case frameTypePing:
		h.send(client, frameTypePong, nil)

	case frameTypeActivate:
		h.handleActivate(client, frame.Data)

	case frameTypeDeactivate:
		h.switcherFor(client.UserID).Deactivate()

	case frameTypeSendMessage:
		h.handleSendMessage(client, frame.Data)

	case frameTypeTyping:
		h.handleTyping(client, frame.Data)

	default:
		h.sendError(client, "Unknown frame type: "+frame.Type)
	}
}

func (h *WebSocketHandler) handleActivate(client *ws.Client, raw []byte) {
	var data activateData
	if err := json.Unmarshal(raw, &data); err != nil {
		h.sendError(client, "Invalid activate payload")
		return
	}

	actor, err := h.authUseCase.Actor(h.ctx, client.UserID)
	if err != nil {
		h.sendError(client, "Account not found")
		return
	}

	var target chatsync.Target
	switch data.Kind {
	case "direct":
		// Access check up front; the poll loop reads the store
		// directly afterwards.
		if _, err := h.chatUseCase.FetchConversation(h.ctx, actor, data.ID); err != nil {
			h.sendError(client, "Cannot open conversation")
			return
		}
		target = chatsync.DirectTarget{ConversationID: data.ID}
	case "group":
		if _, err := h.groupUseCase.FetchGroupMessages(h.ctx, actor, data.ID); err != nil {
			h.sendError(client, "Cannot open group")
			return
		}
		target = chatsync.GroupTarget{GroupID: data.ID}
	default:
		h.sendError(client, "Kind must be direct or group")
		return
	}

	cfg := h.chatUseCase.SessionConfig(actor, target, h.interval)
	cfg.OnMessages = func(snapshot chatsync.Snapshot) {
		h.send(client, frameTypeSnapshot, snapshotData{
			Kind:          data.Kind,
			TargetID:      data.ID,
			Messages:      snapshot.Direct,
			GroupMessages: snapshot.Group,
		})
	}
	cfg.OnNotice = func(err error) {
		h.send(client, frameTypeNotice, map[string]string{
			"message": "Could not refresh messages. Retrying.",
		})
		logger.Warn("Sync notice for %s on %s: %v", client.UserID, data.ID, err)
	}

	h.switcherFor(client.UserID).Activate(h.ctx, cfg)
}

func (h *WebSocketHandler) handleSendMessage(client *ws.Client, raw []byte) {
	var data sendMessageData
	if err := json.Unmarshal(raw, &data); err != nil {
		h.sendError(client, "Invalid send payload")
		return
	}

	actor, err := h.authUseCase.Actor(h.ctx, client.UserID)
	if err != nil {
		h.sendError(client, "Account not found")
		return
	}

	switch data.Kind {
	case "direct":
		_, err = h.chatUseCase.SendMessage(h.ctx, actor, data.ID, data.Body)
	case "group":
		_, err = h.groupUseCase.SendGroupMessage(h.ctx, actor, data.ID, data.Body)
	default:
		h.sendError(client, "Kind must be direct or group")
		return
	}

	if err != nil {
		h.sendError(client, err.Error())
		return
	}

	// Refresh the sender's view from the stored state instead of
	// echoing the message locally.
	if session := h.switcherFor(client.UserID).Current(); session != nil {
		session.ForceSync()
	}
}

func (h *WebSocketHandler) handleTyping(client *ws.Client, raw []byte) {
	var data typingData
	if err := json.Unmarshal(raw, &data); err != nil {
		return
	}

	actor, err := h.authUseCase.Actor(h.ctx, client.UserID)
	if err != nil {
		return
	}

	recipient, err := h.chatUseCase.Recipient(h.ctx, actor, data.ConversationID)
	if err != nil {
		return
	}

	h.send(&ws.Client{UserID: recipient.ID}, frameTypeTyping, typingData{
		ConversationID: data.ConversationID,
		UserID:         actor.ID,
		Username:       actor.Username,
	})
}

func (h *WebSocketHandler) handleDisconnect(client *ws.Client) {
	h.mu.Lock()
	switcher, ok := h.switchers[client.UserID]
	delete(h.switchers, client.UserID)
	h.mu.Unlock()

	if ok {
		switcher.Deactivate()
	}
}

func (h *WebSocketHandler) switcherFor(userID string) *chatsync.Switcher {
	h.mu.Lock()
	defer h.mu.Unlock()

	switcher, ok := h.switchers[userID]
	if !ok {
		switcher = chatsync.NewSwitcher()
		h.switchers[userID] = switcher
	}
	return switcher
}

func (h *WebSocketHandler) send(client *ws.Client, frameType string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		logger.Error("Failed to marshal %s frame: %v", frameType, err)
		return
	}

	frame, err := json.Marshal(wsFrame{Type: frameType, Data: payload})
	if err != nil {
		return
	}

	h.wsManager.SendToUser(client.UserID, frame)
}

func (h *WebSocketHandler) sendError(client *ws.Client, message string) {
	h.send(client, frameTypeError, map[string]string{"message": message})
}
