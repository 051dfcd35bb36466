package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"matchup-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for the demo
	},
}

// WebSocketHandler handles WebSocket connections
type WebSocketHandler struct {
	hub            *services.WSHub
	sessionService *services.SessionService
	convService    *services.ConversationService
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(
	hub *services.WSHub,
	sessionService *services.SessionService,
	convService *services.ConversationService,
) *WebSocketHandler {
	return &WebSocketHandler{
		hub:            hub,
		sessionService: sessionService,
		convService:    convService,
	}
}

// HandleWebSocket handles WebSocket connections
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	// Get token from query parameter
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, "token required", http.StatusUnauthorized)
		return
	}

	// Validate token
	userID, err := h.sessionService.ValidateJWT(token)
	if err != nil {
		respondError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	// Upgrade connection
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}
	defer conn.Close()

	h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID)

	log.Info().Str("user_id", userID).Msg("WebSocket connection established")

	ctx := r.Context()

	// Handle messages
	for {
		_, messageBytes, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("user_id", userID).Msg("WebSocket error")
			}
			break
		}

		var msg services.WSMessage
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to parse WebSocket message")
			h.sendError(conn, "Invalid message format")
			continue
		}

		if err := h.handleMessage(ctx, userID, msg); err != nil {
			log.Error().Err(err).Str("user_id", userID).Str("type", msg.Type).Msg("Failed to handle message")
			h.sendError(conn, err.Error())
		}
	}
}

// handleMessage processes incoming WebSocket messages
func (h *WebSocketHandler) handleMessage(ctx context.Context, userID string, msg services.WSMessage) error {
	switch msg.Type {
	case "send_message":
		return h.handleSendMessage(ctx, userID, msg)
	default:
		return h.sendErrorToUser(userID, "Unknown message type")
	}
}

// handleSendMessage appends a chat message sent over the socket and
// echoes it back, same as the REST send path.
func (h *WebSocketHandler) handleSendMessage(ctx context.Context, userID string, msg services.WSMessage) error {
	if msg.ConversationID == "" {
		return h.sendErrorToUser(userID, "conversation_id is required")
	}

	sent, err := h.convService.SendMessage(ctx, msg.ConversationID, msg.Text)
	if err != nil {
		return h.sendErrorToUser(userID, err.Error())
	}

	h.hub.NotifyMessage(userID, msg.ConversationID, sent)
	return nil
}

// sendError sends an error message to the WebSocket connection
func (h *WebSocketHandler) sendError(conn *websocket.Conn, message string) {
	msg := services.WSMessage{
		Type:    "error",
		Message: message,
	}
	data, _ := json.Marshal(msg)
	conn.WriteMessage(websocket.TextMessage, data)
}

// sendErrorToUser sends an error message to a user
func (h *WebSocketHandler) sendErrorToUser(userID, message string) error {
	msg := services.WSMessage{
		Type:    "error",
		Message: message,
	}
	return h.hub.SendToUser(userID, msg)
}
