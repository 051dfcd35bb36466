package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"matchup-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WSMessage represents a WebSocket message in either direction. Inbound
// messages carry a type plus the fields that type needs; outbound events
// put their payload under Data.
type WSMessage struct {
	Type           string      `json:"type"`
	ConversationID string      `json:"conversation_id,omitempty"`
	Text           string      `json:"text,omitempty"`
	Message        string      `json:"message,omitempty"`
	Data           interface{} `json:"data,omitempty"`
}

// WSHub manages WebSocket connections keyed by identity ID and pushes
// app events (matches, sent messages, theme changes) to them.
type WSHub struct {
	mu          sync.RWMutex
	connections map[string]*websocket.Conn
}

// NewWSHub creates a new WebSocket hub
func NewWSHub() *WSHub {
	return &WSHub{
		connections: make(map[string]*websocket.Conn),
	}
}

// Register registers a new WebSocket connection for a user. An existing
// connection for the same user is closed and replaced.
func (h *WSHub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existingConn, exists := h.connections[userID]; exists {
		existingConn.Close()
	}

	h.connections[userID] = conn

	log.Info().Str("user_id", userID).Msg("WebSocket connection registered")
}

// Unregister removes a WebSocket connection for a user
func (h *WSHub) Unregister(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, exists := h.connections[userID]; exists {
		conn.Close()
		delete(h.connections, userID)
		log.Info().Str("user_id", userID).Msg("WebSocket connection unregistered")
	}
}

// SendToUser sends a message to a specific user
func (h *WSHub) SendToUser(userID string, message WSMessage) error {
	h.mu.RLock()
	conn, exists := h.connections[userID]
	h.mu.RUnlock()

	if !exists {
		return fmt.Errorf("user %s is not connected", userID)
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.Unregister(userID)
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// IsOnline checks if a user is online
func (h *WSHub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, exists := h.connections[userID]
	return exists
}

// NotifyMatch pushes a match event with the matched candidate and the
// conversation opened for it.
func (h *WSHub) NotifyMatch(userID string, profile models.Profile, conversationID string) {
	message := WSMessage{
		Type: "match",
		Data: map[string]interface{}{
			"profile":         profile,
			"conversation_id": conversationID,
		},
	}

	if err := h.SendToUser(userID, message); err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Msg("Failed to notify match")
	}
}

// NotifyMessage echoes a sent message back over the socket so every open
// client view of the conversation stays current.
func (h *WSHub) NotifyMessage(userID, conversationID string, msg models.Message) {
	message := WSMessage{
		Type: "message",
		Data: map[string]interface{}{
			"conversation_id": conversationID,
			"message":         msg,
		},
	}

	if err := h.SendToUser(userID, message); err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("conversation_id", conversationID).
			Msg("Failed to notify message")
	}
}

// NotifyTheme pushes a theme change so other open tabs follow the
// toggle.
func (h *WSHub) NotifyTheme(userID, theme string) {
	message := WSMessage{
		Type: "theme",
		Data: map[string]interface{}{
			"theme": theme,
		},
	}

	if err := h.SendToUser(userID, message); err != nil {
		log.Debug().
			Err(err).
			Str("user_id", userID).
			Msg("Failed to notify theme change")
	}
}
