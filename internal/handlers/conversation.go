package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"matchup-backend/internal/middleware"
	"matchup-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ConversationHandler handles conversation HTTP requests
type ConversationHandler struct {
	convService *services.ConversationService
	wsHub       *services.WSHub
}

// NewConversationHandler creates a new conversation handler
func NewConversationHandler(convService *services.ConversationService, wsHub *services.WSHub) *ConversationHandler {
	return &ConversationHandler{
		convService: convService,
		wsHub:       wsHub,
	}
}

// SendMessageRequest represents the request body for sending a message
type SendMessageRequest struct {
	Text string `json:"text"`
}

// List handles GET /api/v1/conversations
func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.convService.List(r.Context()))
}

// Get handles GET /api/v1/conversations/{conversation_id}
func (h *ConversationHandler) Get(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversation_id")

	conv, err := h.convService.Get(r.Context(), conversationID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, services.ErrConversationNotFound) {
			statusCode = http.StatusNotFound
		}
		respondError(w, err.Error(), statusCode)
		return
	}

	respondJSON(w, http.StatusOK, conv)
}

// SendMessage handles POST /api/v1/conversations/{conversation_id}/messages
func (h *ConversationHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	conversationID := chi.URLParam(r, "conversation_id")

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	msg, err := h.convService.SendMessage(ctx, conversationID, req.Text)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("conversation_id", conversationID).
			Msg("Failed to send message")

		statusCode := http.StatusInternalServerError
		if errors.Is(err, services.ErrEmptyMessage) {
			statusCode = http.StatusBadRequest
		} else if errors.Is(err, services.ErrConversationNotFound) {
			statusCode = http.StatusNotFound
		}

		respondError(w, err.Error(), statusCode)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("conversation_id", conversationID).
		Str("message_id", msg.ID).
		Msg("Message sent")

	if h.wsHub.IsOnline(userID) {
		h.wsHub.NotifyMessage(userID, conversationID, msg)
	}

	respondJSON(w, http.StatusCreated, msg)
}
