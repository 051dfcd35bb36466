package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"matchup-backend/internal/middleware"
	"matchup-backend/internal/models"
	"matchup-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// FeedHandler handles discovery feed HTTP requests
type FeedHandler struct {
	feedService  *services.FeedService
	swipeService *services.SwipeService
	convService  *services.ConversationService
	wsHub        *services.WSHub
	advanceDelay int
}

// NewFeedHandler creates a new feed handler. advanceDelayMS is the card
// transition delay hint returned to the client; the server-side cursor
// advances immediately.
func NewFeedHandler(
	feedService *services.FeedService,
	swipeService *services.SwipeService,
	convService *services.ConversationService,
	wsHub *services.WSHub,
	advanceDelayMS int,
) *FeedHandler {
	return &FeedHandler{
		feedService:  feedService,
		swipeService: swipeService,
		convService:  convService,
		wsHub:        wsHub,
		advanceDelay: advanceDelayMS,
	}
}

// CurrentResponse represents the current feed card
type CurrentResponse struct {
	Profile *models.Profile `json:"profile"`
	Index   int             `json:"index"`
	Total   int             `json:"total"`
}

// SwipeRequest represents the request body for a swipe
type SwipeRequest struct {
	Action string `json:"action"`
}

// SwipeResponse represents the outcome of a swipe
type SwipeResponse struct {
	Matched        bool            `json:"matched"`
	Profile        *models.Profile `json:"profile,omitempty"`
	ConversationID string          `json:"conversation_id,omitempty"`
	AdvanceAfterMS int             `json:"advance_after_ms"`
}

// Current handles GET /api/v1/feed/current
func (h *FeedHandler) Current(w http.ResponseWriter, r *http.Request) {
	index, total := h.feedService.Position()

	resp := CurrentResponse{Index: index, Total: total}
	if profile, ok := h.feedService.Current(); ok {
		resp.Profile = &profile
	}

	respondJSON(w, http.StatusOK, resp)
}

// Swipe handles POST /api/v1/feed/swipe
func (h *FeedHandler) Swipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req SwipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	candidate, ok := h.feedService.Current()
	if !ok {
		respondError(w, "no profiles available", http.StatusNotFound)
		return
	}

	matched, err := h.swipeService.Decide(services.SwipeAction(req.Action))
	if err != nil {
		if errors.Is(err, services.ErrUnknownAction) {
			respondError(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := SwipeResponse{
		Matched:        matched,
		AdvanceAfterMS: h.advanceDelay,
	}

	if matched {
		conv := h.convService.OpenForMatch(ctx, candidate)
		resp.Profile = &candidate
		resp.ConversationID = conv.ID

		log.Info().
			Str("user_id", userID).
			Str("profile_id", candidate.ID).
			Str("action", req.Action).
			Msg("Match")

		if h.wsHub.IsOnline(userID) {
			h.wsHub.NotifyMatch(userID, candidate, conv.ID)
		}
	}

	// The advance delay exists only for the client's card transition;
	// the cursor moves now regardless of outcome.
	h.feedService.Advance()

	respondJSON(w, http.StatusOK, resp)
}

// Reset handles POST /api/v1/feed/reset
func (h *FeedHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.feedService.Reset()
	w.WriteHeader(http.StatusNoContent)
}
