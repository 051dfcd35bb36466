package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"matchup-backend/internal/middleware"
	"matchup-backend/internal/services"
)

// SettingsHandler handles user preference HTTP requests
type SettingsHandler struct {
	settingsService *services.SettingsService
	wsHub           *services.WSHub
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *services.SettingsService, wsHub *services.WSHub) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		wsHub:           wsHub,
	}
}

// ThemeResponse represents the stored display mode
type ThemeResponse struct {
	Theme string `json:"theme"`
}

// GetTheme handles GET /api/v1/settings/theme
func (h *SettingsHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, ThemeResponse{Theme: h.settingsService.Theme()})
}

// SetTheme handles PUT /api/v1/settings/theme
func (h *SettingsHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req ThemeResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.settingsService.SetTheme(req.Theme); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, services.ErrInvalidTheme) {
			statusCode = http.StatusBadRequest
		}
		respondError(w, err.Error(), statusCode)
		return
	}

	if h.wsHub.IsOnline(userID) {
		h.wsHub.NotifyTheme(userID, req.Theme)
	}

	respondJSON(w, http.StatusOK, ThemeResponse{Theme: req.Theme})
}
