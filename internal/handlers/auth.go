package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"matchup-backend/internal/models"
	"matchup-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AuthHandler handles session-related HTTP requests
type AuthHandler struct {
	sessionService *services.SessionService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessionService *services.SessionService) *AuthHandler {
	return &AuthHandler{
		sessionService: sessionService,
	}
}

// SignupRequest represents the request body for signup
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyFaceRequest represents the request body for face verification
type VerifyFaceRequest struct {
	Gender   string `json:"gender"`
	PhotoURL string `json:"photo_url"`
}

// AuthResponse carries a session token and the identity it belongs to
type AuthResponse struct {
	Token string                  `json:"token"`
	User  models.IdentityResponse `json:"user"`
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		respondError(w, "email, password and name are required", http.StatusBadRequest)
		return
	}

	user, err := h.sessionService.Signup(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to sign up")

		statusCode := http.StatusInternalServerError
		if errors.Is(err, services.ErrDuplicateEmail) {
			statusCode = http.StatusConflict
		}

		respondError(w, err.Error(), statusCode)
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("User signed up")

	h.respondAuth(w, user)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.sessionService.Login(ctx, req.Email, req.Password)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to log in")

		statusCode := http.StatusInternalServerError
		if errors.Is(err, services.ErrInvalidCredentials) {
			statusCode = http.StatusUnauthorized
		}

		respondError(w, err.Error(), statusCode)
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Msg("User logged in")

	h.respondAuth(w, user)
}

// VerifyFace handles POST /api/v1/auth/verify-face
func (h *AuthHandler) VerifyFace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req VerifyFaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// A verified identity always carries a photo; gender may be left
	// empty for auto-detection.
	if req.PhotoURL == "" {
		respondError(w, "photo_url is required", http.StatusBadRequest)
		return
	}

	user, err := h.sessionService.VerifyFace(ctx, req.Gender, req.PhotoURL)
	if err != nil {
		log.Error().Err(err).Msg("Failed to verify face")

		statusCode := http.StatusInternalServerError
		if errors.Is(err, services.ErrNoActiveSession) {
			statusCode = http.StatusUnauthorized
		}

		respondError(w, err.Error(), statusCode)
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Str("gender", user.Gender).
		Msg("Face verified")

	respondJSON(w, http.StatusOK, user.Response())
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessionService.Logout()

	log.Info().Msg("User logged out")

	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := h.sessionService.Current()
	if user == nil {
		respondError(w, "no active session", http.StatusUnauthorized)
		return
	}

	respondJSON(w, http.StatusOK, user.Response())
}

func (h *AuthHandler) respondAuth(w http.ResponseWriter, user *models.Identity) {
	token, err := h.sessionService.GenerateJWT(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate token")
		respondError(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Token: token,
		User:  user.Response(),
	})
}
