package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"matchup-backend/internal/middleware"
	"matchup-backend/internal/repository"
	"matchup-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires the full API surface with in-memory fixtures, zero
// latency and a deterministic swipe source.
func newTestRouter(t *testing.T, randFloat func() float64) *chi.Mux {
	t.Helper()

	store := repository.NewLocalStore(filepath.Join(t.TempDir(), "store.json"))
	userRepo := repository.NewUserRepository(repository.SeedUsers())
	profileRepo := repository.NewProfileRepository(repository.SeedProfiles())
	convRepo := repository.NewConversationRepository(repository.SeedConversations(time.Now()))

	sessionService := services.NewSessionService(userRepo, store, "test-secret", services.Latency{}, func(time.Duration) {}, nil)
	feedService := services.NewFeedService(profileRepo)
	swipeService := services.NewSwipeService(0.3, randFloat)
	convService := services.NewConversationService(convRepo, nil)
	settingsService := services.NewSettingsService(store)
	wsHub := services.NewWSHub()

	authHandler := NewAuthHandler(sessionService)
	feedHandler := NewFeedHandler(feedService, swipeService, convService, wsHub, 600)
	convHandler := NewConversationHandler(convService, wsHub)
	settingsHandler := NewSettingsHandler(settingsService, wsHub)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/signup", authHandler.Signup)
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(sessionService))
			r.Post("/auth/logout", authHandler.Logout)
			r.Post("/auth/verify-face", authHandler.VerifyFace)
			r.Get("/auth/me", authHandler.Me)
			r.Get("/feed/current", feedHandler.Current)
			r.Post("/feed/swipe", feedHandler.Swipe)
			r.Post("/feed/reset", feedHandler.Reset)
			r.Get("/conversations", convHandler.List)
			r.Get("/conversations/{conversation_id}", convHandler.Get)
			r.Post("/conversations/{conversation_id}/messages", convHandler.SendMessage)
			r.Get("/settings/theme", settingsHandler.GetTheme)
			r.Put("/settings/theme", settingsHandler.SetTheme)
		})
	})
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loginDemo(t *testing.T, r http.Handler) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{
		Email:    "demo@example.com",
		Password: "demo123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp AuthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestSignup_ReturnsTokenAndUnverifiedUser(t *testing.T) {
	r := newTestRouter(t, nil)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/signup", "", SignupRequest{
		Email:    "new@example.com",
		Password: "pw",
		Name:     "New",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp AuthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	require.False(t, resp.User.IsVerified)
	require.Equal(t, "new@example.com", resp.User.Email)
}

func TestSignup_DuplicateEmailConflict(t *testing.T) {
	r := newTestRouter(t, nil)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/signup", "", SignupRequest{
		Email:    "demo@example.com",
		Password: "pw",
		Name:     "Dup",
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	r := newTestRouter(t, nil)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{
		Email:    "demo@example.com",
		Password: "nope",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe_RequiresToken(t *testing.T) {
	r := newTestRouter(t, nil)

	w := doJSON(t, r, http.MethodGet, "/api/v1/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifyFace_FlowOverHTTP(t *testing.T) {
	r := newTestRouter(t, nil)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/signup", "", SignupRequest{
		Email:    "face@example.com",
		Password: "pw",
		Name:     "Face",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var signup AuthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&signup))

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/verify-face", signup.Token, VerifyFaceRequest{
		Gender:   "female",
		PhotoURL: "https://example.com/f.jpg",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/auth/me", signup.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var me map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&me))
	require.Equal(t, true, me["is_verified"])
	require.Equal(t, "female", me["gender"])
}

func TestTheme_PutAndGet(t *testing.T) {
	r := newTestRouter(t, nil)
	token := loginDemo(t, r)

	w := doJSON(t, r, http.MethodPut, "/api/v1/settings/theme", token, ThemeResponse{Theme: "dark"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/settings/theme", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ThemeResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, "dark", resp.Theme)
}

func TestTheme_RejectsUnknownValue(t *testing.T) {
	r := newTestRouter(t, nil)
	token := loginDemo(t, r)

	w := doJSON(t, r, http.MethodPut, "/api/v1/settings/theme", token, ThemeResponse{Theme: "sepia"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
