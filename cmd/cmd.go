package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"matchup-backend/internal/config"
	"matchup-backend/internal/handlers"
	"matchup-backend/internal/middleware"
	"matchup-backend/internal/repository"
	"matchup-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Local storage slot
	store := repository.NewLocalStore(cfg.Store.Path)

	// Initialize repositories with the demo fixtures
	userRepo := repository.NewUserRepository(repository.SeedUsers())
	profileRepo := repository.NewProfileRepository(repository.SeedProfiles())
	convRepo := repository.NewConversationRepository(repository.SeedConversations(time.Now()))

	// Initialize services
	latency := services.Latency{
		Signup: time.Duration(cfg.Latency.SignupMS) * time.Millisecond,
		Login:  time.Duration(cfg.Latency.LoginMS) * time.Millisecond,
		Verify: time.Duration(cfg.Latency.VerifyMS) * time.Millisecond,
	}
	sessionService := services.NewSessionService(userRepo, store, cfg.JWT.Secret, latency, nil, nil)
	feedService := services.NewFeedService(profileRepo)
	swipeService := services.NewSwipeService(cfg.Feed.MatchRate, nil)
	convService := services.NewConversationService(convRepo, nil)
	settingsService := services.NewSettingsService(store)
	wsHub := services.NewWSHub()

	// Best-effort session restore; a corrupt slot means anonymous start
	if user := sessionService.RestoreSession(); user != nil {
		log.Info().Str("user_id", user.ID).Msg("Session restored")
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(sessionService)
	feedHandler := handlers.NewFeedHandler(feedService, swipeService, convService, wsHub, cfg.Feed.AdvanceDelayMS)
	convHandler := handlers.NewConversationHandler(convService, wsHub)
	settingsHandler := handlers.NewSettingsHandler(settingsService, wsHub)
	wsHandler := handlers.NewWebSocketHandler(wsHub, sessionService, convService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	// Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
			r.Post("/auth/signup", authHandler.Signup)
			r.Post("/auth/login", authHandler.Login)
		})

		// Protected routes
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

	// WebSocket route
	r.Get("/ws", wsHandler.HandleWebSocket)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Shutdown HTTP server; open websockets drop with it
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
