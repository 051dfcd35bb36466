package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"matchup-backend/internal/models"
	"matchup-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const jwtExpDays = 365

var (
	// ErrDuplicateEmail is returned when signing up with a registered
	// email. Emails match case-sensitively.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials is returned when no identity matches both
	// email and password exactly.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNoActiveSession is returned when an operation requires a
	// current identity and none is set.
	ErrNoActiveSession = errors.New("no user logged in")
)

// Latency holds the simulated network delays applied before session
// operations resolve. Zero values skip the delay.
type Latency struct {
	Signup time.Duration
	Login  time.Duration
	Verify time.Duration
}

// SessionService owns the current authenticated identity and the mock
// credential set. The session lifecycle is anonymous -> authenticated
// unverified -> authenticated verified; logout returns to anonymous from
// any state. Mutations are not serialized against each other beyond the
// internal lock; concurrent calls resolve last-write-wins.
type SessionService struct {
	mu        sync.RWMutex
	userRepo  *repository.UserRepository
	store     *repository.LocalStore
	jwtSecret string
	latency   Latency
	current   *models.Identity

	// sleep and randFloat are injectable for deterministic tests.
	sleep     func(time.Duration)
	randFloat func() float64
}

// NewSessionService creates a session service. sleep defaults to
// time.Sleep and randFloat to a uniform [0,1) source when nil.
func NewSessionService(
	userRepo *repository.UserRepository,
	store *repository.LocalStore,
	jwtSecret string,
	latency Latency,
	sleep func(time.Duration),
	randFloat func() float64,
) *SessionService {
	if sleep == nil {
		sleep = time.Sleep
	}
	if randFloat == nil {
		randFloat = defaultRandFloat
	}
	return &SessionService{
		userRepo:  userRepo,
		store:     store,
		jwtSecret: jwtSecret,
		latency:   latency,
		sleep:     sleep,
		randFloat: randFloat,
	}
}

// Signup registers a new identity and makes it the current session.
// Fails with ErrDuplicateEmail if the email is already registered; the
// credential set is unchanged on failure.
func (s *SessionService) Signup(ctx context.Context, email, password, name string) (*models.Identity, error) {
	if s.userRepo.EmailExists(email) {
		return nil, ErrDuplicateEmail
	}

	// Simulated network call.
	s.sleep(s.latency.Signup)

	user := models.Identity{
		ID:         uuid.New().String(),
		Email:      email,
		Password:   password,
		Name:       name,
		IsVerified: false,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.setCurrent(&user)
	return &user, nil
}

// Login authenticates against the credential set and makes the matched
// identity the current session.
func (s *SessionService) Login(ctx context.Context, email, password string) (*models.Identity, error) {
	// Simulated network call.
	s.sleep(s.latency.Login)

	user, err := s.userRepo.GetByCredentials(email, password)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	s.setCurrent(user)
	return user, nil
}

// VerifyFace completes the mock face verification for the current
// identity: a simulated delay, then the given gender and photo URL are
// recorded and the identity is marked verified. An empty gender is
// auto-detected with a uniform coin flip, matching the demo client.
func (s *SessionService) VerifyFace(ctx context.Context, gender, photoURL string) (*models.Identity, error) {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current == nil {
		return nil, ErrNoActiveSession
	}

	// Simulated verification call, noticeably slower than auth.
	s.sleep(s.latency.Verify)

	if gender == "" {
		if s.randFloat() > 0.5 {
			gender = "male"
		} else {
			gender = "female"
		}
	}

	updated := *current
	updated.Gender = gender
	updated.PhotoURL = photoURL
	updated.IsVerified = true

	if err := s.userRepo.Update(updated); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.setCurrent(&updated)
	return &updated, nil
}

// Logout clears the current session and its persisted copy.
func (s *SessionService) Logout() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.store.Delete(repository.KeySession); err != nil {
		log.Error().Err(err).Msg("Failed to delete persisted session")
	}
}

// RestoreSession loads the persisted identity, if any. A malformed
// record is logged and treated as no session; startup never blocks on
// corrupt state.
func (s *SessionService) RestoreSession() *models.Identity {
	var user models.Identity
	ok, err := s.store.Get(repository.KeySession, &user)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to parse stored session")
		return nil
	}
	if !ok {
		return nil
	}

	s.mu.Lock()
	s.current = &user
	s.mu.Unlock()

	copied := user
	return &copied
}

// Current returns the current identity, or nil when anonymous.
func (s *SessionService) Current() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

// setCurrent swaps the current identity and persists it. Persistence is
// best-effort: a write failure is logged, never surfaced.
func (s *SessionService) setCurrent(user *models.Identity) {
	s.mu.Lock()
	copied := *user
	s.current = &copied
	s.mu.Unlock()

	if err := s.store.Set(repository.KeySession, user); err != nil {
		log.Error().Err(err).Msg("Failed to persist session")
	}
}

// GenerateJWT generates a JWT token for an identity
func (s *SessionService) GenerateJWT(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().AddDate(0, 0, jwtExpDays).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateJWT validates a JWT token and returns the user ID
func (s *SessionService) ValidateJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", fmt.Errorf("user_id not found in token")
	}

	return userID, nil
}
