package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"matchup-backend/internal/repository"

	"github.com/stretchr/testify/require"
)

func newTestSessionService(t *testing.T) (*SessionService, *repository.LocalStore) {
	t.Helper()
	store := repository.NewLocalStore(filepath.Join(t.TempDir(), "store.json"))
	svc := NewSessionService(
		repository.NewUserRepository(repository.SeedUsers()),
		store,
		"test-secret",
		Latency{},
		func(time.Duration) {},
		nil,
	)
	return svc, store
}

func TestSignup_CreatesUnverifiedIdentity(t *testing.T) {
	svc, _ := newTestSessionService(t)

	user, err := svc.Signup(context.Background(), "new@example.com", "secret", "New User")
	require.NoError(t, err)
	require.False(t, user.IsVerified)
	require.Equal(t, "new@example.com", user.Email)
	require.Equal(t, "New User", user.Name)
	require.NotEmpty(t, user.ID)

	current := svc.Current()
	require.NotNil(t, current)
	require.Equal(t, user.ID, current.ID)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, _ := newTestSessionService(t)
	ctx := context.Background()

	first, err := svc.Signup(ctx, "dup@example.com", "one", "First")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "dup@example.com", "two", "Second")
	require.ErrorIs(t, err, ErrDuplicateEmail)

	// The first identity is unaffected.
	svc.Logout()
	user, err := svc.Login(ctx, "dup@example.com", "one")
	require.NoError(t, err)
	require.Equal(t, first.ID, user.ID)
}

func TestSignup_EmailMatchIsCaseSensitive(t *testing.T) {
	svc, _ := newTestSessionService(t)

	_, err := svc.Signup(context.Background(), "Demo@example.com", "pw", "Other Demo")
	require.NoError(t, err)
}

func TestLogin_DemoFixture(t *testing.T) {
	svc, _ := newTestSessionService(t)

	user, err := svc.Login(context.Background(), "demo@example.com", "demo123")
	require.NoError(t, err)
	require.True(t, user.IsVerified)
	require.Equal(t, "Demo User", user.Name)
	require.NotEmpty(t, user.Gender)
	require.NotEmpty(t, user.PhotoURL)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestSessionService(t)

	_, err := svc.Login(context.Background(), "demo@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.Nil(t, svc.Current())
}

func TestVerifyFace_NoActiveSession(t *testing.T) {
	svc, _ := newTestSessionService(t)

	_, err := svc.VerifyFace(context.Background(), "female", "https://example.com/p.jpg")
	require.ErrorIs(t, err, ErrNoActiveSession)
}

func TestVerifyFace_SetsFieldsAndPersists(t *testing.T) {
	svc, store := newTestSessionService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "v@example.com", "pw", "V")
	require.NoError(t, err)

	user, err := svc.VerifyFace(ctx, "female", "https://example.com/v.jpg")
	require.NoError(t, err)
	require.True(t, user.IsVerified)
	require.Equal(t, "female", user.Gender)
	require.Equal(t, "https://example.com/v.jpg", user.PhotoURL)

	// A fresh service over the same slot restores the verified identity.
	restored := NewSessionService(
		repository.NewUserRepository(repository.SeedUsers()),
		store,
		"test-secret",
		Latency{},
		func(time.Duration) {},
		nil,
	).RestoreSession()
	require.NotNil(t, restored)
	require.True(t, restored.IsVerified)
	require.Equal(t, "female", restored.Gender)
	require.Equal(t, "https://example.com/v.jpg", restored.PhotoURL)
}

func TestVerifyFace_AutoDetectsGender(t *testing.T) {
	store := repository.NewLocalStore(filepath.Join(t.TempDir(), "store.json"))
	svc := NewSessionService(
		repository.NewUserRepository(repository.SeedUsers()),
		store,
		"test-secret",
		Latency{},
		func(time.Duration) {},
		func() float64 { return 0.9 },
	)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "auto@example.com", "pw", "Auto")
	require.NoError(t, err)

	user, err := svc.VerifyFace(ctx, "", "https://example.com/a.jpg")
	require.NoError(t, err)
	require.Equal(t, "male", user.Gender)
}

func TestLogout_ClearsSessionAndSlot(t *testing.T) {
	svc, store := newTestSessionService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "demo@example.com", "demo123")
	require.NoError(t, err)

	svc.Logout()
	require.Nil(t, svc.Current())

	var stored map[string]interface{}
	ok, err := store.Get(repository.KeySession, &stored)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRestoreSession_MalformedSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	svc := NewSessionService(
		repository.NewUserRepository(repository.SeedUsers()),
		repository.NewLocalStore(path),
		"test-secret",
		Latency{},
		func(time.Duration) {},
		nil,
	)

	// Corrupt state is swallowed: no error surfaces, session stays empty.
	require.Nil(t, svc.RestoreSession())
	require.Nil(t, svc.Current())
}

func TestSignup_AppliesConfiguredLatency(t *testing.T) {
	var slept []time.Duration
	store := repository.NewLocalStore(filepath.Join(t.TempDir(), "store.json"))
	svc := NewSessionService(
		repository.NewUserRepository(repository.SeedUsers()),
		store,
		"test-secret",
		Latency{Signup: time.Second},
		func(d time.Duration) { slept = append(slept, d) },
		nil,
	)

	_, err := svc.Signup(context.Background(), "slow@example.com", "pw", "Slow")
	require.NoError(t, err)
	require.Equal(t, []time.Duration{time.Second}, slept)
}

func TestJWT_RoundTrip(t *testing.T) {
	svc, _ := newTestSessionService(t)

	token, err := svc.GenerateJWT("42")
	require.NoError(t, err)

	userID, err := svc.ValidateJWT(token)
	require.NoError(t, err)
	require.Equal(t, "42", userID)

	_, err = svc.ValidateJWT("not-a-token")
	require.Error(t, err)
}
