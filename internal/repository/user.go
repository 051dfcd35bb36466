package repository

import (
	"errors"
	"sync"

	"matchup-backend/internal/models"
)

var (
	// ErrUserNotFound is returned when no identity matches a lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailExists is returned when creating an identity with a
	// registered email.
	ErrEmailExists = errors.New("email already exists")
)

// UserRepository holds the mock credential set: an owned, in-memory,
// insertion-ordered collection of identities. Emails are unique keys,
// matched case-sensitively.
type UserRepository struct {
	mu    sync.RWMutex
	users []*models.Identity
}

// NewUserRepository creates a user repository seeded with the given
// identities.
func NewUserRepository(seed []models.Identity) *UserRepository {
	r := &UserRepository{}
	for i := range seed {
		u := seed[i]
		r.users = append(r.users, &u)
	}
	return r
}

// SeedUsers returns the demo credential fixture.
func SeedUsers() []models.Identity {
	return []models.Identity{
		{
			ID:         "1",
			Email:      "demo@example.com",
			Password:   "demo123",
			Name:       "Demo User",
			Gender:     "Male",
			IsVerified: true,
			PhotoURL:   "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=100&h=100&fit=crop",
		},
	}
}

// Create appends a new identity. Fails with ErrEmailExists if the email
// is already registered.
func (r *UserRepository) Create(user models.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return ErrEmailExists
		}
	}
	r.users = append(r.users, &user)
	return nil
}

// EmailExists checks whether an email is already registered.
func (r *UserRepository) EmailExists(email string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return true
		}
	}
	return false
}

// GetByCredentials retrieves the identity matching both email and
// password exactly.
func (r *UserRepository) GetByCredentials(email, password string) (*models.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email && u.Password == password {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

// GetByID retrieves an identity by ID.
func (r *UserRepository) GetByID(id string) (*models.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

// Update replaces the identity with the same ID.
func (r *UserRepository) Update(user models.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == user.ID {
			r.users[i] = &user
			return nil
		}
	}
	return ErrUserNotFound
}

// Count returns the number of registered identities.
func (r *UserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
