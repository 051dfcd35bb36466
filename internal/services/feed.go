package services

import (
	"sync"

	"matchup-backend/internal/models"
	"matchup-backend/internal/repository"
)

// FeedService owns the discovery feed cursor over the candidate
// collection. The feed is cyclic: the cursor wraps to zero past the last
// profile, so the pool replays forever. An empty pool is the only
// "no profiles" state.
type FeedService struct {
	mu          sync.Mutex
	profileRepo *repository.ProfileRepository
	cursor      int
}

// NewFeedService creates a feed service with the cursor at zero.
func NewFeedService(profileRepo *repository.ProfileRepository) *FeedService {
	return &FeedService{profileRepo: profileRepo}
}

// Current returns the profile at the cursor, or false if the collection
// is empty.
func (s *FeedService) Current() (models.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profileRepo.At(s.cursor)
}

// Advance moves the cursor forward one position, wrapping modulo the
// collection size.
func (s *FeedService) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.profileRepo.Len()
	if n == 0 {
		return
	}
	s.cursor = (s.cursor + 1) % n
}

// Reset returns the cursor to the start of the collection.
func (s *FeedService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = 0
}

// Position reports the cursor index and collection size, for the
// "Profile N of M" display.
func (s *FeedService) Position() (index, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor, s.profileRepo.Len()
}
