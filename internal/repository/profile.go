package repository

import "matchup-backend/internal/models"

// ProfileRepository holds the fixed, ordered candidate collection shown
// in the discovery feed. The collection is immutable once loaded.
type ProfileRepository struct {
	profiles []models.Profile
}

// NewProfileRepository creates a profile repository over the given
// collection.
func NewProfileRepository(profiles []models.Profile) *ProfileRepository {
	return &ProfileRepository{profiles: profiles}
}

// Len returns the collection size.
func (r *ProfileRepository) Len() int {
	return len(r.profiles)
}

// At returns the profile at index i, or false if the collection is empty
// or the index is out of range.
func (r *ProfileRepository) At(i int) (models.Profile, bool) {
	if i < 0 || i >= len(r.profiles) {
		return models.Profile{}, false
	}
	return r.profiles[i], true
}

// All returns a copy of the candidate collection in feed order.
func (r *ProfileRepository) All() []models.Profile {
	out := make([]models.Profile, len(r.profiles))
	copy(out, r.profiles)
	return out
}

// SeedProfiles returns the demo candidate pool.
func SeedProfiles() []models.Profile {
	return []models.Profile{
		{
			ID:        "1",
			Name:      "Sofia",
			Age:       26,
			Location:  "San Francisco, CA",
			Bio:       "Adventure seeker, coffee lover, and aspiring photographer. Let's explore the city together!",
			Image:     "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=500&h=600&fit=crop",
			Interests: []string{"Photography", "Travel", "Coffee", "Hiking"},
		},
		{
			ID:        "2",
			Name:      "Emma",
			Age:       24,
			Location:  "Los Angeles, CA",
			Bio:       "Artist by day, dreamer by night. Looking for someone to create memories with.",
			Image:     "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=500&h=600&fit=crop",
			Interests: []string{"Art", "Music", "Fashion", "Yoga"},
		},
		{
			ID:        "3",
			Name:      "Jessica",
			Age:       27,
			Location:  "New York, NY",
			Bio:       "Foodie, wine enthusiast, and book lover. Love trying new restaurants and meaningful conversations.",
			Image:     "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=500&h=600&fit=crop",
			Interests: []string{"Food", "Wine", "Books", "Theater"},
		},
		{
			ID:        "4",
			Name:      "Maya",
			Age:       25,
			Location:  "Austin, TX",
			Bio:       "Tech enthusiast and startup junkie. Let's talk ideas and dreams over coffee!",
			Image:     "https://images.unsplash.com/photo-1506794778202-cad84cf45f1d?w=500&h=600&fit=crop",
			Interests: []string{"Tech", "Startups", "Gaming", "Movies"},
		},
		{
			ID:        "5",
			Name:      "Rachel",
			Age:       28,
			Location:  "Seattle, WA",
			Bio:       "Outdoor enthusiast and nature lover. Rock climbing, hiking, and camping are my passion.",
			Image:     "https://images.unsplash.com/photo-1517841905240-74f88aff8856?w=500&h=600&fit=crop",
			Interests: []string{"Hiking", "Rock Climbing", "Nature", "Outdoor Sports"},
		},
		{
			ID:        "6",
			Name:      "Lisa",
			Age:       26,
			Location:  "Chicago, IL",
			Bio:       "Yoga instructor and wellness advocate. Let's build a healthy, happy life together!",
			Image:     "https://images.unsplash.com/photo-1473123169556-658a5ac5ca89?w=500&h=600&fit=crop",
			Interests: []string{"Yoga", "Wellness", "Fitness", "Meditation"},
		},
		{
			ID:        "7",
			Name:      "Alex",
			Age:       29,
			Location:  "Denver, CO",
			Bio:       "Ski enthusiast and mountain lover. Weekend trips and outdoor adventures are my thing.",
			Image:     "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=500&h=600&fit=crop",
			Interests: []string{"Skiing", "Mountains", "Sports", "Travel"},
		},
		{
			ID:        "8",
			Name:      "Nicole",
			Age:       25,
			Location:  "Miami, FL",
			Bio:       "Beach babe and sunset chaser. Love dancing, music, and good vibes!",
			Image:     "https://images.unsplash.com/photo-1519244703995-f4dc5af00d80?w=500&h=600&fit=crop",
			Interests: []string{"Beach", "Music", "Dancing", "Parties"},
		},
	}
}
