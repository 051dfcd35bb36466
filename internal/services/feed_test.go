package services

import (
	"testing"

	"matchup-backend/internal/models"
	"matchup-backend/internal/repository"

	"github.com/stretchr/testify/require"
)

func TestFeed_CurrentAndAdvance(t *testing.T) {
	feed := NewFeedService(repository.NewProfileRepository(repository.SeedProfiles()))

	first, ok := feed.Current()
	require.True(t, ok)
	require.Equal(t, "Sofia", first.Name)

	feed.Advance()
	second, ok := feed.Current()
	require.True(t, ok)
	require.Equal(t, "Emma", second.Name)
}

func TestFeed_CycleClosure(t *testing.T) {
	profiles := repository.SeedProfiles()
	feed := NewFeedService(repository.NewProfileRepository(profiles))

	start, ok := feed.Current()
	require.True(t, ok)

	// N advances over a collection of size N return to the start.
	for i := 0; i < len(profiles); i++ {
		feed.Advance()
	}

	end, ok := feed.Current()
	require.True(t, ok)
	require.Equal(t, start.ID, end.ID)
}

func TestFeed_Reset(t *testing.T) {
	feed := NewFeedService(repository.NewProfileRepository(repository.SeedProfiles()))

	feed.Advance()
	feed.Advance()
	feed.Reset()

	index, total := feed.Position()
	require.Equal(t, 0, index)
	require.Equal(t, 8, total)
}

func TestFeed_EmptyCollection(t *testing.T) {
	feed := NewFeedService(repository.NewProfileRepository(nil))

	_, ok := feed.Current()
	require.False(t, ok)

	// Advancing an empty feed is a no-op, not a panic.
	feed.Advance()
	_, ok = feed.Current()
	require.False(t, ok)
}

func TestFeed_SuperlikeOnLastProfileWraps(t *testing.T) {
	sofia := models.Profile{ID: "1", Name: "Sofia"}
	feed := NewFeedService(repository.NewProfileRepository([]models.Profile{sofia}))
	swipe := NewSwipeService(0.3, nil)

	candidate, ok := feed.Current()
	require.True(t, ok)
	require.Equal(t, "Sofia", candidate.Name)

	matched, err := swipe.Decide(ActionSuperlike)
	require.NoError(t, err)
	require.True(t, matched)

	feed.Advance()

	// Sofia was the only entry, so the cursor wraps back to her.
	next, ok := feed.Current()
	require.True(t, ok)
	require.Equal(t, "1", next.ID)

	index, _ := feed.Position()
	require.Equal(t, 0, index)
}
