package services

import (
	"math"
	"math/rand"
	"testing"
)

func TestDecide_DislikeNeverMatches(t *testing.T) {
	svc := NewSwipeService(0.3, func() float64 { return 0 })

	for i := 0; i < 100; i++ {
		matched, err := svc.Decide(ActionDislike)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if matched {
			t.Fatal("dislike must never match")
		}
	}
}

func TestDecide_SuperlikeAlwaysMatches(t *testing.T) {
	svc := NewSwipeService(0.3, func() float64 { return 0.99 })

	for i := 0; i < 100; i++ {
		matched, err := svc.Decide(ActionSuperlike)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !matched {
			t.Fatal("superlike must always match")
		}
	}
}

func TestDecide_LikeMatchRate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	svc := NewSwipeService(0.3, rng.Float64)

	const trials = 10000
	matches := 0
	for i := 0; i < trials; i++ {
		matched, err := svc.Decide(ActionLike)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if matched {
			matches++
		}
	}

	rate := float64(matches) / trials
	if math.Abs(rate-0.3) > 0.05 {
		t.Fatalf("like match rate %.3f outside 0.30 +/- 0.05", rate)
	}
}

func TestDecide_UnknownAction(t *testing.T) {
	svc := NewSwipeService(0.3, nil)

	if _, err := svc.Decide("wink"); err != ErrUnknownAction {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}
