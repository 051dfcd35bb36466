package services

import (
	"errors"
	"math/rand"
)

// SwipeAction is the user's decision on the current candidate.
type SwipeAction string

const (
	ActionLike      SwipeAction = "like"
	ActionDislike   SwipeAction = "dislike"
	ActionSuperlike SwipeAction = "superlike"
)

// ErrUnknownAction is returned for an unrecognized swipe action.
var ErrUnknownAction = errors.New("unknown swipe action")

// SwipeService decides match outcomes. A like matches with a fixed
// independent probability per call; no peer-side state is consulted.
// This is a cosmetic simulation of mutual interest, not a real matching
// computation.
type SwipeService struct {
	matchRate float64
	randFloat func() float64
}

// NewSwipeService creates a swipe service. matchRate is the like match
// probability; randFloat defaults to a uniform [0,1) source when nil.
func NewSwipeService(matchRate float64, randFloat func() float64) *SwipeService {
	if randFloat == nil {
		randFloat = defaultRandFloat
	}
	return &SwipeService{
		matchRate: matchRate,
		randFloat: randFloat,
	}
}

// Decide returns whether the action produced a match. Dislike never
// matches, superlike always does, like draws against the match rate.
func (s *SwipeService) Decide(action SwipeAction) (bool, error) {
	switch action {
	case ActionDislike:
		return false, nil
	case ActionSuperlike:
		return true, nil
	case ActionLike:
		return s.randFloat() < s.matchRate, nil
	default:
		return false, ErrUnknownAction
	}
}

func defaultRandFloat() float64 {
	return rand.Float64()
}
