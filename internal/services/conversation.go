package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"matchup-backend/internal/models"
	"matchup-backend/internal/repository"

	"github.com/google/uuid"
)

var (
	// ErrEmptyMessage is returned when a message text is empty after
	// trimming whitespace.
	ErrEmptyMessage = errors.New("message text is empty")
	// ErrConversationNotFound is returned for an unknown conversation ID.
	ErrConversationNotFound = errors.New("conversation not found")
)

// ConversationService owns all conversations and their append-only
// message lists. Sending is purely a local state append; no network send
// occurs.
type ConversationService struct {
	convRepo *repository.ConversationRepository
	now      func() time.Time
}

// NewConversationService creates a conversation service. now defaults to
// time.Now when nil.
func NewConversationService(convRepo *repository.ConversationRepository, now func() time.Time) *ConversationService {
	if now == nil {
		now = time.Now
	}
	return &ConversationService{
		convRepo: convRepo,
		now:      now,
	}
}

// List returns all conversations in stable insertion order.
func (s *ConversationService) List(ctx context.Context) []models.Conversation {
	return s.convRepo.List()
}

// Get retrieves one conversation by ID.
func (s *ConversationService) Get(ctx context.Context, id string) (models.Conversation, error) {
	conv, err := s.convRepo.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrConversationNotFound) {
			return models.Conversation{}, ErrConversationNotFound
		}
		return models.Conversation{}, err
	}
	return conv, nil
}

// SendMessage appends a message from the local user to a conversation
// and updates its last-message summary. The conversation is unchanged on
// failure.
func (s *ConversationService) SendMessage(ctx context.Context, conversationID, text string) (models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return models.Message{}, ErrEmptyMessage
	}

	msg := models.Message{
		ID:        uuid.New().String(),
		SenderID:  "me",
		Text:      text,
		Timestamp: s.now(),
		Read:      true,
	}

	if err := s.convRepo.AppendMessage(conversationID, msg); err != nil {
		if errors.Is(err, repository.ErrConversationNotFound) {
			return models.Message{}, ErrConversationNotFound
		}
		return models.Message{}, err
	}
	return msg, nil
}

// OpenForMatch returns the conversation with the matched candidate,
// creating an empty one when no thread exists yet.
func (s *ConversationService) OpenForMatch(ctx context.Context, profile models.Profile) models.Conversation {
	if conv, ok := s.convRepo.GetByPeer(profile.ID); ok {
		return conv
	}

	conv := models.Conversation{
		ID:              uuid.New().String(),
		PeerID:          profile.ID,
		PeerName:        profile.Name,
		PeerImage:       profile.Image,
		LastMessageTime: s.now(),
		Messages:        []models.Message{},
	}
	s.convRepo.Create(conv)
	return conv
}
