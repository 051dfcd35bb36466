package repository

import (
	"errors"
	"sync"
	"time"

	"matchup-backend/internal/models"
)

// ErrConversationNotFound is returned when no conversation matches an ID.
var ErrConversationNotFound = errors.New("conversation not found")

// ConversationRepository holds all conversations and their message lists.
// Conversations keep insertion order; message lists are append-only.
type ConversationRepository struct {
	mu    sync.RWMutex
	order []string
	convs map[string]*models.Conversation
}

// NewConversationRepository creates a conversation repository seeded with
// the given conversations.
func NewConversationRepository(seed []models.Conversation) *ConversationRepository {
	r := &ConversationRepository{
		convs: make(map[string]*models.Conversation),
	}
	for i := range seed {
		c := seed[i]
		r.order = append(r.order, c.ID)
		r.convs[c.ID] = &c
	}
	return r
}

// List returns copies of all conversations in insertion order.
func (r *ConversationRepository) List() []models.Conversation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Conversation, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, copyConversation(r.convs[id]))
	}
	return out
}

// Get retrieves a conversation by ID.
func (r *ConversationRepository) Get(id string) (models.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.convs[id]
	if !ok {
		return models.Conversation{}, ErrConversationNotFound
	}
	return copyConversation(c), nil
}

// GetByPeer retrieves the conversation with the given peer, if any.
func (r *ConversationRepository) GetByPeer(peerID string) (models.Conversation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if r.convs[id].PeerID == peerID {
			return copyConversation(r.convs[id]), true
		}
	}
	return models.Conversation{}, false
}

// Create appends a new conversation.
func (r *ConversationRepository) Create(conv models.Conversation) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.order = append(r.order, conv.ID)
	r.convs[conv.ID] = &conv
}

// AppendMessage appends a message to a conversation and updates its
// last-message summary fields.
func (r *ConversationRepository) AppendMessage(id string, msg models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.convs[id]
	if !ok {
		return ErrConversationNotFound
	}

	c.Messages = append(c.Messages, msg)
	c.LastMessageText = msg.Text
	c.LastMessageTime = msg.Timestamp
	return nil
}

func copyConversation(c *models.Conversation) models.Conversation {
	copied := *c
	copied.Messages = make([]models.Message, len(c.Messages))
	copy(copied.Messages, c.Messages)
	return copied
}

// SeedConversations returns the demo conversation fixtures with message
// timestamps relative to now.
func SeedConversations(now time.Time) []models.Conversation {
	return []models.Conversation{
		{
			ID:              "1",
			PeerID:          "user1",
			PeerName:        "Sofia",
			PeerImage:       "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=100&h=100&fit=crop",
			LastMessageText: "That sounds amazing! \U0001F60A",
			LastMessageTime: now.Add(-5 * time.Minute),
			IsOnline:        true,
			UnreadCount:     2,
			Messages: []models.Message{
				{ID: "m1", SenderID: "user1", Text: "Hey! How's your day going?", Timestamp: now.Add(-30 * time.Minute), Read: true},
				{ID: "m2", SenderID: "me", Text: "Great! Just finished work. How about you?", Timestamp: now.Add(-25 * time.Minute), Read: true},
				{ID: "m3", SenderID: "user1", Text: "Same here! Want to grab coffee this weekend?", Timestamp: now.Add(-10 * time.Minute), Read: true},
				{ID: "m4", SenderID: "me", Text: "I'd love that! When works for you?", Timestamp: now.Add(-8 * time.Minute), Read: true},
				{ID: "m5", SenderID: "user1", Text: "That sounds amazing! \U0001F60A", Timestamp: now.Add(-5 * time.Minute), Read: false},
			},
		},
		{
			ID:              "2",
			PeerID:          "user2",
			PeerName:        "Emma",
			PeerImage:       "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=100&h=100&fit=crop",
			LastMessageText: "Thanks for the recommendation!",
			LastMessageTime: now.Add(-2 * time.Hour),
			IsOnline:        false,
			UnreadCount:     0,
			Messages: []models.Message{
				{ID: "m1", SenderID: "me", Text: "Have you seen that new art exhibition?", Timestamp: now.Add(-3 * time.Hour), Read: true},
				{ID: "m2", SenderID: "user2", Text: "Not yet! Is it good?", Timestamp: now.Add(-150 * time.Minute), Read: true},
				{ID: "m3", SenderID: "me", Text: "Really cool installations. I think you'd love it!", Timestamp: now.Add(-132 * time.Minute), Read: true},
				{ID: "m4", SenderID: "user2", Text: "Thanks for the recommendation!", Timestamp: now.Add(-2 * time.Hour), Read: true},
			},
		},
		{
			ID:              "3",
			PeerID:          "user3",
			PeerName:        "Jessica",
			PeerImage:       "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=100&h=100&fit=crop",
			LastMessageText: "Looking forward to it!",
			LastMessageTime: now.Add(-24 * time.Hour),
			IsOnline:        true,
			UnreadCount:     0,
			Messages: []models.Message{
				{ID: "m1", SenderID: "user3", Text: "Hi! Nice to match with you \U0001F60A", Timestamp: now.Add(-24 * time.Hour), Read: true},
				{ID: "m2", SenderID: "me", Text: "Hey! You too! How's your week been?", Timestamp: now.Add(-1410 * time.Minute), Read: true},
				{ID: "m3", SenderID: "user3", Text: "Pretty good! Looking forward to chatting more", Timestamp: now.Add(-23 * time.Hour), Read: true},
				{ID: "m4", SenderID: "me", Text: "Me too! Maybe we can grab dinner soon?", Timestamp: now.Add(-22 * time.Hour), Read: true},
				{ID: "m5", SenderID: "user3", Text: "Looking forward to it!", Timestamp: now.Add(-22 * time.Hour), Read: true},
			},
		},
	}
}
