package models

import "time"

// Identity represents a registered user account, including the mock
// credential used for login. The credential set is synthetic demo data, so
// the password is stored as-is and compared exactly.
type Identity struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Password   string `json:"password,omitempty"`
	Gender     string `json:"gender,omitempty"`
	IsVerified bool   `json:"is_verified"`
	PhotoURL   string `json:"photo_url,omitempty"`
}

// IdentityResponse is the safe view of an Identity returned over the API.
type IdentityResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Gender     string `json:"gender,omitempty"`
	IsVerified bool   `json:"is_verified"`
	PhotoURL   string `json:"photo_url,omitempty"`
}

// Response returns the API view of the identity.
func (i *Identity) Response() IdentityResponse {
	return IdentityResponse{
		ID:         i.ID,
		Email:      i.Email,
		Name:       i.Name,
		Gender:     i.Gender,
		IsVerified: i.IsVerified,
		PhotoURL:   i.PhotoURL,
	}
}

// Profile represents a swipeable candidate in the discovery feed.
// Profiles are immutable once loaded.
type Profile struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Age       int      `json:"age"`
	Location  string   `json:"location"`
	Bio       string   `json:"bio"`
	Image     string   `json:"image"`
	Interests []string `json:"interests"`
}

// Message is a single chat message. Messages are immutable once created;
// ordering within a conversation is insertion order.
type Message struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// Conversation is a message thread between the local user and one peer.
// UnreadCount and IsOnline are seeded display fields; no write path
// updates them.
type Conversation struct {
	ID              string    `json:"id"`
	PeerID          string    `json:"peer_id"`
	PeerName        string    `json:"peer_name"`
	PeerImage       string    `json:"peer_image"`
	LastMessageText string    `json:"last_message_text"`
	LastMessageTime time.Time `json:"last_message_time"`
	IsOnline        bool      `json:"is_online"`
	UnreadCount     int       `json:"unread_count"`
	Messages        []Message `json:"messages"`
}
