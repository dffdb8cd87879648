package domain

import (
	"time"

	"github.com/google/uuid"
)

// Chat is a two-party conversation. Participants are stored in canonical
// order (UserAID < UserBID by string comparison) so the composite unique
// index guarantees at most one chat per pair regardless of who created it.
type Chat struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserAID   uuid.UUID `json:"-" gorm:"type:uuid;not null;uniqueIndex:idx_chat_pair"`
	UserBID   uuid.UUID `json:"-" gorm:"type:uuid;not null;uniqueIndex:idx_chat_pair"`
	CreatedAt time.Time `json:"createdAt"`

	UserA *User `json:"-" gorm:"foreignKey:UserAID"`
	UserB *User `json:"-" gorm:"foreignKey:UserBID"`
}

// NormalizePair returns the two user IDs in canonical storage order.
func NormalizePair(x, y uuid.UUID) (uuid.UUID, uuid.UUID) {
	if x.String() < y.String() {
		return x, y
	}
	return y, x
}

// HasParticipant reports whether userID is one of the chat's two participants.
func (c *Chat) HasParticipant(userID uuid.UUID) bool {
	return c.UserAID == userID || c.UserBID == userID
}

// OtherParticipantID returns the participant that is not userID. The caller
// must already have checked HasParticipant.
func (c *Chat) OtherParticipantID(userID uuid.UUID) uuid.UUID {
	if c.UserAID == userID {
		return c.UserBID
	}
	return c.UserAID
}

// Message is one immutable, timestamped text unit within a chat. Seq is a
// database sequence used to reproduce exact insertion order when two messages
// share a created_at timestamp.
type Message struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ChatID    uuid.UUID `json:"chat_id" gorm:"type:uuid;not null;index:idx_chat_created,priority:1"`
	SenderID  uuid.UUID `json:"sender_id" gorm:"type:uuid;not null"`
	Seq       int64     `json:"-" gorm:"autoIncrement;not null;uniqueIndex"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_chat_created,priority:2"`

	Sender *User `json:"-" gorm:"foreignKey:SenderID"`
}

// ChatRead tracks how far a participant has read in a chat. The marker is
// advanced whenever the participant lists the chat's messages; unread counts
// are messages from the other side newer than the marker.
type ChatRead struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ChatID     uuid.UUID `json:"chat_id" gorm:"type:uuid;not null;uniqueIndex:idx_chat_read"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_chat_read"`
	LastReadAt time.Time `json:"last_read_at" gorm:"not null"`
}

// ChatSummary annotates a chat with the derived fields the chat list needs.
type ChatSummary struct {
	Chat             *Chat
	OtherParticipant *User
	LastMessage      *Message
	UnreadCount      int64
}
