package model

import "time"

// Conversation is a chat room between the current user and one other
// participant. Rooms are created server-side on first contact and are
// never deleted by the client.
type Conversation struct {
	// ID is the room identifier used in message endpoints.
	ID string `json:"id"`

	// OtherMember is the participant on the far side of the room.
	OtherMember User `json:"otherMember"`

	// LastMessage is the most recent message, nil for a fresh room.
	LastMessage *Message `json:"lastMessage,omitempty"`
}

// Message is a single chat message. Messages are immutable once created;
// the sequence returned by the server is the authoritative display order
// (oldest first).
type Message struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"roomId"`
	SenderID  string    `json:"senderId"`
	Content   string    `json:"content"`
	Images    []string  `json:"images,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
