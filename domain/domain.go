package domain

import "time"

// RoomID identifies a broadcast group. It is either a user ID (private
// deliveries to that user's connections) or a channel ID (shared group
// deliveries). The two identifier spaces are disjoint: user IDs and channel
// IDs are both UUIDs minted by different repositories.
type RoomID string

// Channel is the directory's view of a conversation. The realtime core only
// ever reads ID to derive a RoomID.
type Channel struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Direct    bool      `json:"direct"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c Channel) Room() RoomID { return RoomID(c.ID) }

// MessageView is the read-shaped projection of a persisted message. The
// realtime core forwards it as an opaque payload, reading only ID and
// ChannelID for routing.
type MessageView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ChannelID string    `json:"channelId"`
	CreatedAt time.Time `json:"createdAt"`
	Text      string    `json:"text"`
}

// ReplyView mirrors MessageView for threaded replies.
type ReplyView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ChannelID string    `json:"channelId"`
	MessageID string    `json:"messageId"`
	CreatedAt time.Time `json:"createdAt"`
	Text      string    `json:"text"`
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Roles        []string
	CreatedAt    time.Time
}
