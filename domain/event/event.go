// Package event declares the named realtime events exchanged with clients.
// Names and payload shapes are the wire contract; the transport wraps the
// payload in a {"event": name, "data": payload} envelope.
package event

import "flack/domain"

type Event interface {
	Name() string
	// Payload is the value marshalled into the envelope's data field.
	Payload() any
}

// OwnMessage acknowledges a persisted message to its sender only.
type OwnMessage struct {
	View domain.MessageView
}

func (e OwnMessage) Name() string { return "my-message" }
func (e OwnMessage) Payload() any { return e.View }

// MessageDelivery is the generic delivery of a new message to the other
// members of its channel.
type MessageDelivery struct {
	View domain.MessageView
}

func (e MessageDelivery) Name() string { return "message" }
func (e MessageDelivery) Payload() any { return e.View }

type OwnReply struct {
	View domain.ReplyView
}

func (e OwnReply) Name() string { return "my-reply" }
func (e OwnReply) Payload() any { return e.View }

type ReplyDelivery struct {
	View domain.ReplyView
}

func (e ReplyDelivery) Name() string { return "reply" }
func (e ReplyDelivery) Payload() any { return e.View }

// MessageUpdated carries the refreshed view after an edit. Delivered to the
// whole channel, sender included, so every client converges on the same
// state.
type MessageUpdated struct {
	View domain.MessageView
}

func (e MessageUpdated) Name() string { return "update-message" }
func (e MessageUpdated) Payload() any { return e.View }

// MessageDeleted carries only the deleted message ID.
type MessageDeleted struct {
	ID string
}

func (e MessageDeleted) Name() string { return "delete-message" }
func (e MessageDeleted) Payload() any { return e.ID }

// DirectChannelOpened notifies a user that a first direct message created a
// conversation with them. The payload is the new channel ID.
type DirectChannelOpened struct {
	ChannelID string
}

func (e DirectChannelOpened) Name() string { return "first-direct-message" }
func (e DirectChannelOpened) Payload() any { return e.ChannelID }

type TypingPayload struct {
	User      string `json:"user"`
	ChannelID string `json:"channelId"`
}

type StartedTyping struct {
	User      string
	ChannelID string
}

func (e StartedTyping) Name() string { return "started-typing" }
func (e StartedTyping) Payload() any {
	return TypingPayload{User: e.User, ChannelID: e.ChannelID}
}

type StoppedTyping struct {
	User      string
	ChannelID string
}

func (e StoppedTyping) Name() string { return "stopped-typing" }
func (e StoppedTyping) Payload() any {
	return TypingPayload{User: e.User, ChannelID: e.ChannelID}
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error reports a failed inbound event to its origin connection only.
type Error struct {
	Code    string
	Message string
}

func (e Error) Name() string { return "error" }
func (e Error) Payload() any {
	return ErrorPayload{Code: e.Code, Message: e.Message}
}
