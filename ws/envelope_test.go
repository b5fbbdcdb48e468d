package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"flack/domain"
	"flack/domain/event"
)

func TestEncodeEvent_Message_Delivery(t *testing.T) {
	req := require.New(t)
	view := domain.MessageView{
		ID:        "m1",
		UserID:    "u1",
		ChannelID: "general",
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Text:      "hello",
	}

	// When encoding a delivery
	frame, err := EncodeEvent(event.MessageDelivery{View: view})
	req.NoError(err)

	// Then the envelope names the event and carries the view as data
	var env Envelope
	req.NoError(json.Unmarshal(frame, &env))
	req.Equal("message", env.Event)

	var decoded domain.MessageView
	req.NoError(json.Unmarshal(env.Data, &decoded))
	req.Equal(view, decoded)
}

func TestEncodeEvent_Bare_String_Payloads(t *testing.T) {
	req := require.New(t)

	// delete-message and first-direct-message carry bare strings, not objects
	frame, err := EncodeEvent(event.MessageDeleted{ID: "m1"})
	req.NoError(err)

	var env Envelope
	req.NoError(json.Unmarshal(frame, &env))
	req.Equal("delete-message", env.Event)
	req.JSONEq(`"m1"`, string(env.Data))

	frame, err = EncodeEvent(event.DirectChannelOpened{ChannelID: "dm-1"})
	req.NoError(err)
	req.NoError(json.Unmarshal(frame, &env))
	req.Equal("first-direct-message", env.Event)
	req.JSONEq(`"dm-1"`, string(env.Data))
}

func TestEncodeEvent_Error_Payload(t *testing.T) {
	req := require.New(t)

	frame, err := EncodeEvent(event.Error{Code: "malformed-event", Message: "bad payload"})
	req.NoError(err)

	var env Envelope
	req.NoError(json.Unmarshal(frame, &env))
	req.Equal("error", env.Event)
	req.JSONEq(`{"code":"malformed-event","message":"bad payload"}`, string(env.Data))
}
