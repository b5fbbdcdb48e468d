package projection

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"flack/domain"
	"flack/domain/event"
)

func view(id, channelID, text string, at time.Time) domain.MessageView {
	return domain.MessageView{
		ID:        id,
		UserID:    "u1",
		ChannelID: channelID,
		CreatedAt: at,
		Text:      text,
	}
}

func TestTimeline_Consume_MessageDelivery(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline(10)
	ctx := context.Background()
	at := time.Now().UTC()

	// When two deliveries arrive on the same channel
	req.NoError(timeline.Consume(ctx, event.MessageDelivery{View: view("m1", "general", "Hello Bob", at)}))
	req.NoError(timeline.Consume(ctx, event.MessageDelivery{View: view("m2", "general", "Hi Alice", at.Add(time.Second))}))

	// Then Recent returns them oldest first
	recent := timeline.Recent("general")
	req.Len(recent, 2)
	req.Equal("m1", recent[0].ID)
	req.Equal("m2", recent[1].ID)

	// And another channel stays empty
	req.Empty(timeline.Recent("random"))
}

func TestTimeline_Retention_Limit(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline(2)
	ctx := context.Background()
	at := time.Now().UTC()

	req.NoError(timeline.Consume(ctx, event.MessageDelivery{View: view("m1", "general", "one", at)}))
	req.NoError(timeline.Consume(ctx, event.MessageDelivery{View: view("m2", "general", "two", at.Add(time.Second))}))
	req.NoError(timeline.Consume(ctx, event.MessageDelivery{View: view("m3", "general", "three", at.Add(2*time.Second))}))

	// Then only the newest two survive
	recent := timeline.Recent("general")
	req.Len(recent, 2)
	req.Equal("m2", recent[0].ID)
	req.Equal("m3", recent[1].ID)
}

func TestTimeline_Update_Replaces_In_Place(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline(10)
	ctx := context.Background()
	at := time.Now().UTC()

	req.NoError(timeline.Consume(ctx, event.MessageDelivery{View: view("m1", "general", "tpyo", at)}))

	// When the edit is observed
	req.NoError(timeline.Consume(ctx, event.MessageUpdated{View: view("m1", "general", "typo", at)}))

	recent := timeline.Recent("general")
	req.Len(recent, 1)
	req.Equal("typo", recent[0].Text)
}

func TestTimeline_Delete_Removes_Message(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline(10)
	ctx := context.Background()
	at := time.Now().UTC()

	req.NoError(timeline.Consume(ctx, event.MessageDelivery{View: view("m1", "general", "one", at)}))
	req.NoError(timeline.Consume(ctx, event.MessageDelivery{View: view("m2", "general", "two", at.Add(time.Second))}))

	// When the deletion is observed
	req.NoError(timeline.Consume(ctx, event.MessageDeleted{ID: "m1"}))

	recent := timeline.Recent("general")
	req.Len(recent, 1)
	req.Equal("m2", recent[0].ID)
}

func TestTimeline_Ignores_Unrelated_Events(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline(10)

	// Typing events pass through the permanent sink without effect
	req.NoError(timeline.Consume(context.Background(), event.StartedTyping{User: "alice", ChannelID: "general"}))
	req.Empty(timeline.Recent("general"))
}
