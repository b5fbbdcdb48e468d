package runtime

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"flack/domain"
	"flack/domain/event"
	"flack/mocks"
	"flack/observability"
)

type dispatcherFixture struct {
	registry *mocks.MockIRegistry
	router   *mocks.MockIRouter
	messages *mocks.MockIMessageService
	replies  *mocks.MockIReplyService
	search   *mocks.MockISearchService
	channels *mocks.MockIChannelService
	auth     *mocks.MockIAuthService
	stats    *observability.HubStats
	connID   string
	now      time.Time

	dispatcher *Dispatcher
}

func newDispatcherFixture(t *testing.T) *dispatcherFixture {
	ctrl := gomock.NewController(t)
	f := &dispatcherFixture{
		registry: mocks.NewMockIRegistry(ctrl),
		router:   mocks.NewMockIRouter(ctrl),
		messages: mocks.NewMockIMessageService(ctrl),
		replies:  mocks.NewMockIReplyService(ctrl),
		search:   mocks.NewMockISearchService(ctrl),
		channels: mocks.NewMockIChannelService(ctrl),
		auth:     mocks.NewMockIAuthService(ctrl),
		stats:    observability.NewHubStats(),
		connID:   uuid.NewString(),
		now:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	deps := Collaborators{
		Messages: f.messages,
		Replies:  f.replies,
		Search:   f.search,
		Channels: f.channels,
		Auth:     f.auth,
	}
	f.dispatcher = NewDispatcher(slog.Default(), f.connID, f.registry, f.router, deps, f.stats)
	f.dispatcher.now = func() time.Time { return f.now }
	return f
}

// bootstrap drives a successful init so per-event tests start active.
func (f *dispatcherFixture) bootstrap(t *testing.T, userID string, channels ...domain.Channel) {
	t.Helper()
	f.auth.EXPECT().UserExists(userID).Return(true, nil)
	f.channels.EXPECT().GetChannels(userID).Return(channels, nil)
	f.registry.EXPECT().Join(f.connID, domain.RoomID(userID))
	for _, channel := range channels {
		f.registry.EXPECT().Join(f.connID, channel.Room())
	}
	f.dispatcher.HandleEvent("init", rawJSON(t, userID))
}

func rawJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func (f *dispatcherFixture) expectErrorTo(t *testing.T, code string) {
	t.Helper()
	f.router.EXPECT().SendTo(f.connID, gomock.Any()).Do(func(_ string, e event.Event) {
		errEvent, ok := e.(event.Error)
		require.True(t, ok, "expected an error event, got %s", e.Name())
		require.Equal(t, code, errEvent.Code)
	})
}

func TestDispatcher_Init_Joins_User_And_Channel_Rooms(t *testing.T) {
	req := require.New(t)
	f := newDispatcherFixture(t)
	userID := uuid.NewString()
	channels := []domain.Channel{
		{ID: "general", Name: "general"},
		{ID: "random", Name: "random"},
	}

	// When a known user bootstraps with two channels
	f.bootstrap(t, userID, channels...)

	// Then the identity is bound and later events are allowed
	req.Equal(userID, f.dispatcher.UserID())
}

func TestDispatcher_Init_Unknown_User_Joins_Nothing(t *testing.T) {
	req := require.New(t)
	f := newDispatcherFixture(t)
	userID := uuid.NewString()

	// Given the directory does not know the user
	f.auth.EXPECT().UserExists(userID).Return(false, nil)

	// Then the origin is told and no room is joined
	f.expectErrorTo(t, "authentication-missing")

	// When the init arrives
	f.dispatcher.HandleEvent("init", rawJSON(t, userID))

	req.Empty(f.dispatcher.UserID())
}

func TestDispatcher_Init_Invalid_Payload(t *testing.T) {
	f := newDispatcherFixture(t)

	f.expectErrorTo(t, "authentication-missing")

	f.dispatcher.HandleEvent("init", json.RawMessage(`{"not":"a string"}`))
}

func TestDispatcher_Event_Before_Init_Is_Rejected(t *testing.T) {
	f := newDispatcherFixture(t)

	// Then the origin learns it must init first
	f.expectErrorTo(t, "authentication-missing")

	// When a message arrives on a pending connection
	f.dispatcher.HandleEvent("message", rawJSON(t, map[string]string{
		"userId": "u1", "channelId": "general", "text": "hello",
	}))
}

func TestDispatcher_Unknown_Event(t *testing.T) {
	f := newDispatcherFixture(t)
	f.bootstrap(t, uuid.NewString())

	f.expectErrorTo(t, "unknown-event")

	f.dispatcher.HandleEvent("teleport", rawJSON(t, "nowhere"))
}

func TestDispatcher_Message_Acknowledges_Sender_And_Broadcasts(t *testing.T) {
	f := newDispatcherFixture(t)
	userID := uuid.NewString()
	f.bootstrap(t, userID, domain.Channel{ID: "general"})

	view := domain.MessageView{
		ID: uuid.NewString(), UserID: userID, ChannelID: "general",
		CreatedAt: f.now, Text: "hello",
	}

	// Then persist, index, acknowledge, broadcast, in that order,
	// with the sender excluded from the generic delivery
	gomock.InOrder(
		f.messages.EXPECT().CreateMessageView(userID, "general", f.now, "hello").Return(view, nil),
		f.search.EXPECT().SaveMessage(view).Return(nil),
		f.router.EXPECT().SendTo(f.connID, event.OwnMessage{View: view}),
		f.router.EXPECT().Broadcast(domain.RoomID("general"), event.MessageDelivery{View: view}, f.connID),
	)

	// When the member publishes
	f.dispatcher.HandleEvent("message", rawJSON(t, map[string]string{
		"userId": userID, "channelId": "general", "text": "hello",
	}))
}

func TestDispatcher_Message_Index_Failure_Suppresses_Delivery(t *testing.T) {
	f := newDispatcherFixture(t)
	userID := uuid.NewString()
	f.bootstrap(t, userID, domain.Channel{ID: "general"})

	view := domain.MessageView{ID: uuid.NewString(), UserID: userID, ChannelID: "general", Text: "hello"}

	// Given the message persists but the index refuses it
	f.messages.EXPECT().CreateMessageView(userID, "general", f.now, "hello").Return(view, nil)
	f.search.EXPECT().SaveMessage(view).Return(fmt.Errorf("index unavailable"))

	// Then only the origin hears about it, nobody gets a delivery
	f.expectErrorTo(t, "upstream-index-failure")

	f.dispatcher.HandleEvent("message", rawJSON(t, map[string]string{
		"userId": userID, "channelId": "general", "text": "hello",
	}))
}

func TestDispatcher_Message_Malformed_Payload(t *testing.T) {
	f := newDispatcherFixture(t)
	f.bootstrap(t, uuid.NewString())

	f.expectErrorTo(t, "malformed-event")

	// Missing text
	f.dispatcher.HandleEvent("message", rawJSON(t, map[string]string{
		"userId": "u1", "channelId": "general",
	}))
}

func TestDispatcher_Reply_Acknowledges_Sender_And_Broadcasts(t *testing.T) {
	f := newDispatcherFixture(t)
	userID := uuid.NewString()
	f.bootstrap(t, userID, domain.Channel{ID: "general"})

	view := domain.ReplyView{
		ID: uuid.NewString(), UserID: userID, ChannelID: "general",
		MessageID: "m1", CreatedAt: f.now, Text: "indeed",
	}

	gomock.InOrder(
		f.replies.EXPECT().CreateReplyView(userID, "general", "m1", f.now, "indeed").Return(view, nil),
		f.router.EXPECT().SendTo(f.connID, event.OwnReply{View: view}),
		f.router.EXPECT().Broadcast(domain.RoomID("general"), event.ReplyDelivery{View: view}, f.connID),
	)

	f.dispatcher.HandleEvent("reply", rawJSON(t, map[string]string{
		"userId": userID, "channelId": "general", "messageId": "m1", "text": "indeed",
	}))
}

func TestDispatcher_UpdateMessage_Broadcasts_Without_Exclusion(t *testing.T) {
	f := newDispatcherFixture(t)
	f.bootstrap(t, uuid.NewString(), domain.Channel{ID: "general"})

	view := domain.MessageView{ID: "m1", ChannelID: "general", Text: "edited"}

	// Then the refreshed view reaches the whole channel, sender included
	gomock.InOrder(
		f.messages.EXPECT().GetMessageView("m1").Return(view, nil),
		f.search.EXPECT().UpdateMessage(view).Return(nil),
		f.router.EXPECT().Broadcast(domain.RoomID("general"), event.MessageUpdated{View: view}),
	)

	f.dispatcher.HandleEvent("update-message", rawJSON(t, "m1"))
}

func TestDispatcher_UpdateMessage_Index_Failure_Suppresses_Broadcast(t *testing.T) {
	f := newDispatcherFixture(t)
	f.bootstrap(t, uuid.NewString(), domain.Channel{ID: "general"})

	view := domain.MessageView{ID: "m1", ChannelID: "general", Text: "edited"}
	f.messages.EXPECT().GetMessageView("m1").Return(view, nil)
	f.search.EXPECT().UpdateMessage(view).Return(fmt.Errorf("index unavailable"))

	f.expectErrorTo(t, "upstream-index-failure")

	f.dispatcher.HandleEvent("update-message", rawJSON(t, "m1"))
}

func TestDispatcher_DeleteMessage_Broadcasts_Bare_ID_Without_Exclusion(t *testing.T) {
	f := newDispatcherFixture(t)
	f.bootstrap(t, uuid.NewString(), domain.Channel{ID: "general"})

	gomock.InOrder(
		f.search.EXPECT().DeleteMessage("m1").Return(nil),
		f.router.EXPECT().Broadcast(domain.RoomID("general"), event.MessageDeleted{ID: "m1"}),
	)

	f.dispatcher.HandleEvent("delete-message", rawJSON(t, map[string]string{
		"id": "m1", "channelId": "general",
	}))
}

func TestDispatcher_Typing_Excludes_Sender(t *testing.T) {
	f := newDispatcherFixture(t)
	f.bootstrap(t, uuid.NewString(), domain.Channel{ID: "general"})

	f.router.EXPECT().Broadcast(domain.RoomID("general"),
		event.StartedTyping{User: "alice", ChannelID: "general"}, f.connID)
	f.router.EXPECT().Broadcast(domain.RoomID("general"),
		event.StoppedTyping{User: "alice", ChannelID: "general"}, f.connID)

	payload := rawJSON(t, map[string]string{"user": "alice", "channelId": "general"})
	f.dispatcher.HandleEvent("started-typing", payload)
	f.dispatcher.HandleEvent("stopped-typing", payload)
}

func TestDispatcher_FirstDirectMessage_Targets_User_Room(t *testing.T) {
	f := newDispatcherFixture(t)
	f.bootstrap(t, uuid.NewString())

	// Then the target user's private room is poked, sender excluded
	f.router.EXPECT().Broadcast(domain.RoomID("bob"),
		event.DirectChannelOpened{ChannelID: "dm-1"}, f.connID)

	f.dispatcher.HandleEvent("first-direct-message", rawJSON(t, map[string]string{
		"userId": "bob", "channelId": "dm-1",
	}))
}

func TestDispatcher_Leave_Removes_Membership(t *testing.T) {
	f := newDispatcherFixture(t)
	f.bootstrap(t, uuid.NewString(), domain.Channel{ID: "general"})

	f.registry.EXPECT().Leave(f.connID, domain.RoomID("general"))

	f.dispatcher.HandleEvent("leave", rawJSON(t, "general"))
}

func TestDispatcher_Close_Disconnects_Once(t *testing.T) {
	f := newDispatcherFixture(t)
	f.bootstrap(t, uuid.NewString())

	// Then the registry unwinds exactly once
	f.registry.EXPECT().Disconnect(f.connID).Times(1)

	// When Close races with itself
	f.dispatcher.Close()
	f.dispatcher.Close()
}

func TestDispatcher_Events_After_Close_Are_Ignored(t *testing.T) {
	f := newDispatcherFixture(t)
	f.bootstrap(t, uuid.NewString())

	f.registry.EXPECT().Disconnect(f.connID)
	f.dispatcher.Close()

	// When an event arrives after close, no collaborator is touched
	f.dispatcher.HandleEvent("message", rawJSON(t, map[string]string{
		"userId": "u1", "channelId": "general", "text": "too late",
	}))
}

func TestDispatcher_Failure_Keeps_Connection_Active(t *testing.T) {
	f := newDispatcherFixture(t)
	userID := uuid.NewString()
	f.bootstrap(t, userID, domain.Channel{ID: "general"})

	// Given a first message failing at persistence
	f.messages.EXPECT().CreateMessageView(userID, "general", f.now, "first").
		Return(domain.MessageView{}, fmt.Errorf("disk full"))
	f.expectErrorTo(t, "upstream-persistence-failure")

	f.dispatcher.HandleEvent("message", rawJSON(t, map[string]string{
		"userId": userID, "channelId": "general", "text": "first",
	}))

	// When a second message follows on the same connection
	view := domain.MessageView{ID: uuid.NewString(), UserID: userID, ChannelID: "general", Text: "second"}
	f.messages.EXPECT().CreateMessageView(userID, "general", f.now, "second").Return(view, nil)
	f.search.EXPECT().SaveMessage(view).Return(nil)
	f.router.EXPECT().SendTo(f.connID, event.OwnMessage{View: view})
	f.router.EXPECT().Broadcast(domain.RoomID("general"), event.MessageDelivery{View: view}, f.connID)

	// Then it goes through untouched by the earlier failure
	f.dispatcher.HandleEvent("message", rawJSON(t, map[string]string{
		"userId": userID, "channelId": "general", "text": "second",
	}))
}
