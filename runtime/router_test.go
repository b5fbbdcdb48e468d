package runtime

import (
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"flack/domain"
	"flack/domain/event"
	"flack/errors"
	"flack/mocks"
	"flack/observability"
)

const sinkTimeout = 100 * time.Millisecond

func TestRouter_Broadcast_Delivers_To_Every_Member(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := NewRegistry()
	stats := observability.NewHubStats()
	router := NewRouter(slog.Default(), registry, stats, sinkTimeout)

	room := domain.RoomID("general")
	sink1 := mocks.NewMockEventSink(ctrl)
	sink2 := mocks.NewMockEventSink(ctrl)
	connID1 := uuid.NewString()
	connID2 := uuid.NewString()

	registry.Connect(connID1, sink1)
	registry.Connect(connID2, sink2)
	registry.Join(connID1, room)
	registry.Join(connID2, room)

	e := event.StartedTyping{User: "alice", ChannelID: "general"}
	sink1.EXPECT().Consume(gomock.Any(), e).Return(nil).Times(1)
	sink2.EXPECT().Consume(gomock.Any(), e).Return(nil).Times(1)

	// When broadcasting without exclusion
	router.Broadcast(room, e)

	// Then both sinks consumed and the counters moved
	snapshot := stats.Snapshot()
	req.EqualValues(1, snapshot.Broadcasts)
	req.EqualValues(2, snapshot.Deliveries)
}

func TestRouter_Broadcast_Excludes_Sender(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := NewRegistry()
	router := NewRouter(slog.Default(), registry, observability.NewHubStats(), sinkTimeout)

	room := domain.RoomID("general")
	senderSink := mocks.NewMockEventSink(ctrl)
	memberSink := mocks.NewMockEventSink(ctrl)
	senderID := uuid.NewString()
	memberID := uuid.NewString()

	registry.Connect(senderID, senderSink)
	registry.Connect(memberID, memberSink)
	registry.Join(senderID, room)
	registry.Join(memberID, room)

	e := event.StartedTyping{User: "alice", ChannelID: "general"}

	// Then only the other member consumes
	memberSink.EXPECT().Consume(gomock.Any(), e).Return(nil).Times(1)

	// When broadcasting with the sender excluded
	router.Broadcast(room, e, senderID)
}

func TestRouter_Broadcast_Reaches_Permanent_Sinks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := NewRegistry()
	router := NewRouter(slog.Default(), registry, observability.NewHubStats(), sinkTimeout)

	permanent := mocks.NewMockEventSink(ctrl)
	router.Add(permanent)

	e := event.StartedTyping{User: "alice", ChannelID: "general"}

	// Then the permanent sink observes the broadcast even with an empty room
	permanent.EXPECT().Consume(gomock.Any(), e).Return(nil).Times(1)

	router.Broadcast(domain.RoomID("empty"), e)
}

func TestRouter_SendTo_Unknown_Connection_Is_NoOp(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	stats := observability.NewHubStats()
	router := NewRouter(slog.Default(), registry, stats, sinkTimeout)

	// When sending to a connection that already disconnected
	router.SendTo(uuid.NewString(), event.StartedTyping{User: "ghost", ChannelID: "general"})

	// Then nothing is counted as delivered or dropped
	snapshot := stats.Snapshot()
	req.EqualValues(0, snapshot.Deliveries)
	req.EqualValues(0, snapshot.DroppedFrames)
}

func TestRouter_Failing_Sink_Counts_As_Dropped(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := NewRegistry()
	stats := observability.NewHubStats()
	router := NewRouter(slog.Default(), registry, stats, sinkTimeout)

	room := domain.RoomID("general")
	full := mocks.NewMockEventSink(ctrl)
	healthy := mocks.NewMockEventSink(ctrl)
	fullID := uuid.NewString()
	healthyID := uuid.NewString()

	registry.Connect(fullID, full)
	registry.Connect(healthyID, healthy)
	registry.Join(fullID, room)
	registry.Join(healthyID, room)

	e := event.StoppedTyping{User: "alice", ChannelID: "general"}

	// Given one sink refusing the event (backpressure)
	full.EXPECT().Consume(gomock.Any(), e).Return(errors.ErrBackpressure).Times(1)
	healthy.EXPECT().Consume(gomock.Any(), e).Return(nil).Times(1)

	// When broadcasting
	router.Broadcast(room, e)

	// Then the failure stays local to that sink
	snapshot := stats.Snapshot()
	req.EqualValues(1, snapshot.Deliveries)
	req.EqualValues(1, snapshot.DroppedFrames)
}
