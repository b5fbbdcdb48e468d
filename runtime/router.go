package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"flack/contract"
	"flack/domain"
	"flack/domain/event"
	"flack/observability"
)

// Router fans events out to room membership snapshots. Delivery targets the
// membership observed at call time: a connection joining mid-broadcast may
// or may not receive that broadcast, one that already left never does.
//
// Router is not a message broker: delivery into a sink is bounded by
// sinkTimeout and a full connection queue drops the frame for that
// connection only.
type Router struct {
	log         *slog.Logger
	registry    contract.IRegistry
	stats       *observability.HubStats
	sinkTimeout time.Duration
	// permanent sinks observe every broadcast once per event, regardless
	// of room membership (timeline projection, audits).
	permanent []contract.EventSink
}

func NewRouter(log *slog.Logger, registry contract.IRegistry,
	stats *observability.HubStats, sinkTimeout time.Duration) *Router {
	return &Router{
		log:         log,
		registry:    registry,
		stats:       stats,
		sinkTimeout: sinkTimeout,
	}
}

// Add registers permanent sinks. Not safe once traffic is flowing; wire
// them at startup.
func (r *Router) Add(sinks ...contract.EventSink) {
	r.permanent = append(r.permanent, sinks...)
}

// Broadcast delivers e to every connection currently joined to room except
// the excluded ones. The caller's goroutine performs the fan-out, so two
// broadcasts issued sequentially by one connection are enqueued to every
// common member in issue order.
func (r *Router) Broadcast(room domain.RoomID, e event.Event, exclude ...string) {
	r.stats.IncrBroadcasts()

	for _, sink := range r.registry.SinksForRoom(room, exclude...) {
		r.deliver(sink, e)
	}
	for _, sink := range r.permanent {
		r.deliver(sink, e)
	}
}

// SendTo delivers e to a single connection. Sending to a connection that
// already disconnected is not an error; the event is simply undeliverable.
func (r *Router) SendTo(connID string, e event.Event) {
	sink, ok := r.registry.SinkFor(connID)
	if !ok {
		r.log.Debug(fmt.Sprintf("Connection %s gone, dropping %s", connID, e.Name()))
		return
	}
	r.deliver(sink, e)
}

func (r *Router) deliver(sink contract.EventSink, e event.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), r.sinkTimeout)
	defer cancel()

	if err := sink.Consume(ctx, e); err != nil {
		r.stats.IncrDropped()
		r.log.Warn("Sink refused event", "event", e.Name(), "error", err)
		return
	}
	r.stats.IncrDeliveries()
}
