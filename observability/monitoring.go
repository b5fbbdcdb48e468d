package observability

import (
	"sync/atomic"
	"time"
)

// Stats is the JSON snapshot served on /api/stats and logged by the
// heartbeat worker.
type Stats struct {
	Connections   int64   `json:"connections"`
	EventsIn      uint64  `json:"events_in"`
	Broadcasts    uint64  `json:"broadcasts"`
	Deliveries    uint64  `json:"deliveries"`
	DroppedFrames uint64  `json:"dropped_frames"`
	EventErrors   uint64  `json:"event_errors"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// HubStats aggregates realtime counters. All mutation paths are atomic so
// every connection goroutine can report without contention.
type HubStats struct {
	startedAt time.Time

	connections int64
	eventsIn    uint64
	broadcasts  uint64
	deliveries  uint64
	dropped     uint64
	errors      uint64
}

func NewHubStats() *HubStats {
	return &HubStats{startedAt: time.Now()}
}

func (s *HubStats) ConnOpened()     { atomic.AddInt64(&s.connections, 1) }
func (s *HubStats) ConnClosed()     { atomic.AddInt64(&s.connections, -1) }
func (s *HubStats) IncrEventsIn()   { atomic.AddUint64(&s.eventsIn, 1) }
func (s *HubStats) IncrBroadcasts() { atomic.AddUint64(&s.broadcasts, 1) }
func (s *HubStats) IncrDeliveries() { atomic.AddUint64(&s.deliveries, 1) }
func (s *HubStats) IncrDropped()    { atomic.AddUint64(&s.dropped, 1) }
func (s *HubStats) IncrErrors()     { atomic.AddUint64(&s.errors, 1) }

func (s *HubStats) Snapshot() Stats {
	return Stats{
		Connections:   atomic.LoadInt64(&s.connections),
		EventsIn:      atomic.LoadUint64(&s.eventsIn),
		Broadcasts:    atomic.LoadUint64(&s.broadcasts),
		Deliveries:    atomic.LoadUint64(&s.deliveries),
		DroppedFrames: atomic.LoadUint64(&s.dropped),
		EventErrors:   atomic.LoadUint64(&s.errors),
		UptimeSeconds: time.Since(s.startedAt).Seconds(),
	}
}
