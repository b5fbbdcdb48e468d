package runtime

import (
	"sync"

	"github.com/samber/lo"

	"flack/contract"
	"flack/domain"
)

type Set map[string]struct{}

// Registry tracks live connections and room membership. A connection's
// joined-room set and a room's member set are two views over the same
// table, mutated under one lock so reads never observe them diverging.
type Registry struct {
	mu          sync.RWMutex
	sinks       map[string]contract.EventSink // connection -> outbound sink
	roomMembers map[domain.RoomID]Set         // room -> connections
	connRooms   map[string]map[domain.RoomID]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		sinks:       make(map[string]contract.EventSink),
		roomMembers: make(map[domain.RoomID]Set),
		connRooms:   make(map[string]map[domain.RoomID]struct{}),
	}
}

// Connect registers a connection's sink. Rooms are joined separately.
func (r *Registry) Connect(connID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sinks[connID] = sink
}

// Join adds the connection to a room. Joining twice is a no-op, which lets
// a redundant init re-run the session bootstrap without duplicate state.
func (r *Registry) Join(connID string, room domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sinks[connID]; !ok {
		// Disconnect already ran; a late join must not resurrect the entry.
		return
	}
	if _, ok := r.roomMembers[room]; !ok {
		r.roomMembers[room] = make(Set)
	}
	r.roomMembers[room][connID] = struct{}{}

	if _, ok := r.connRooms[connID]; !ok {
		r.connRooms[connID] = make(map[domain.RoomID]struct{})
	}
	r.connRooms[connID][room] = struct{}{}
}

// Leave removes the connection from a room. Leaving a room not joined is a
// no-op, not an error.
func (r *Registry) Leave(connID string, room domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeMembership(connID, room)
}

// MembersOf returns the connections currently joined to a room. Empty
// slice, not an error, when nobody is there.
func (r *Registry) MembersOf(room domain.RoomID) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]string, 0, len(r.roomMembers[room]))
	for connID := range r.roomMembers[room] {
		members = append(members, connID)
	}
	return members
}

// SinksForRoom resolves a room's membership snapshot into live sinks,
// skipping excluded connections. It performs a two-step lookup: member IDs
// via roomMembers, then sinks via the session map, so a connection in many
// rooms is still managed in a single place.
func (r *Registry) SinksForRoom(room domain.RoomID, exclude ...string) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.roomMembers[room]
	if !ok {
		return nil
	}
	var activeSinks []contract.EventSink
	for connID := range members {
		if lo.Contains(exclude, connID) {
			continue
		}
		if sink, exists := r.sinks[connID]; exists {
			activeSinks = append(activeSinks, sink)
		}
	}
	return activeSinks
}

func (r *Registry) SinkFor(connID string) (contract.EventSink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sink, ok := r.sinks[connID]
	return sink, ok
}

// Disconnect removes the connection from every room it belonged to and
// drops its sink. Called exactly once per connection lifecycle, by the
// transport's disconnect path. Broadcasts resolved after this point never
// target the connection.
func (r *Registry) Disconnect(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for room := range r.connRooms[connID] {
		r.removeMembership(connID, room)
	}
	delete(r.connRooms, connID)
	delete(r.sinks, connID)
}

// removeMembership assumes the write lock is held.
func (r *Registry) removeMembership(connID string, room domain.RoomID) {
	if members, ok := r.roomMembers[room]; ok {
		delete(members, connID)
		// No empty sets left behind to prevent memory leaks over time.
		if len(members) == 0 {
			delete(r.roomMembers, room)
		}
	}
	if rooms, ok := r.connRooms[connID]; ok {
		delete(rooms, room)
	}
}
