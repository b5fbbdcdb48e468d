//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"flack/domain"
	"flack/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker
// initialization or lifecycle events, avoiding the need for manual naming
// in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink is one consumer of outbound events: a live connection's send
// queue, or a permanent in-process sink (timeline projection, stats).
type EventSink interface {
	Consume(ctx context.Context, e event.Event) error
}

// IRegistry is the connection registry: the single source of truth for
// which connections are live and which rooms each one has joined.
type IRegistry interface {
	Connect(connID string, sink EventSink)
	Join(connID string, room domain.RoomID)
	Leave(connID string, room domain.RoomID)
	MembersOf(room domain.RoomID) []string
	SinksForRoom(room domain.RoomID, exclude ...string) []EventSink
	SinkFor(connID string) (EventSink, bool)
	Disconnect(connID string)
}

// IRouter fans an event out to a room's current membership, or to a single
// connection.
type IRouter interface {
	Broadcast(room domain.RoomID, e event.Event, exclude ...string)
	SendTo(connID string, e event.Event)
}
