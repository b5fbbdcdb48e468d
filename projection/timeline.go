// Package projection builds local timelines from observed events.
// Handles ordering and per-channel retention.
// Does not emit events or interact with transports directly.
package projection

import (
	"context"
	"sync"

	"flack/domain"
	"flack/domain/event"
)

// Timeline keeps the most recent messages per channel, fed by the router as
// a permanent sink. Edits and deletions observed on the wire are applied in
// place, so Recent always reflects what connected clients last saw.
type Timeline struct {
	mu       sync.RWMutex
	limit    int
	channels map[string][]domain.MessageView
}

func NewTimeline(limit int) *Timeline {
	return &Timeline{
		limit:    limit,
		channels: make(map[string][]domain.MessageView),
	}
}

// Consume implements contract.EventSink.
func (t *Timeline) Consume(_ context.Context, e event.Event) error {
	switch evt := e.(type) {
	case event.MessageDelivery:
		t.append(evt.View)
	case event.MessageUpdated:
		t.replace(evt.View)
	case event.MessageDeleted:
		t.remove(evt.ID)
	}
	return nil
}

// Recent returns the retained messages for a channel, oldest first.
func (t *Timeline) Recent(channelID string) []domain.MessageView {
	t.mu.RLock()
	defer t.mu.RUnlock()

	views := t.channels[channelID]
	out := make([]domain.MessageView, len(views))
	copy(out, views)
	return out
}

func (t *Timeline) append(view domain.MessageView) {
	t.mu.Lock()
	defer t.mu.Unlock()

	views := append(t.channels[view.ChannelID], view)
	if len(views) > t.limit {
		views = views[len(views)-t.limit:]
	}
	t.channels[view.ChannelID] = views
}

func (t *Timeline) replace(view domain.MessageView) {
	t.mu.Lock()
	defer t.mu.Unlock()

	views := t.channels[view.ChannelID]
	for i := range views {
		if views[i].ID == view.ID {
			views[i] = view
			return
		}
	}
}

func (t *Timeline) remove(messageID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for channelID, views := range t.channels {
		for i := range views {
			if views[i].ID == messageID {
				t.channels[channelID] = append(views[:i], views[i+1:]...)
				return
			}
		}
	}
}
