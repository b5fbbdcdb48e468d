package runtime

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"flack/contract"
	"flack/domain"
	"flack/domain/event"
	"flack/errors"
	"flack/observability"
	"flack/services"
)

type connState int

const (
	statePending connState = iota // connected, no identity bound yet
	stateActive                   // init accepted, all events allowed
	stateClosed                   // disconnected, membership unwound
)

// Collaborators bundles the external services the dispatcher drives.
type Collaborators struct {
	Messages services.IMessageService
	Replies  services.IReplyService
	Search   services.ISearchService
	Channels services.IChannelService
	Auth     services.IAuthService
}

// Dispatcher is the per-connection state machine. The transport's read loop
// feeds it inbound events one at a time, so a connection's side effects
// always run in arrival order; ordering across connections is not promised.
//
// Every handler follows the same discipline: validate, call collaborators,
// and only then emit outbound events. A failing collaborator aborts that
// event with an error notification to the origin; the connection stays
// active.
type Dispatcher struct {
	log      *slog.Logger
	connID   string
	registry contract.IRegistry
	router   contract.IRouter
	deps     Collaborators
	stats    *observability.HubStats
	validate *validator.Validate
	now      func() time.Time

	handlers map[string]func(data json.RawMessage) error
	state    connState
	userID   string
}

func NewDispatcher(log *slog.Logger, connID string, registry contract.IRegistry,
	router contract.IRouter, deps Collaborators, stats *observability.HubStats) *Dispatcher {
	d := &Dispatcher{
		log:      log,
		connID:   connID,
		registry: registry,
		router:   router,
		deps:     deps,
		stats:    stats,
		validate: validator.New(),
		now:      time.Now,
		state:    statePending,
	}
	d.handlers = map[string]func(data json.RawMessage) error{
		"init":                 d.handleInit,
		"leave":                d.handleLeave,
		"update-message":       d.handleUpdateMessage,
		"delete-message":       d.handleDeleteMessage,
		"first-direct-message": d.handleFirstDirectMessage,
		"started-typing":       d.handleStartedTyping,
		"stopped-typing":       d.handleStoppedTyping,
		"message":              d.handleMessage,
		"reply":                d.handleReply,
	}
	return d
}

// HandleEvent routes one inbound event through the dispatch table. Never
// called concurrently for one connection; the read loop owns it.
func (d *Dispatcher) HandleEvent(name string, data json.RawMessage) {
	d.stats.IncrEventsIn()

	if d.state == stateClosed {
		return
	}

	handler, ok := d.handlers[name]
	if !ok {
		d.reportError(name, fmt.Errorf("%w: %q", errors.ErrUnknownEvent, name))
		return
	}
	if d.state != stateActive && name != "init" {
		d.reportError(name, fmt.Errorf("%w: init required first", errors.ErrAuthenticationMissing))
		return
	}

	if err := handler(data); err != nil {
		d.reportError(name, err)
	}
}

// Close unwinds the connection's membership. Called exactly once by the
// transport when the connection drops; in-flight collaborator calls may
// still complete, their broadcasts just no longer target this connection.
func (d *Dispatcher) Close() {
	if d.state == stateClosed {
		return
	}
	d.state = stateClosed
	d.registry.Disconnect(d.connID)
}

func (d *Dispatcher) UserID() string { return d.userID }

// handleInit is the session bootstrap: bind identity, join the private user
// room and every channel from the directory. Nothing is joined until the
// identity and the channel list are both resolved, so a rejected init
// leaves the connection exactly as it was. A redundant init re-runs the
// bootstrap; Join idempotence makes that a no-op.
func (d *Dispatcher) handleInit(data json.RawMessage) error {
	var userID string
	if err := json.Unmarshal(data, &userID); err != nil || userID == "" {
		return fmt.Errorf("%w: init expects a user id", errors.ErrAuthenticationMissing)
	}

	known, err := d.deps.Auth.UserExists(userID)
	if err != nil {
		return fmt.Errorf("%w: verify user %s: %v", errors.ErrUpstreamPersistence, userID, err)
	}
	if !known {
		return fmt.Errorf("%w: unknown user %s", errors.ErrAuthenticationMissing, userID)
	}

	channels, err := d.deps.Channels.GetChannels(userID)
	if err != nil {
		return fmt.Errorf("%w: channels for %s: %v", errors.ErrUpstreamPersistence, userID, err)
	}

	d.registry.Join(d.connID, domain.RoomID(userID))
	for _, channel := range channels {
		d.registry.Join(d.connID, channel.Room())
	}

	d.userID = userID
	d.state = stateActive
	d.log.Debug("Session bootstrapped", "conn_id", d.connID, "user_id", userID, "channels", len(channels))
	return nil
}

func (d *Dispatcher) handleLeave(data json.RawMessage) error {
	channelID, err := d.decodeString(data, "leave expects a channel id")
	if err != nil {
		return err
	}
	d.registry.Leave(d.connID, domain.RoomID(channelID))
	return nil
}

// handleUpdateMessage re-reads the edited view, refreshes the index, then
// tells the whole channel. The index call completes before the broadcast is
// enqueued; members never observe the event ahead of the index.
func (d *Dispatcher) handleUpdateMessage(data json.RawMessage) error {
	messageID, err := d.decodeString(data, "update-message expects a message id")
	if err != nil {
		return err
	}

	view, err := d.deps.Messages.GetMessageView(messageID)
	if err != nil {
		return fmt.Errorf("%w: message %s: %v", errors.ErrUpstreamPersistence, messageID, err)
	}
	if err := d.deps.Search.UpdateMessage(view); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrUpstreamIndex, err)
	}

	// Everyone, sender included, so all clients converge on the new text.
	d.router.Broadcast(domain.RoomID(view.ChannelID), event.MessageUpdated{View: view})
	return nil
}

type deleteMessagePayload struct {
	ID        string `json:"id" validate:"required"`
	ChannelID string `json:"channelId" validate:"required"`
}

func (d *Dispatcher) handleDeleteMessage(data json.RawMessage) error {
	var payload deleteMessagePayload
	if err := d.decode(data, &payload); err != nil {
		return err
	}

	if err := d.deps.Search.DeleteMessage(payload.ID); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrUpstreamIndex, err)
	}

	d.router.Broadcast(domain.RoomID(payload.ChannelID), event.MessageDeleted{ID: payload.ID})
	return nil
}

type firstDirectMessagePayload struct {
	UserID    string `json:"userId" validate:"required"`
	ChannelID string `json:"channelId" validate:"required"`
}

// handleFirstDirectMessage pokes the target user's private room so their
// live connections join the fresh direct channel. No persistence involved.
func (d *Dispatcher) handleFirstDirectMessage(data json.RawMessage) error {
	var payload firstDirectMessagePayload
	if err := d.decode(data, &payload); err != nil {
		return err
	}

	d.router.Broadcast(domain.RoomID(payload.UserID),
		event.DirectChannelOpened{ChannelID: payload.ChannelID}, d.connID)
	return nil
}

type typingPayload struct {
	User      string `json:"user" validate:"required"`
	ChannelID string `json:"channelId" validate:"required"`
}

func (d *Dispatcher) handleStartedTyping(data json.RawMessage) error {
	var payload typingPayload
	if err := d.decode(data, &payload); err != nil {
		return err
	}
	d.router.Broadcast(domain.RoomID(payload.ChannelID),
		event.StartedTyping{User: payload.User, ChannelID: payload.ChannelID}, d.connID)
	return nil
}

func (d *Dispatcher) handleStoppedTyping(data json.RawMessage) error {
	var payload typingPayload
	if err := d.decode(data, &payload); err != nil {
		return err
	}
	d.router.Broadcast(domain.RoomID(payload.ChannelID),
		event.StoppedTyping{User: payload.User, ChannelID: payload.ChannelID}, d.connID)
	return nil
}

type messagePayload struct {
	UserID    string `json:"userId" validate:"required"`
	ChannelID string `json:"channelId" validate:"required"`
	Text      string `json:"text" validate:"required"`
}

// handleMessage persists, indexes, then delivers: the sender gets its own
// acknowledgment, the rest of the channel the generic delivery. A failed
// index call reports the partial state (persisted but unsearchable) and
// suppresses both outbound events.
func (d *Dispatcher) handleMessage(data json.RawMessage) error {
	var payload messagePayload
	if err := d.decode(data, &payload); err != nil {
		return err
	}

	view, err := d.deps.Messages.CreateMessageView(payload.UserID, payload.ChannelID, d.now(), payload.Text)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrUpstreamPersistence, err)
	}
	if err := d.deps.Search.SaveMessage(view); err != nil {
		return fmt.Errorf("%w: message %s persisted but not indexed: %v",
			errors.ErrUpstreamIndex, view.ID, err)
	}

	d.router.SendTo(d.connID, event.OwnMessage{View: view})
	d.router.Broadcast(domain.RoomID(payload.ChannelID), event.MessageDelivery{View: view}, d.connID)
	return nil
}

type replyPayload struct {
	UserID    string `json:"userId" validate:"required"`
	ChannelID string `json:"channelId" validate:"required"`
	MessageID string `json:"messageId" validate:"required"`
	Text      string `json:"text" validate:"required"`
}

// handleReply mirrors handleMessage without the index step: replies are
// persisted but not searchable.
func (d *Dispatcher) handleReply(data json.RawMessage) error {
	var payload replyPayload
	if err := d.decode(data, &payload); err != nil {
		return err
	}

	view, err := d.deps.Replies.CreateReplyView(payload.UserID, payload.ChannelID,
		payload.MessageID, d.now(), payload.Text)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrUpstreamPersistence, err)
	}

	d.router.SendTo(d.connID, event.OwnReply{View: view})
	d.router.Broadcast(domain.RoomID(payload.ChannelID), event.ReplyDelivery{View: view}, d.connID)
	return nil
}

func (d *Dispatcher) decode(data json.RawMessage, payload any) error {
	if err := json.Unmarshal(data, payload); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrMalformedEvent, err)
	}
	if err := d.validate.Struct(payload); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrMalformedEvent, err)
	}
	return nil
}

func (d *Dispatcher) decodeString(data json.RawMessage, hint string) (string, error) {
	var value string
	if err := json.Unmarshal(data, &value); err != nil || value == "" {
		return "", fmt.Errorf("%w: %s", errors.ErrMalformedEvent, hint)
	}
	return value, nil
}

// reportError notifies the origin connection only; other members never see
// another connection's failures.
func (d *Dispatcher) reportError(eventName string, err error) {
	d.stats.IncrErrors()
	d.log.Warn("Event failed", "conn_id", d.connID, "event", eventName, "error", err)
	d.router.SendTo(d.connID, event.Error{
		Code:    errorCode(err),
		Message: err.Error(),
	})
}

func errorCode(err error) string {
	switch {
	case stderrors.Is(err, errors.ErrAuthenticationMissing):
		return "authentication-missing"
	case stderrors.Is(err, errors.ErrUpstreamPersistence):
		return "upstream-persistence-failure"
	case stderrors.Is(err, errors.ErrUpstreamIndex):
		return "upstream-index-failure"
	case stderrors.Is(err, errors.ErrMalformedEvent):
		return "malformed-event"
	case stderrors.Is(err, errors.ErrUnknownEvent):
		return "unknown-event"
	default:
		return "internal"
	}
}
