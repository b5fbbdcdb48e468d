package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"flack/domain/event"
	"flack/errors"
)

const writeDeadline = 5 * time.Second

// EventHandler consumes one connection's inbound frames in order. Close is
// called once when the read loop ends.
type EventHandler interface {
	HandleEvent(name string, data json.RawMessage)
	Close()
}

// Conn wraps one websocket with a buffered outbound queue. Consume never
// blocks: the router enqueues and moves on, the write pump drains. A full
// queue means the client cannot keep up and the frame is dropped.
type Conn struct {
	id   string
	ws   *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
	log  *slog.Logger
}

func NewConn(id string, ws *websocket.Conn, bufferSize int, log *slog.Logger) *Conn {
	return &Conn{
		id:   id,
		ws:   ws,
		send: make(chan []byte, bufferSize),
		done: make(chan struct{}),
		log:  log,
	}
}

func (c *Conn) ID() string { return c.id }

// Consume implements contract.EventSink.
func (c *Conn) Consume(_ context.Context, e event.Event) error {
	frame, err := EncodeEvent(e)
	if err != nil {
		return err
	}

	select {
	case <-c.done:
		return errors.ErrConnectionClosed
	case c.send <- frame:
		return nil
	default:
		return errors.ErrBackpressure
	}
}

// Close is idempotent; both pumps and the gateway may race to call it.
func (c *Conn) Close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.ws.Close()
	})
}

func (c *Conn) WritePump(ctx context.Context) {
	defer c.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case frame := <-c.send:
			if err := c.ws.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
				c.log.Warn("Write deadline failed", "conn_id", c.id, "error", err)
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.log.Debug("Write failed", "conn_id", c.id, "error", err)
				return
			}
		}
	}
}

// ReadPump owns the inbound side: every frame is handed to the handler on
// this goroutine, so one connection's events never interleave.
func (c *Conn) ReadPump(ctx context.Context, handler EventHandler) {
	defer func() {
		handler.Close()
		c.Close()
	}()

	for {
		if ctx.Err() != nil {
			return
		}

		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("Read failed", "conn_id", c.id, "error", err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			c.log.Debug("Bad frame", "conn_id", c.id, "error", err)
			continue
		}
		handler.HandleEvent(env.Event, env.Data)
	}
}
