package ws

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"flack/contract"
	"flack/observability"
	"flack/runtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Gateway upgrades HTTP requests and wires each websocket into the hub:
// a registry entry, a dispatcher, and the two pumps.
type Gateway struct {
	log        *slog.Logger
	registry   contract.IRegistry
	router     contract.IRouter
	deps       runtime.Collaborators
	stats      *observability.HubStats
	bufferSize int
}

func NewGateway(log *slog.Logger, registry contract.IRegistry, router contract.IRouter,
	deps runtime.Collaborators, stats *observability.HubStats, bufferSize int) *Gateway {
	return &Gateway{
		log:        log,
		registry:   registry,
		router:     router,
		deps:       deps,
		stats:      stats,
		bufferSize: bufferSize,
	}
}

// Handle serves one websocket connection for its whole lifetime.
func (g *Gateway) Handle(ctx context.Context, c *gin.Context) {
	socket, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		g.log.Warn("Websocket upgrade failed", "error", err)
		return
	}

	connID := uuid.NewString()
	conn := NewConn(connID, socket, g.bufferSize, g.log)

	g.registry.Connect(connID, conn)
	g.stats.ConnOpened()
	g.log.Info("Connection opened", "conn_id", connID, "remote", c.Request.RemoteAddr)

	dispatcher := runtime.NewDispatcher(g.log, connID, g.registry, g.router, g.deps, g.stats)

	go conn.WritePump(ctx)

	// The read pump runs on the request goroutine; returning from here is
	// how the connection ends.
	conn.ReadPump(ctx, dispatcher)

	g.stats.ConnClosed()
	g.log.Info("Connection closed", "conn_id", connID, "user_id", dispatcher.UserID())
}
