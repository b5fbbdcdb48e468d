package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"

	"flack/ws"
)

// BaseWsSuite targets a running server named by SERVER_ADDR. Suites built
// on it skip when no server is configured, so the package stays green in
// unit-test runs.
type BaseWsSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseWsSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
}

func (s *BaseWsSuite) RequireServer(t *testing.T) {
	if s.Config.ServerAddr == "" {
		t.Skip("SERVER_ADDR not set, skipping e2e scenario")
	}
}

// HTTPClient returns a client with its own cookie jar, so each simulated
// user carries an independent session.
func (s *BaseWsSuite) HTTPClient() *http.Client {
	jar, err := cookiejar.New(nil)
	s.Require().NoError(err)
	return &http.Client{Jar: jar, Timeout: 10 * time.Second}
}

// Dial opens a websocket to the hub and logs a colorized step header.
func (s *BaseWsSuite) Dial(t *testing.T, name string) *websocket.Conn {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)

	url := fmt.Sprintf("ws://%s/ws", s.Config.ServerAddr)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err, "Failed to connect to websocket at "+url)
	return conn
}

// Send writes one named event frame.
func (s *BaseWsSuite) Send(t *testing.T, conn *websocket.Conn, event string, payload any) {
	data, err := json.Marshal(payload)
	s.Require().NoError(err)

	frame, err := json.Marshal(ws.Envelope{Event: event, Data: data})
	s.Require().NoError(err)

	if s.Config.DebugJSON {
		t.Logf("SEND %s", frame)
	}
	s.Require().NoError(conn.WriteMessage(websocket.TextMessage, frame))
}

// Expect reads frames until one matches the wanted event name or the
// deadline passes.
func (s *BaseWsSuite) Expect(t *testing.T, conn *websocket.Conn, event string, timeout time.Duration) ws.Envelope {
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(timeout)))

	for {
		_, data, err := conn.ReadMessage()
		s.Require().NoError(err, "waiting for %q", event)

		var env ws.Envelope
		s.Require().NoError(json.Unmarshal(data, &env))
		if s.Config.DebugJSON {
			t.Logf("RECV %s", data)
		}

		if env.Event == event {
			return env
		}
	}
}
