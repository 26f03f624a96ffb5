// Package socket maintains the persistent realtime connection. It
// delivers four signal kinds (connection started, connection aborted,
// message received, error received) to the shell loop in strict
// arrival order over a single channel.
package socket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"pkt.systems/pslog"

	"github.com/parleychat/parley/internal/eventbus"
	"github.com/parleychat/parley/schema"
)

// SignalKind discriminates socket signals.
type SignalKind int

const (
	// SignalStarted reports a connection was established.
	SignalStarted SignalKind = iota
	// SignalAborted reports the connection dropped.
	SignalAborted
	// SignalMessage carries one decoded realtime event.
	SignalMessage
	// SignalError carries a server-sent error frame.
	SignalError
)

// Signal is one message from the socket to the shell loop.
type Signal struct {
	Kind  SignalKind
	Event schema.Event
	Err   error
}

// Conn is the realtime connection. One read goroutine produces signals;
// writes (channel subscriptions) are serialized by a mutex.
type Conn struct {
	url string
	bus *eventbus.Bus
	log pslog.Logger

	mu      sync.Mutex
	ws      *websocket.Conn
	signals chan Signal
}

// New constructs an unconnected Conn.
func New(url string, bus *eventbus.Bus, logger pslog.Logger) (*Conn, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("socket url is required")
	}
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Conn{
		url:     url,
		bus:     bus,
		log:     logger.With("socket", url),
		signals: make(chan Signal, 256),
	}, nil
}

// Signals is the single ordered stream the shell consumes.
func (c *Conn) Signals() <-chan Signal { return c.signals }

// Connect dials the socket with the bearer token and starts the read
// loop. A previous connection, if any, is closed first; its abort signal
// still flows through the channel in order.
func (c *Conn) Connect(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return schema.ErrNotSignedIn
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, header)
	if err != nil {
		c.log.Warn("socket connect failed", "err", err)
		return err
	}
	c.mu.Lock()
	old := c.ws
	c.ws = ws
	c.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	c.log.Info("socket connected")
	c.signals <- Signal{Kind: SignalStarted}
	go c.readLoop(ws)
	return nil
}

// Close tears the connection down.
func (c *Conn) Close() error {
	c.mu.Lock()
	ws := c.ws
	c.ws = nil
	c.mu.Unlock()
	if ws == nil {
		return nil
	}
	return ws.Close()
}

// wire frames for channel management and server errors.
type commandFrame struct {
	Command string `json:"command"`
	Channel string `json:"channel,omitempty"`
}

type errorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Subscribe asks the server to deliver events for the channel.
func (c *Conn) Subscribe(channel string) error {
	return c.writeCommand(commandFrame{Command: "subscribe", Channel: channel})
}

// Unsubscribe stops delivery for the channel.
func (c *Conn) Unsubscribe(channel string) error {
	return c.writeCommand(commandFrame{Command: "unsubscribe", Channel: channel})
}

func (c *Conn) writeCommand(frame commandFrame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ws == nil {
		return schema.ErrSocketClosed
	}
	if err := c.ws.WriteJSON(frame); err != nil {
		c.log.Warn("socket write failed", "command", frame.Command, "channel", frame.Channel, "err", err)
		return err
	}
	c.log.Debug("socket command sent", "command", frame.Command, "channel", frame.Channel)
	return nil
}

func (c *Conn) readLoop(ws *websocket.Conn) {
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			c.mu.Lock()
			current := c.ws == ws
			if current {
				c.ws = nil
			}
			c.mu.Unlock()
			if current {
				c.log.Warn("socket aborted", "err", err)
				c.signals <- Signal{Kind: SignalAborted, Err: err}
			}
			return
		}
		var ef errorFrame
		if json.Unmarshal(data, &ef) == nil && ef.Type == "error" {
			c.log.Warn("socket error frame", "message", ef.Message)
			c.signals <- Signal{Kind: SignalError, Err: fmt.Errorf("socket: %s", ef.Message)}
			continue
		}
		ev := schema.DecodeEvent(data)
		c.bus.Publish(ev)
		c.signals <- Signal{Kind: SignalMessage, Event: ev}
	}
}
