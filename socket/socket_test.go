package socket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/parleychat/parley/internal/eventbus"
	"github.com/parleychat/parley/schema"
)

func startServer(t *testing.T, handle func(ws *websocket.Conn)) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		handle(ws)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func nextSignal(t *testing.T, c *Conn) Signal {
	t.Helper()
	select {
	case sig := <-c.Signals():
		return sig
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for signal")
		return Signal{}
	}
}

func TestConnectDeliversOrderedSignals(t *testing.T) {
	url := startServer(t, func(ws *websocket.Conn) {
		defer ws.Close()
		_ = ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"space.updated","space":{"id":"s1","slug":"acme","name":"Acme","setupState":"COMPLETE"}}`))
		_ = ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"error","message":"boom"}`))
	})

	bus := eventbus.New(nil)
	tap, cancel := bus.Subscribe()
	defer cancel()

	c, err := New(url, bus, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := c.Connect(context.Background(), "tok"); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Close()

	if sig := nextSignal(t, c); sig.Kind != SignalStarted {
		t.Fatalf("expected started first, got %v", sig.Kind)
	}
	sig := nextSignal(t, c)
	if sig.Kind != SignalMessage || sig.Event.Type != schema.EventSpaceUpdated {
		t.Fatalf("expected space.updated message, got %+v", sig)
	}
	if sig := nextSignal(t, c); sig.Kind != SignalError {
		t.Fatalf("expected error frame signal, got %+v", sig)
	}
	if sig := nextSignal(t, c); sig.Kind != SignalAborted {
		t.Fatalf("expected abort after server close, got %+v", sig)
	}

	// The decoded event is also fanned out through the bus.
	select {
	case ev := <-tap:
		if ev.Type != schema.EventSpaceUpdated {
			t.Fatalf("bus got %q", ev.Type)
		}
	case <-time.After(time.Second):
		t.Fatalf("bus never saw the event")
	}
}

func TestSubscribeWritesCommandFrame(t *testing.T) {
	frames := make(chan string, 1)
	url := startServer(t, func(ws *websocket.Conn) {
		defer ws.Close()
		_, data, err := ws.ReadMessage()
		if err != nil {
			return
		}
		var frame struct {
			Command string `json:"command"`
			Channel string `json:"channel"`
		}
		if err := json.Unmarshal(data, &frame); err == nil {
			frames <- frame.Command + ":" + frame.Channel
		}
	})

	c, err := New(url, eventbus.New(nil), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := c.Connect(context.Background(), "tok"); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Close()

	if err := c.Subscribe("space:s1"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	select {
	case got := <-frames:
		if got != "subscribe:space:s1" {
			t.Fatalf("unexpected frame %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("server never received the frame")
	}
}

func TestWriteAfterCloseFails(t *testing.T) {
	c, err := New("ws://unused.invalid", eventbus.New(nil), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := c.Subscribe("space:s1"); err != schema.ErrSocketClosed {
		t.Fatalf("expected ErrSocketClosed, got %v", err)
	}
}
