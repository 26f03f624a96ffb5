package notifier

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/parleychat/parley/internal/eventbus"
	"github.com/parleychat/parley/repo"
	"github.com/parleychat/parley/schema"
)

type captured struct {
	title string
	body  string
}

func newTestNotifier(t *testing.T, enabled bool) (*Notifier, *eventbus.Bus, *repo.Repo, chan captured) {
	t.Helper()
	bus := eventbus.New(nil)
	entities := repo.New()
	got := make(chan captured, 8)
	n := New(bus, entities, enabled)
	n.notify = func(title, body, icon string) error {
		got <- captured{title: title, body: body}
		return nil
	}
	n.Start()
	t.Cleanup(n.Stop)
	return n, bus, entities, got
}

func TestNotifiesOnPostCreated(t *testing.T) {
	_, bus, entities, got := newTestNotifier(t, true)
	entities.SetSpace(schema.Space{ID: "space-1", Name: "Acme", Slug: "acme"})
	entities.SetSpaceUser(schema.SpaceUser{ID: "su-1", SpaceID: "space-1", FirstName: "Ada", LastName: "Lovelace"})
	bus.Publish(schema.Event{
		Type: schema.EventPostCreated,
		Post: &schema.Post{ID: "post-1", SpaceID: "space-1", AuthorID: "su-1", Body: "hello there"},
	})
	select {
	case c := <-got:
		if c.title != "Parley - Acme" {
			t.Fatalf("title = %q", c.title)
		}
		if c.body != "Ada Lovelace: hello there" {
			t.Fatalf("body = %q", c.body)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no notification")
	}
}

func TestResolvesReplySpaceThroughPost(t *testing.T) {
	_, bus, entities, got := newTestNotifier(t, true)
	entities.SetSpace(schema.Space{ID: "space-1", Name: "Acme", Slug: "acme"})
	entities.SetPost(schema.Post{ID: "post-1", SpaceID: "space-1"})
	bus.Publish(schema.Event{
		Type:  schema.EventReplyCreated,
		Reply: &schema.Reply{ID: "reply-1", PostID: "post-1", AuthorID: "su-404", Body: "re: hello"},
	})
	select {
	case c := <-got:
		if c.title != "Parley - Acme" {
			t.Fatalf("title = %q", c.title)
		}
		if c.body != "re: hello" {
			t.Fatalf("body = %q", c.body)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no notification")
	}
}

func TestDisabledNotifierStaysQuiet(t *testing.T) {
	n, bus, _, got := newTestNotifier(t, false)
	bus.Publish(schema.Event{
		Type: schema.EventPostCreated,
		Post: &schema.Post{ID: "post-1", Body: "quiet"},
	})
	select {
	case c := <-got:
		t.Fatalf("unexpected notification %+v", c)
	case <-time.After(100 * time.Millisecond):
	}
	n.SetEnabled(true)
	if !n.Enabled() {
		t.Fatalf("expected enabled")
	}
}

func TestIgnoresNonMessageEvents(t *testing.T) {
	_, bus, _, got := newTestNotifier(t, true)
	bus.Publish(schema.Event{Type: schema.EventSpaceUpdated, Space: &schema.Space{ID: "space-1"}})
	bus.Publish(schema.Event{Type: schema.EventUnknown})
	select {
	case c := <-got:
		t.Fatalf("unexpected notification %+v", c)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestLongMultibyteBodyTruncatesOnRuneBoundary(t *testing.T) {
	_, bus, entities, got := newTestNotifier(t, true)
	entities.SetSpace(schema.Space{ID: "space-1", Name: "Acme", Slug: "acme"})
	bus.Publish(schema.Event{
		Type: schema.EventPostCreated,
		Post: &schema.Post{ID: "post-1", SpaceID: "space-1", AuthorID: "su-404", Body: strings.Repeat("é", 120)},
	})
	select {
	case c := <-got:
		if !utf8.ValidString(c.body) {
			t.Fatalf("notification body is not valid UTF-8: %q", c.body)
		}
		if !strings.HasSuffix(c.body, "...") {
			t.Fatalf("long body not truncated: %q", c.body)
		}
		if runes := len([]rune(c.body)); runes != maxBodyLen {
			t.Fatalf("body rune length = %d, want %d", runes, maxBodyLen)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no notification")
	}
}
