// Package notifier raises desktop notifications for realtime events. It
// consumes an event bus subscription on its own goroutine so a slow or
// broken notification backend never stalls the client.
package notifier

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/parleychat/parley/internal/eventbus"
	"github.com/parleychat/parley/schema"
)

const maxBodyLen = 100

// notifyFunc is swapped out in tests.
type notifyFunc func(title, body, icon string) error

// Notifier watches the bus and notifies on new posts and replies.
type Notifier struct {
	bus     *eventbus.Bus
	repo    entityLookup
	notify  notifyFunc
	mu      sync.Mutex
	enabled bool
	cancel  func()
	done    chan struct{}
}

// entityLookup resolves display names for notification titles.
type entityLookup interface {
	Space(id schema.SpaceID) (schema.Space, bool)
	Post(id schema.PostID) (schema.Post, bool)
	SpaceUser(id schema.SpaceUserID) (schema.SpaceUser, bool)
}

// New creates a notifier. Call Start to begin consuming events.
func New(bus *eventbus.Bus, repo entityLookup, enabled bool) *Notifier {
	return &Notifier{
		bus:     bus,
		repo:    repo,
		notify: func(title, body, icon string) error {
			return beeep.Notify(title, body, icon)
		},
		enabled: enabled,
	}
}

// Start subscribes to the bus and begins notifying.
func (n *Notifier) Start() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.done != nil {
		return
	}
	events, cancel := n.bus.Subscribe()
	n.cancel = cancel
	n.done = make(chan struct{})
	go n.run(events, n.done)
}

// Stop cancels the bus subscription and waits for the loop to drain.
func (n *Notifier) Stop() {
	n.mu.Lock()
	cancel := n.cancel
	done := n.done
	n.cancel = nil
	n.done = nil
	n.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// SetEnabled toggles notifications without dropping the subscription.
func (n *Notifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	n.enabled = enabled
	n.mu.Unlock()
}

// Enabled reports whether notifications are raised.
func (n *Notifier) Enabled() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.enabled
}

func (n *Notifier) run(events <-chan schema.Event, done chan struct{}) {
	defer close(done)
	for event := range events {
		if !n.Enabled() {
			continue
		}
		title, body, ok := n.render(event)
		if !ok {
			continue
		}
		// Best effort; the backend may be absent on headless hosts.
		_ = n.notify(title, body, "")
	}
}

func (n *Notifier) render(event schema.Event) (string, string, bool) {
	switch event.Type {
	case schema.EventPostCreated:
		if event.Post == nil {
			return "", "", false
		}
		return n.title(event.Post.SpaceID), n.body(event.Post.AuthorID, event.Post.Body), true
	case schema.EventReplyCreated:
		if event.Reply == nil {
			return "", "", false
		}
		var spaceID schema.SpaceID
		if n.repo != nil {
			if post, ok := n.repo.Post(event.Reply.PostID); ok {
				spaceID = post.SpaceID
			}
		}
		return n.title(spaceID), n.body(event.Reply.AuthorID, event.Reply.Body), true
	default:
		return "", "", false
	}
}

func (n *Notifier) title(spaceID schema.SpaceID) string {
	if n.repo != nil {
		if space, ok := n.repo.Space(spaceID); ok {
			return fmt.Sprintf("Parley - %s", space.Name)
		}
	}
	return "Parley"
}

func (n *Notifier) body(authorID schema.SpaceUserID, text string) string {
	text = strings.TrimSpace(text)
	if runes := []rune(text); len(runes) > maxBodyLen {
		text = string(runes[:maxBodyLen-3]) + "..."
	}
	if n.repo != nil {
		if author, ok := n.repo.SpaceUser(authorID); ok {
			return fmt.Sprintf("%s: %s", author.DisplayName(), text)
		}
	}
	return text
}
