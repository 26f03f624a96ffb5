package eventbus

import (
	"testing"
	"time"

	"github.com/parleychat/parley/schema"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	bus := New(nil)
	ch1, cancel1 := bus.Subscribe()
	defer cancel1()
	ch2, cancel2 := bus.Subscribe()
	defer cancel2()

	bus.Publish(schema.Event{Type: schema.EventSpaceUpdated, Space: &schema.Space{ID: "s1"}})

	for i, ch := range []<-chan schema.Event{ch1, ch2} {
		select {
		case ev := <-ch:
			if ev.Type != schema.EventSpaceUpdated {
				t.Fatalf("subscriber %d got %q", i, ev.Type)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d never received the event", i)
		}
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	bus := New(nil)
	ch, cancel := bus.Subscribe()
	cancel()
	bus.Publish(schema.Event{Type: schema.EventPostCreated, Post: &schema.Post{ID: "p1"}})
	if _, open := <-ch; open {
		t.Fatalf("expected closed channel after cancel")
	}
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	bus := New(nil)
	bus.Publish(schema.Event{Type: schema.EventUnknown})
}
