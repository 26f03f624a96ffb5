package schema

import "encoding/json"

// EventType is the top-level type carried by realtime socket payloads.
type EventType string

const (
	// EventGroupBookmarked indicates the viewer bookmarked a group.
	EventGroupBookmarked EventType = "group.bookmarked"
	// EventGroupUnbookmarked indicates the viewer removed a bookmark.
	EventGroupUnbookmarked EventType = "group.unbookmarked"
	// EventGroupUpdated indicates a group's attributes changed.
	EventGroupUpdated EventType = "group.updated"
	// EventPostCreated indicates a post was created.
	EventPostCreated EventType = "post.created"
	// EventPostUpdated indicates a post's body or state changed.
	EventPostUpdated EventType = "post.updated"
	// EventReplyCreated indicates a reply was created.
	EventReplyCreated EventType = "reply.created"
	// EventSpaceUpdated indicates a space's attributes changed.
	EventSpaceUpdated EventType = "space.updated"
	// EventSpaceUserUpdated indicates a membership record changed.
	EventSpaceUserUpdated EventType = "space_user.updated"
	// EventUnknown marks payloads that match no known shape.
	EventUnknown EventType = "unknown"
)

// Event is the normalized shape of a decoded realtime payload. Exactly one
// of the entity pointers is set for known event types.
type Event struct {
	Type      EventType       `json:"type"`
	Group     *Group          `json:"group,omitempty"`
	Post      *Post           `json:"post,omitempty"`
	Reply     *Reply          `json:"reply,omitempty"`
	Space     *Space          `json:"space,omitempty"`
	SpaceUser *SpaceUser      `json:"spaceUser,omitempty"`
	Raw       json.RawMessage `json:"-"`
}

// DecodeEvent interprets a raw socket payload. Payloads that do not match
// any known event shape decode to EventUnknown rather than an error.
func DecodeEvent(data []byte) Event {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{Type: EventUnknown, Raw: append([]byte(nil), data...)}
	}
	ev.Raw = append([]byte(nil), data...)
	switch ev.Type {
	case EventGroupBookmarked, EventGroupUnbookmarked, EventGroupUpdated:
		if ev.Group == nil {
			return Event{Type: EventUnknown, Raw: ev.Raw}
		}
	case EventPostCreated, EventPostUpdated:
		if ev.Post == nil {
			return Event{Type: EventUnknown, Raw: ev.Raw}
		}
	case EventReplyCreated:
		if ev.Reply == nil {
			return Event{Type: EventUnknown, Raw: ev.Raw}
		}
	case EventSpaceUpdated:
		if ev.Space == nil {
			return Event{Type: EventUnknown, Raw: ev.Raw}
		}
	case EventSpaceUserUpdated:
		if ev.SpaceUser == nil {
			return Event{Type: EventUnknown, Raw: ev.Raw}
		}
	default:
		return Event{Type: EventUnknown, Raw: ev.Raw}
	}
	return ev
}
