package routes

import (
	"reflect"
	"testing"

	"github.com/parleychat/parley/schema"
)

func TestRoundTrip(t *testing.T) {
	slug := schema.Slug("acme")
	all := []Route{
		Spaces{},
		NewSpace{},
		UserSettings{},
		Root{Slug: slug},
		Inbox{Slug: slug},
		Posts{Slug: slug},
		Post{Slug: slug, ID: "p-7731"},
		Groups{Slug: slug},
		Group{Slug: slug, ID: "g-42"},
		NewGroup{Slug: slug},
		SpaceUsers{Slug: slug},
		Invites{Slug: slug},
		SetupGroups{Slug: slug},
		SetupInvites{Slug: slug},
		Search{Slug: slug, Query: "release plan"},
		Search{Slug: slug, Query: ""},
		SpaceSettings{Slug: slug},
	}
	for _, want := range all {
		path := Serialize(want)
		got, ok := Parse(path)
		if !ok {
			t.Fatalf("parse(%q) failed for %#v", path, want)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("parse(%q) = %#v, want %#v", path, got, want)
		}
	}
}

func TestPriorityOverGenericFallback(t *testing.T) {
	cases := []struct {
		path string
		want Route
	}{
		// Multi-segment patterns win over the one-segment Root fallback.
		{"/acme/settings", SpaceSettings{Slug: "acme"}},
		{"/acme/inbox", Inbox{Slug: "acme"}},
		{"/acme/setup/groups", SetupGroups{Slug: "acme"}},
		// Literal first segments win over slug matching.
		{"/spaces", Spaces{}},
		{"/spaces/new", NewSpace{}},
		{"/user/settings", UserSettings{}},
		// groups/new wins over the group-id pattern.
		{"/acme/groups/new", NewGroup{Slug: "acme"}},
		// Only the bare slug falls through to Root.
		{"/acme", Root{Slug: "acme"}},
	}
	for _, tc := range cases {
		got, ok := Parse(tc.path)
		if !ok {
			t.Fatalf("parse(%q) failed", tc.path)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("parse(%q) = %#v, want %#v", tc.path, got, tc.want)
		}
	}
}

func TestParseRejects(t *testing.T) {
	for _, path := range []string{
		"",
		"acme",
		"/",
		"/UPPER",
		"/acme/bogus",
		"/acme/posts/p1/extra",
		"/acme/setup/bogus",
		"/spaces/old",
		"/user/profile",
		"/sp_ces",
	} {
		if r, ok := Parse(path); ok {
			t.Fatalf("parse(%q) unexpectedly matched %#v", path, r)
		}
	}
}

func TestParseTrailingSlashAndQuery(t *testing.T) {
	got, ok := Parse("/acme/")
	if !ok {
		t.Fatalf("parse failed")
	}
	if !reflect.DeepEqual(got, Root{Slug: "acme"}) {
		t.Fatalf("got %#v", got)
	}
	sr, ok := Parse("/acme/search?q=hello%20world")
	if !ok {
		t.Fatalf("parse search failed")
	}
	if !reflect.DeepEqual(sr, Search{Slug: "acme", Query: "hello world"}) {
		t.Fatalf("got %#v", sr)
	}
}
