package repo

import (
	"reflect"
	"testing"
	"time"

	"github.com/parleychat/parley/schema"
)

func TestUpsertIdempotent(t *testing.T) {
	r := New()
	g := schema.Group{ID: "g1", SpaceID: "s1", Name: "engineering"}
	r.SetGroup(g)
	once := r.GroupsBySpace("s1")
	r.SetGroup(g)
	twice := r.GroupsBySpace("s1")
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("applying the same snapshot twice changed the cache: %v vs %v", once, twice)
	}
	if len(twice) != 1 {
		t.Fatalf("expected one group, got %d", len(twice))
	}
}

func TestUpsertLastWriteWins(t *testing.T) {
	r := New()
	r.SetSpace(schema.Space{ID: "s1", Name: "Old", Slug: "acme"})
	r.SetSpace(schema.Space{ID: "s1", Name: "New", Slug: "acme"})
	s, ok := r.Space("s1")
	if !ok {
		t.Fatalf("space missing")
	}
	if s.Name != "New" {
		t.Fatalf("expected overwrite, got %q", s.Name)
	}
}

func TestSpaceBySlug(t *testing.T) {
	r := New()
	r.SetSpace(schema.Space{ID: "s1", Name: "Acme", Slug: "acme"})
	if _, ok := r.SpaceBySlug("acme"); !ok {
		t.Fatalf("expected slug lookup to hit")
	}
	if _, ok := r.SpaceBySlug("nope"); ok {
		t.Fatalf("expected slug lookup to miss")
	}
}

func TestPostOrdering(t *testing.T) {
	r := New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.SetPost(schema.Post{ID: "p1", SpaceID: "s1", PostedAt: base})
	r.SetPost(schema.Post{ID: "p2", SpaceID: "s1", PostedAt: base.Add(time.Hour)})
	posts := r.PostsBySpace("s1")
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].ID != "p2" {
		t.Fatalf("expected newest first, got %q", posts[0].ID)
	}
}

func TestPostsByGroup(t *testing.T) {
	r := New()
	r.SetPost(schema.Post{ID: "p1", SpaceID: "s1", GroupIDs: []schema.GroupID{"g1"}})
	r.SetPost(schema.Post{ID: "p2", SpaceID: "s1", GroupIDs: []schema.GroupID{"g2"}})
	posts := r.PostsByGroup("g1")
	if len(posts) != 1 || posts[0].ID != "p1" {
		t.Fatalf("unexpected group posts: %v", posts)
	}
}
