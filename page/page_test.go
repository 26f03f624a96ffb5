package page

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/parleychat/parley/graphql"
	"github.com/parleychat/parley/repo"
	"github.com/parleychat/parley/routes"
	"github.com/parleychat/parley/schema"
	"github.com/parleychat/parley/session"
)

type fakeRealtime struct {
	mu           sync.Mutex
	subscribed   []string
	unsubscribed []string
}

func (f *fakeRealtime) Subscribe(channel string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribed = append(f.subscribed, channel)
	return nil
}

func (f *fakeRealtime) Unsubscribe(channel string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unsubscribed = append(f.unsubscribed, channel)
	return nil
}

// newTestDeps wires a session against a server answering each operation
// name with canned response data.
func newTestDeps(t *testing.T, data map[string]string) (Deps, *fakeRealtime) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			OperationName string `json:"operationName"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		payload, ok := data[req.OperationName]
		if !ok {
			t.Errorf("unexpected operation %q", req.OperationName)
			payload = "{}"
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":` + payload + `}`))
	}))
	t.Cleanup(server.Close)
	client, err := graphql.NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	rt := &fakeRealtime{}
	deps := Deps{
		Session:  session.New("tok", client, server.URL+"/tokens", nil),
		Realtime: rt,
		Config:   schema.ClientConfig{APIURL: server.URL, SocketURL: "wss://x", LoginURL: "https://app.example.com/login", TokenURL: server.URL + "/tokens"},
	}
	return deps, rt
}

const inboxData = `{"space":{"id":"space-1","name":"Acme","slug":"acme","setupState":"COMPLETE",` +
	`"bookmarkedGroups":[{"id":"g-1","spaceId":"space-1","name":"general","isBookmarked":true}],` +
	`"inbox":[{"id":"p-1","spaceId":"space-1","groupIds":["g-1"],"authorId":"su-1","body":"hello","state":"OPEN"}]}}`

func TestResolveInboxFetchesAndPrimes(t *testing.T) {
	deps, _ := newTestDeps(t, map[string]string{"SpaceInbox": inboxData})
	p, err := Resolve(context.Background(), deps, routes.Inbox{Slug: "acme"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	inbox, ok := p.(*Inbox)
	if !ok {
		t.Fatalf("expected *Inbox, got %T", p)
	}
	r := repo.New()
	inbox.Prime(r)
	if _, ok := r.SpaceBySlug("acme"); !ok {
		t.Fatalf("space not primed")
	}
	if _, ok := r.Group("g-1"); !ok {
		t.Fatalf("group not primed")
	}
	if _, ok := r.Post("p-1"); !ok {
		t.Fatalf("post not primed")
	}
}

func TestRootResolvesAsInbox(t *testing.T) {
	deps, _ := newTestDeps(t, map[string]string{"SpaceInbox": inboxData})
	p, err := Resolve(context.Background(), deps, routes.Root{Slug: "acme"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, ok := p.(*Inbox); !ok {
		t.Fatalf("expected *Inbox for bare space path, got %T", p)
	}
}

func TestInboxSetupSubscribesSpaceChannel(t *testing.T) {
	deps, rt := newTestDeps(t, map[string]string{"SpaceInbox": inboxData})
	p, err := Resolve(context.Background(), deps, routes.Inbox{Slug: "acme"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cmd := p.Setup(); cmd != nil {
		_ = cmd()
	}
	if len(rt.subscribed) != 1 || rt.subscribed[0] != "space:space-1" {
		t.Fatalf("subscribed = %v", rt.subscribed)
	}
	if cmd := p.Teardown(); cmd != nil {
		_ = cmd()
	}
	if len(rt.unsubscribed) != 1 || rt.unsubscribed[0] != "space:space-1" {
		t.Fatalf("unsubscribed = %v", rt.unsubscribed)
	}
}

func TestInboxConsumesPostCreated(t *testing.T) {
	deps, _ := newTestDeps(t, map[string]string{"SpaceInbox": inboxData})
	p, err := Resolve(context.Background(), deps, routes.Inbox{Slug: "acme"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	inbox := p.(*Inbox)
	before := len(inbox.posts)
	next, _ := inbox.ConsumeEvent(schema.Event{
		Type: schema.EventPostCreated,
		Post: &schema.Post{ID: "p-2", SpaceID: "space-1", Body: "new"},
	}, repo.New())
	inbox = next.(*Inbox)
	if len(inbox.posts) != before+1 {
		t.Fatalf("post not appended")
	}
	if inbox.posts[0].ID != "p-2" {
		t.Fatalf("expected newest first, got %v", inbox.posts[0].ID)
	}
	// A post for another space is ignored.
	next, _ = inbox.ConsumeEvent(schema.Event{
		Type: schema.EventPostCreated,
		Post: &schema.Post{ID: "p-3", SpaceID: "space-other"},
	}, repo.New())
	inbox = next.(*Inbox)
	if len(inbox.posts) != before+1 {
		t.Fatalf("foreign post should be ignored")
	}
}

func TestGroupConsumeFiltersByMembership(t *testing.T) {
	deps, _ := newTestDeps(t, map[string]string{
		"GroupFeed": `{"space":{"id":"space-1","name":"Acme","slug":"acme",` +
			`"group":{"id":"g-1","spaceId":"space-1","name":"general","posts":[]}}}`,
	})
	p, err := Resolve(context.Background(), deps, routes.Group{Slug: "acme", ID: "g-1"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	group := p.(*Group)
	next, _ := group.ConsumeEvent(schema.Event{
		Type: schema.EventPostCreated,
		Post: &schema.Post{ID: "p-1", SpaceID: "space-1", GroupIDs: []schema.GroupID{"g-2"}},
	}, repo.New())
	group = next.(*Group)
	if len(group.posts) != 0 {
		t.Fatalf("post for another group should be ignored")
	}
	next, _ = group.ConsumeEvent(schema.Event{
		Type: schema.EventPostCreated,
		Post: &schema.Post{ID: "p-1", SpaceID: "space-1", GroupIDs: []schema.GroupID{"g-1"}},
	}, repo.New())
	group = next.(*Group)
	if len(group.posts) != 1 {
		t.Fatalf("post for this group should be kept")
	}
}

func TestNotFoundEnterGoesToSpaces(t *testing.T) {
	p := NotFound{}
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter}, Context{})
	if cmd == nil {
		t.Fatalf("expected navigation command")
	}
	msg, ok := cmd().(NavigateMsg)
	if !ok {
		t.Fatalf("expected NavigateMsg")
	}
	if _, ok := msg.Route.(routes.Spaces); !ok {
		t.Fatalf("expected Spaces route, got %T", msg.Route)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Acme Corp":        "acme-corp",
		"  Design / UX  ":  "design-ux",
		"already-a-slug":   "already-a-slug",
		"Trailing Symbol!": "trailing-symbol",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCanonicalURL(t *testing.T) {
	cfg := schema.ClientConfig{LoginURL: "https://app.example.com/login"}
	got := canonicalURL(cfg, "/acme/posts/p-1")
	if got != "https://app.example.com/acme/posts/p-1" {
		t.Fatalf("canonicalURL = %q", got)
	}
}

func TestTruncateKeepsRuneBoundaries(t *testing.T) {
	s := strings.Repeat("ü", 10)
	got := truncate(s, 8)
	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
	if want := strings.Repeat("ü", 5) + "..."; got != want {
		t.Fatalf("truncate = %q, want %q", got, want)
	}
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("short strings must pass through, got %q", got)
	}
	if got := truncate("héllo", 3); got != "hél" {
		t.Fatalf("tiny max = %q, want %q", got, "hél")
	}
}
