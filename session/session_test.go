package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/parleychat/parley/graphql"
	"github.com/parleychat/parley/schema"
)

func TestRequestPassesToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"data":{"viewer":{"spaces":[]}}}`))
	}))
	defer srv.Close()

	api, err := graphql.NewClient(srv.URL, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	sess := New("tok-1", api, srv.URL+"/tokens", nil)
	next, err := sess.Request(context.Background(), &graphql.ViewerSpaces{})
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if next.Token() != "tok-1" {
		t.Fatalf("request must not rotate the token")
	}
}

func TestFetchNewTokenReplacesSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer old" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"token":"new"}`))
	}))
	defer srv.Close()

	sess := New("old", nil, srv.URL, nil)
	next, err := sess.FetchNewToken(context.Background())
	if err != nil {
		t.Fatalf("fetch new token: %v", err)
	}
	if next.Token() != "new" {
		t.Fatalf("expected replacement token, got %q", next.Token())
	}
	// The original session value is untouched.
	if sess.Token() != "old" {
		t.Fatalf("original session mutated: %q", sess.Token())
	}
}

func TestFetchNewTokenExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sess := New("old", nil, srv.URL, nil)
	if _, err := sess.FetchNewToken(context.Background()); !errors.Is(err, schema.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestNotSignedIn(t *testing.T) {
	sess := New("", nil, "http://unused.invalid", nil)
	if _, err := sess.Request(context.Background(), &graphql.ViewerSpaces{}); !errors.Is(err, schema.ErrNotSignedIn) {
		t.Fatalf("expected ErrNotSignedIn, got %v", err)
	}
	if _, err := sess.FetchNewToken(context.Background()); !errors.Is(err, schema.ErrNotSignedIn) {
		t.Fatalf("expected ErrNotSignedIn, got %v", err)
	}
}
