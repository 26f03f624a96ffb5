package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/parleychat/parley/schema"
)

func TestDoAttachesBearerAndDecodes(t *testing.T) {
	var gotAuth string
	var gotReq struct {
		OperationName string         `json:"operationName"`
		Query         string         `json:"query"`
		Variables     map[string]any `json:"variables"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"data":{"space":{"id":"s1","name":"Acme","slug":"acme","setupState":"COMPLETE"}}}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	op := &SpaceBySlug{Slug: "acme"}
	if err := c.Do(context.Background(), "tok-123", op); err != nil {
		t.Fatalf("do: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if gotReq.OperationName != "SpaceBySlug" {
		t.Fatalf("unexpected operation name %q", gotReq.OperationName)
	}
	if gotReq.Variables["slug"] != "acme" {
		t.Fatalf("unexpected variables %v", gotReq.Variables)
	}
	if op.Space.ID != "s1" {
		t.Fatalf("decode failed: %+v", op.Space)
	}
}

func TestDoMapsUnauthenticatedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	err = c.Do(context.Background(), "tok", &ViewerSpaces{})
	if !errors.Is(err, schema.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestDoMapsUnauthenticatedErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"nope","extensions":{"code":"UNAUTHENTICATED"}}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	err = c.Do(context.Background(), "tok", &ViewerSpaces{})
	if !errors.Is(err, schema.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestDoGenericGraphQLError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"boom"}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	err = c.Do(context.Background(), "tok", &ViewerSpaces{})
	if err == nil || errors.Is(err, schema.ErrSessionExpired) {
		t.Fatalf("expected generic error, got %v", err)
	}
}

func TestDoRequiresToken(t *testing.T) {
	c, err := NewClient("http://unused.invalid", nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := c.Do(context.Background(), "", &ViewerSpaces{}); !errors.Is(err, schema.ErrNotSignedIn) {
		t.Fatalf("expected ErrNotSignedIn, got %v", err)
	}
}

func TestBulkCreateGroupsCollapsesPayloads(t *testing.T) {
	// Per-name validation errors are deliberately not surfaced.
	op := &BulkCreateGroups{SpaceID: "s1", Names: []string{"a", "b"}}
	payload := json.RawMessage(`{"bulkCreateGroups":{"payloads":[{"success":false,"errors":[{"attribute":"name","message":"taken"}]}]}}`)
	if err := op.Decode(payload); err != nil {
		t.Fatalf("expected unconditional success, got %v", err)
	}
}
