package schema

import "testing"

func TestDecodeEventKnownShape(t *testing.T) {
	payload := []byte(`{"type":"space.updated","space":{"id":"s1","name":"Acme","slug":"acme","setupState":"COMPLETE"}}`)
	ev := DecodeEvent(payload)
	if ev.Type != EventSpaceUpdated {
		t.Fatalf("expected space.updated, got %q", ev.Type)
	}
	if ev.Space == nil || ev.Space.ID != "s1" {
		t.Fatalf("expected space payload, got %+v", ev.Space)
	}
}

func TestDecodeEventUnknownType(t *testing.T) {
	ev := DecodeEvent([]byte(`{"type":"nope.nope","foo":1}`))
	if ev.Type != EventUnknown {
		t.Fatalf("expected unknown, got %q", ev.Type)
	}
}

func TestDecodeEventMissingEntity(t *testing.T) {
	// A known type without its entity payload is not a usable event.
	ev := DecodeEvent([]byte(`{"type":"post.created"}`))
	if ev.Type != EventUnknown {
		t.Fatalf("expected unknown, got %q", ev.Type)
	}
}

func TestDecodeEventMalformedJSON(t *testing.T) {
	ev := DecodeEvent([]byte(`{`))
	if ev.Type != EventUnknown {
		t.Fatalf("expected unknown, got %q", ev.Type)
	}
}

func TestNormalizeClientConfigDefaults(t *testing.T) {
	cfg, err := NormalizeClientConfig(ClientConfig{
		APIURL:    "https://api.parley.test/graphql",
		SocketURL: "wss://api.parley.test/socket",
		LoginURL:  "https://parley.test/login",
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.TokenURL == "" {
		t.Fatalf("expected derived token url")
	}
	if cfg.Theme != DefaultTheme {
		t.Fatalf("expected default theme, got %q", cfg.Theme)
	}
	if cfg.StateDir == "" {
		t.Fatalf("expected state dir default")
	}
}

func TestNormalizeClientConfigRequiresEndpoints(t *testing.T) {
	if _, err := NormalizeClientConfig(ClientConfig{}); err == nil {
		t.Fatalf("expected error for missing endpoints")
	}
}
