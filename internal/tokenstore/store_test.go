package tokenstore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Save("tok-abc123"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	token, ok, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatalf("expected stored token")
	}
	if token != "tok-abc123" {
		t.Fatalf("token = %q, want tok-abc123", token)
	}
}

func TestLoadMissingIsNotAnError(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	token, ok, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok || token != "" {
		t.Fatalf("expected no token, got %q ok=%v", token, ok)
	}
}

func TestSaveReplacesPreviousToken(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Save("first"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save("second"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	token, ok, err := store.Load()
	if err != nil || !ok {
		t.Fatalf("Load: %v ok=%v", err, ok)
	}
	if token != "second" {
		t.Fatalf("token = %q, want second", token)
	}
}

func TestTokenFileIsEncrypted(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Save("plaintext-secret"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, tokenFile))
	if err != nil {
		t.Fatalf("read token file: %v", err)
	}
	if string(raw) == "plaintext-secret" {
		t.Fatalf("token stored in cleartext")
	}
}

func TestClear(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Save("tok"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	_, ok, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Fatalf("expected token cleared")
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear twice: %v", err)
	}
}
