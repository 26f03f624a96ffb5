package appconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadRejectsUnsupportedConfigVersion(t *testing.T) {
	path := writeConfig(t, `
config_version: 1
api:
  base_url: https://api.example.com/graphql
  socket_url: wss://api.example.com/socket
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "unsupported config_version") {
		t.Fatalf("expected config_version error, got %v", err)
	}
}

func TestLoadRequiresEndpoints(t *testing.T) {
	path := writeConfig(t, `
config_version: 2
api:
  base_url: https://api.example.com/graphql
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "api.socket_url") {
		t.Fatalf("expected socket_url error, got %v", err)
	}
}

func TestLoadRejectsRenamedGraphQLKey(t *testing.T) {
	path := writeConfig(t, `
config_version: 2
api:
  graphql_url: https://api.example.com/graphql
  base_url: https://api.example.com/graphql
  socket_url: wss://api.example.com/socket
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "api.graphql_url") {
		t.Fatalf("expected renamed key error, got %v", err)
	}
}

func TestLoadRejectsInvalidSocketScheme(t *testing.T) {
	path := writeConfig(t, `
config_version: 2
api:
  base_url: https://api.example.com/graphql
  socket_url: https://api.example.com/socket
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "api.socket_url") {
		t.Fatalf("expected socket scheme error, got %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
config_version: 2
state_dir: /tmp/parley-state
api:
  base_url: https://api.example.com/graphql
  socket_url: wss://api.example.com/socket
ui:
  theme: gruvbox
notifications:
  enabled: false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StateDir != "/tmp/parley-state" {
		t.Fatalf("state_dir = %q", cfg.StateDir)
	}
	if cfg.UI.Theme != "gruvbox" {
		t.Fatalf("theme = %q", cfg.UI.Theme)
	}
	if cfg.Notifications.Enabled {
		t.Fatalf("expected notifications disabled")
	}
	if cfg.API.LoginURL == "" {
		t.Fatalf("expected defaulted login_url")
	}
}

func TestClientConfigDerivesTokenURL(t *testing.T) {
	path := writeConfig(t, `
config_version: 2
api:
  base_url: https://api.example.com/graphql
  socket_url: wss://api.example.com/socket
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cc, err := cfg.ClientConfig()
	if err != nil {
		t.Fatalf("client config: %v", err)
	}
	if cc.TokenURL != "https://api.example.com/graphql/tokens" {
		t.Fatalf("token_url = %q", cc.TokenURL)
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("FOO", "bar")
	value := expandEnv("$FOO/$MISSING")
	if !strings.HasPrefix(value, "bar/") {
		t.Fatalf("expected env expansion, got %q", value)
	}
	if !strings.HasSuffix(value, "/$MISSING") {
		t.Fatalf("expected missing vars to remain, got %q", value)
	}
}

func TestWriteDefaultRespectsOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	written, err := WriteDefault(path, false)
	if err != nil {
		t.Fatalf("write default: %v", err)
	}
	if written != path {
		t.Fatalf("expected path %q, got %q", path, written)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config to exist: %v", err)
	}
	if _, err := WriteDefault(path, false); err == nil {
		t.Fatalf("expected error when config exists")
	}
	if _, err := WriteDefault(path, true); err != nil {
		t.Fatalf("expected overwrite to succeed: %v", err)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(strings.TrimSpace(content)+"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
