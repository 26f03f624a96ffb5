package ui

import (
	"testing"

	"github.com/parleychat/parley/schema"
)

func TestForNameFallsBackToDefault(t *testing.T) {
	theme := ForName("no-such-theme")
	if theme.Name != schema.DefaultTheme {
		t.Fatalf("expected default theme, got %q", theme.Name)
	}
}

func TestForNameKnownThemes(t *testing.T) {
	for _, name := range Names() {
		theme := ForName(name)
		if theme.Name != name {
			t.Fatalf("ForName(%q) returned %q", name, theme.Name)
		}
	}
}

func TestDefaultThemeExists(t *testing.T) {
	found := false
	for _, name := range Names() {
		if name == schema.DefaultTheme {
			found = true
		}
	}
	if !found {
		t.Fatalf("default theme %q not registered", schema.DefaultTheme)
	}
}
