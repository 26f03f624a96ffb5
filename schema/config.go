package schema

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ClientConfig defines endpoints and defaults for the client.
type ClientConfig struct {
	APIURL        string
	SocketURL     string
	LoginURL      string
	TokenURL      string
	StateDir      string
	Theme         ThemeName
	Notifications bool
}

// NormalizeClientConfig applies defaults and validates the config.
func NormalizeClientConfig(cfg ClientConfig) (ClientConfig, error) {
	if strings.TrimSpace(cfg.APIURL) == "" {
		return ClientConfig{}, errors.New("api url is required")
	}
	if strings.TrimSpace(cfg.SocketURL) == "" {
		return ClientConfig{}, errors.New("socket url is required")
	}
	if strings.TrimSpace(cfg.LoginURL) == "" {
		return ClientConfig{}, errors.New("login url is required")
	}
	if strings.TrimSpace(cfg.TokenURL) == "" {
		cfg.TokenURL = strings.TrimRight(cfg.APIURL, "/") + "/tokens"
	}
	if cfg.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ClientConfig{}, err
		}
		cfg.StateDir = filepath.Join(home, ".parley", "state")
	}
	if cfg.Theme == "" {
		cfg.Theme = DefaultTheme
	}
	return cfg, nil
}
