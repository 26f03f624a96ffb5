package appconfig

import (
	"os"
	"path/filepath"

	"github.com/parleychat/parley/schema"
)

// Config is the top-level application configuration.
type Config struct {
	ConfigVersion int                 `mapstructure:"config_version" yaml:"config_version"`
	StateDir      string              `mapstructure:"state_dir" yaml:"state_dir"`
	API           APIConfig           `mapstructure:"api" yaml:"api"`
	UI            UIConfig            `mapstructure:"ui" yaml:"ui"`
	Notifications NotificationsConfig `mapstructure:"notifications" yaml:"notifications"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 2

// APIConfig configures the server endpoints.
type APIConfig struct {
	BaseURL   string `mapstructure:"base_url" yaml:"base_url"`
	SocketURL string `mapstructure:"socket_url" yaml:"socket_url"`
	LoginURL  string `mapstructure:"login_url" yaml:"login_url"`
	TokenURL  string `mapstructure:"token_url" yaml:"token_url"`
}

// UIConfig controls presentation settings.
type UIConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// NotificationsConfig controls desktop notifications.
type NotificationsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		ConfigVersion: CurrentConfigVersion,
		StateDir:      filepath.Join(home, ".parley", "state"),
		API: APIConfig{
			BaseURL:   "https://api.parley.chat/graphql",
			SocketURL: "wss://api.parley.chat/socket",
			LoginURL:  "https://app.parley.chat/login",
			TokenURL:  "",
		},
		UI: UIConfig{
			Theme: string(schema.DefaultTheme),
		},
		Notifications: NotificationsConfig{
			Enabled: true,
		},
	}, nil
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".parley", "config.yaml"), nil
}

// ClientConfig converts the file config into the runtime client config.
func (c Config) ClientConfig() (schema.ClientConfig, error) {
	cc := schema.ClientConfig{
		APIURL:        c.API.BaseURL,
		SocketURL:     c.API.SocketURL,
		LoginURL:      c.API.LoginURL,
		TokenURL:      c.API.TokenURL,
		StateDir:      c.StateDir,
		Theme:         schema.ThemeName(c.UI.Theme),
		Notifications: c.Notifications.Enabled,
	}
	return schema.NormalizeClientConfig(cc)
}
