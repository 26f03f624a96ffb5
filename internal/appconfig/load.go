package appconfig

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load reads configuration from the provided path. If path is empty, uses DefaultConfigPath.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("config_version", cfg.ConfigVersion)
	v.SetDefault("state_dir", cfg.StateDir)
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.socket_url", cfg.API.SocketURL)
	v.SetDefault("api.login_url", cfg.API.LoginURL)
	v.SetDefault("api.token_url", cfg.API.TokenURL)
	v.SetDefault("ui.theme", cfg.UI.Theme)
	v.SetDefault("notifications.enabled", cfg.Notifications.Enabled)

	configLoaded := false
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return Config{}, err
			}
		}
	} else {
		configLoaded = true
	}

	if configLoaded {
		if !v.IsSet("config_version") {
			return Config{}, fmt.Errorf("config_version is required; expected %d", CurrentConfigVersion)
		}
		if v.GetInt("config_version") != CurrentConfigVersion {
			return Config{}, fmt.Errorf("unsupported config_version %d; expected %d", v.GetInt("config_version"), CurrentConfigVersion)
		}
		if v.IsSet("api.graphql_url") {
			return Config{}, fmt.Errorf("api.graphql_url was renamed to api.base_url in config_version %d", CurrentConfigVersion)
		}
		if !v.IsSet("api.base_url") {
			return Config{}, fmt.Errorf("api.base_url is required for config_version %d", CurrentConfigVersion)
		}
		if !v.IsSet("api.socket_url") {
			return Config{}, fmt.Errorf("api.socket_url is required for config_version %d", CurrentConfigVersion)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	expandConfigEnv(&cfg)
	if err := validateAPIConfig(cfg.API); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateAPIConfig(cfg APIConfig) error {
	if err := requireURL("api.base_url", cfg.BaseURL, "http", "https"); err != nil {
		return err
	}
	if err := requireURL("api.socket_url", cfg.SocketURL, "ws", "wss"); err != nil {
		return err
	}
	if err := requireURL("api.login_url", cfg.LoginURL, "http", "https"); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.TokenURL) != "" {
		if err := requireURL("api.token_url", cfg.TokenURL, "http", "https"); err != nil {
			return err
		}
	}
	return nil
}

func requireURL(key, value string, schemes ...string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%s is required", key)
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Host == "" {
		return fmt.Errorf("%s must include scheme and host (e.g. %s://example.com)", key, schemes[0])
	}
	for _, scheme := range schemes {
		if parsed.Scheme == scheme {
			return nil
		}
	}
	return fmt.Errorf("%s must use one of %s", key, strings.Join(schemes, ", "))
}

func expandConfigEnv(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.StateDir = expandEnv(cfg.StateDir)
	cfg.API.BaseURL = expandEnv(cfg.API.BaseURL)
	cfg.API.SocketURL = expandEnv(cfg.API.SocketURL)
	cfg.API.LoginURL = expandEnv(cfg.API.LoginURL)
	cfg.API.TokenURL = expandEnv(cfg.API.TokenURL)
}

func expandEnv(value string) string {
	if value == "" {
		return value
	}
	return os.Expand(value, func(key string) string {
		if key == "" {
			return ""
		}
		if val, ok := os.LookupEnv(key); ok {
			return val
		}
		return "$" + key
	})
}

// WriteDefault writes the default config to the target path.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
