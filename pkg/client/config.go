package client

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the client configuration file structure.
type Config struct {
	Slack SlackSection `toml:"slack"`
	UI    UISection    `toml:"ui"`
}

type SlackSection struct {
	Token  string `toml:"token"`
	APIURL string `toml:"api_url"`
}

type UISection struct {
	Notifications bool `toml:"notifications"`
}

// DefaultConfigPath is where the config file lives unless overridden.
const DefaultConfigPath = "~/.terminal-slack/config.toml"

// DefaultConfig returns the default client configuration.
func DefaultConfig() Config {
	return Config{
		Slack: SlackSection{
			Token:  "",
			APIURL: "https://slack.com/api/",
		},
		UI: UISection{
			Notifications: true,
		},
	}
}

// LoadConfig loads configuration from a TOML file, creating a default
// file if none exists, and applies environment variable overrides.
func LoadConfig(path string) (Config, error) {
	expanded, err := expandPath(path)
	if err != nil {
		return Config{}, err
	}
	path = expanded

	if _, err := os.Stat(path); os.IsNotExist(err) {
		config := DefaultConfig()
		if err := writeDefaultConfig(path, config); err != nil {
			// Can't write (permissions?), still run with defaults
			return applyEnvOverrides(config), nil
		}
		return applyEnvOverrides(config), nil
	}

	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	return applyEnvOverrides(config), nil
}

// applyEnvOverrides applies environment variable overrides.
// SLACK_TOKEN matches what the original shell workflow exported.
func applyEnvOverrides(config Config) Config {
	if val := os.Getenv("SLACK_TOKEN"); val != "" {
		config.Slack.Token = val
	}
	if val := os.Getenv("SLACK_API_URL"); val != "" {
		config.Slack.APIURL = val
	}
	return config
}

func writeDefaultConfig(path string, config Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(config)
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(homeDir, path[2:]), nil
	}
	return path, nil
}
