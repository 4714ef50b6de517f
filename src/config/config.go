// Package config provides configuration management for the slackwatch agent.
package config

import (
	"fmt"
	"os"
)

// Config holds the application configuration.
type Config struct {
	// SlackBotToken is the bot token for authenticating with the Slack Web API.
	SlackBotToken string

	// DefaultChannel is the channel used when a tool call omits channel_id.
	// Optional; tools that need a channel report a per-call error when both
	// the override and this default are empty.
	DefaultChannel string
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (*Config, error) {
	token := os.Getenv("SLACK_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("SLACK_BOT_TOKEN environment variable is required")
	}

	return &Config{
		SlackBotToken:  token,
		DefaultChannel: os.Getenv("SLACK_DEFAULT_CHANNEL"),
	}, nil
}

// MustLoadFromEnv loads configuration from environment variables and panics on error.
// This is useful for initialization in main() where configuration errors should be fatal.
func MustLoadFromEnv() *Config {
	cfg, err := LoadFromEnv()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}
