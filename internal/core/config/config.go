// Package config handles configuration loading and validation for folio.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/foliochat/folio/internal/core/chat"
	"github.com/foliochat/folio/internal/render"
)

// Default contact form outcomes.
const (
	DefaultContactSuccess = "Thanks! I will get back to you at the address you left."
	DefaultContactFailure = "Please try again."
)

// Config holds the application configuration.
type Config struct {
	BaseURL string        `yaml:"base_url"`
	Chat    ChatConfig    `yaml:"chat"`
	Render  RenderConfig  `yaml:"render"`
	Contact ContactConfig `yaml:"contact"`
}

// ChatConfig holds chat session settings.
type ChatConfig struct {
	Timeout  time.Duration `yaml:"timeout"`  // bound for one exchange
	Greeting string        `yaml:"greeting"` // seed bot message
	Apology  string        `yaml:"apology"`  // shown when an exchange fails
}

// RenderConfig holds transcript rendering settings.
type RenderConfig struct {
	Style    string `yaml:"style"`     // glamour style name
	WordWrap int    `yaml:"word_wrap"` // max columns for bot replies
}

// ContactConfig holds the contact form outcome messages.
type ContactConfig struct {
	Success string `yaml:"success"`
	Failure string `yaml:"failure"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Chat: ChatConfig{
			Timeout:  chat.DefaultTimeout,
			Greeting: chat.DefaultGreeting,
			Apology:  chat.DefaultApology,
		},
		Render: RenderConfig{
			Style:    render.DefaultStyle,
			WordWrap: render.DefaultWordWrap,
		},
		Contact: ContactConfig{
			Success: DefaultContactSuccess,
			Failure: DefaultContactFailure,
		},
	}
}

// Load reads configuration from the given path.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Chat.Timeout == 0 {
		c.Chat.Timeout = defaults.Chat.Timeout
	}
	if c.Chat.Greeting == "" {
		c.Chat.Greeting = defaults.Chat.Greeting
	}
	if c.Chat.Apology == "" {
		c.Chat.Apology = defaults.Chat.Apology
	}
	if c.Render.Style == "" {
		c.Render.Style = defaults.Render.Style
	}
	if c.Render.WordWrap == 0 {
		c.Render.WordWrap = defaults.Render.WordWrap
	}
	if c.Contact.Success == "" {
		c.Contact.Success = defaults.Contact.Success
	}
	if c.Contact.Failure == "" {
		c.Contact.Failure = defaults.Contact.Failure
	}
}
