package config

import (
	"fmt"
	"net/url"

	"github.com/hay-kot/criterio"
)

// minWordWrap keeps replies readable in narrow terminals.
const minWordWrap = 20

// Validate checks that the configuration is valid. An empty base URL is
// allowed; requests simply fail until one is configured.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.BaseURL != "" {
		if err := ValidateBaseURL(c.BaseURL); err != nil {
			errs = errs.Append("base_url", err)
		}
	}

	if c.Chat.Timeout < 0 {
		errs = errs.Append("chat.timeout", fmt.Errorf("must not be negative, got %s", c.Chat.Timeout))
	}

	if c.Render.WordWrap < minWordWrap {
		errs = errs.Append("render.word_wrap", fmt.Errorf("must be at least %d, got %d", minWordWrap, c.Render.WordWrap))
	}

	return errs.ToError()
}

// ValidateBaseURL checks that raw is an absolute http(s) URL.
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}
