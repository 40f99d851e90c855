package config

import (
	"fmt"
	"net/url"

	"github.com/Cyclone1070/testgen/internal/selection"
)

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	// Backend validation
	if c.Backend.BaseURL == "" {
		errs = append(errs, "backend.base_url must not be empty")
	} else if u, err := url.Parse(c.Backend.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, "backend.base_url must be an absolute URL")
	}
	if c.Backend.TimeoutSeconds < 1 {
		errs = append(errs, "backend.timeout_seconds must be >= 1")
	}

	// Selection validation
	if c.Selection.MaxSelect < 1 || c.Selection.MaxSelect > selection.DefaultMaxSelect {
		errs = append(errs, fmt.Sprintf("selection.max_select must be between 1 and %d", selection.DefaultMaxSelect))
	}

	// Handoff validation
	if c.Handoff.Store != StoreFile && c.Handoff.Store != StoreBadger {
		errs = append(errs, fmt.Sprintf("handoff.store must be %q or %q", StoreFile, StoreBadger))
	}

	// Providers validation
	if c.Providers.MaxOutputTokens < 1 {
		errs = append(errs, "providers.max_output_tokens must be >= 1")
	}
	if c.Providers.MaxPromptFileSize < 0 {
		errs = append(errs, "providers.max_prompt_file_size must be >= 0")
	}

	// UI validation
	if c.UI.TickIntervalMs < 1 {
		errs = append(errs, "ui.tick_interval_ms must be >= 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
