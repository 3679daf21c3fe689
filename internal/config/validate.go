package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dcompoze/coinbase-advanced/internal/channel"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	// Credentials are optional, but must be complete when present.
	if (c.Credentials.APIKey == "") != (c.Credentials.PrivateKeyPath == "") {
		return errors.New("credentials.api_key and credentials.private_key_path must be set together")
	}

	if !strings.HasPrefix(c.API.BaseURL, "https://") && !strings.HasPrefix(c.API.BaseURL, "http://") {
		return fmt.Errorf("api.base_url %q must be an http(s) URL", c.API.BaseURL)
	}

	for _, url := range []string{c.WebSocket.PublicURL, c.WebSocket.UserURL} {
		if !strings.HasPrefix(url, "wss://") && !strings.HasPrefix(url, "ws://") {
			return fmt.Errorf("websocket URL %q must be a ws(s) URL", url)
		}
	}

	if c.WebSocket.ReconnectBaseDelay > c.WebSocket.ReconnectMaxDelay {
		return fmt.Errorf("websocket.reconnect_base_delay (%v) cannot exceed reconnect_max_delay (%v)",
			c.WebSocket.ReconnectBaseDelay, c.WebSocket.ReconnectMaxDelay)
	}
	if c.WebSocket.MaxReconnectAttempts < 1 {
		return errors.New("websocket.max_reconnect_attempts must be >= 1")
	}
	if c.WebSocket.BufferSize < 1 {
		return errors.New("websocket.buffer_size must be >= 1")
	}

	for _, ch := range c.Stream.Channels {
		kind := channel.Kind(ch.Name).Canonical()
		if !kind.IsValid() {
			return fmt.Errorf("stream channel %q is not a known channel", ch.Name)
		}
		if kind.RequiresAuth() && !c.Authenticated() {
			return fmt.Errorf("stream channel %q requires credentials", ch.Name)
		}
		if kind.ProductScoped() && len(ch.ProductIDs) == 0 {
			return fmt.Errorf("stream channel %q requires product_ids", ch.Name)
		}
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format %q must be text or json", c.Logging.Format)
	}

	return nil
}
