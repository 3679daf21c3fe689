package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL = "https://api.coinbase.com"

	DefaultPublicWSURL = "wss://advanced-trade-ws.coinbase.com"
	DefaultUserWSURL   = "wss://advanced-trade-ws-user.coinbase.com"

	DefaultAPITimeout = 30 * time.Second
	DefaultMaxRetries = 3

	DefaultReconnectBaseDelay   = 1 * time.Second
	DefaultReconnectMaxDelay    = 60 * time.Second
	DefaultMaxReconnectAttempts = 10
	DefaultPingInterval         = 15 * time.Second
	DefaultReadTimeout          = 30 * time.Second
	DefaultBufferSize           = 1000

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}

	if c.WebSocket.PublicURL == "" {
		c.WebSocket.PublicURL = DefaultPublicWSURL
	}
	if c.WebSocket.UserURL == "" {
		c.WebSocket.UserURL = DefaultUserWSURL
	}
	if c.WebSocket.ReconnectBaseDelay == 0 {
		c.WebSocket.ReconnectBaseDelay = DefaultReconnectBaseDelay
	}
	if c.WebSocket.ReconnectMaxDelay == 0 {
		c.WebSocket.ReconnectMaxDelay = DefaultReconnectMaxDelay
	}
	if c.WebSocket.MaxReconnectAttempts == 0 {
		c.WebSocket.MaxReconnectAttempts = DefaultMaxReconnectAttempts
	}
	if c.WebSocket.PingInterval == 0 {
		c.WebSocket.PingInterval = DefaultPingInterval
	}
	if c.WebSocket.ReadTimeout == 0 {
		c.WebSocket.ReadTimeout = DefaultReadTimeout
	}
	if c.WebSocket.BufferSize == 0 {
		c.WebSocket.BufferSize = DefaultBufferSize
	}

	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
}
