// Package config loads and validates YAML client configuration.
package config

import "time"

// Config is the root configuration for the client.
type Config struct {
	Credentials CredentialsConfig `yaml:"credentials"`
	API         APIConfig         `yaml:"api"`
	WebSocket   WebSocketConfig   `yaml:"websocket"`
	Stream      StreamConfig      `yaml:"stream"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// CredentialsConfig holds the CDP API key. Both fields empty means
// unauthenticated: public market data only.
type CredentialsConfig struct {
	APIKey         string `yaml:"api_key"`          // Key name, e.g. organizations/{org}/apiKeys/{key}
	PrivateKeyPath string `yaml:"private_key_path"` // Path to the EC private key PEM file
}

// APIConfig holds REST client settings.
type APIConfig struct {
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries"`
	RateLimiting bool          `yaml:"rate_limiting"`
}

// WebSocketConfig holds streaming connection settings.
type WebSocketConfig struct {
	PublicURL            string        `yaml:"public_url"`
	UserURL              string        `yaml:"user_url"`
	ReconnectBaseDelay   time.Duration `yaml:"reconnect_base_delay"`
	ReconnectMaxDelay    time.Duration `yaml:"reconnect_max_delay"`
	MaxReconnectAttempts int           `yaml:"max_reconnect_attempts"`
	PingInterval         time.Duration `yaml:"ping_interval"`
	ReadTimeout          time.Duration `yaml:"read_timeout"`
	BufferSize           int           `yaml:"buffer_size"`
}

// ChannelConfig names one subscription to establish at startup.
type ChannelConfig struct {
	Name       string   `yaml:"name"`
	ProductIDs []string `yaml:"product_ids"`
}

// StreamConfig lists the startup subscriptions.
type StreamConfig struct {
	Channels []ChannelConfig `yaml:"channels"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// Authenticated reports whether API credentials are configured.
func (c *Config) Authenticated() bool {
	return c.Credentials.APIKey != "" && c.Credentials.PrivateKeyPath != ""
}
