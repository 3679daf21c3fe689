package connection

import (
	"errors"
	"time"

	"github.com/dcompoze/coinbase-advanced/internal/channel"
)

// Errors
var (
	// ErrNotConnected is returned when a control frame is sent while the
	// endpoint is not in the connected state. Control frames are never
	// queued across reconnects.
	ErrNotConnected = errors.New("endpoint not connected")

	// ErrAuthRequired is returned when subscribing to a protected channel
	// with no token provider configured. No network I/O is performed.
	ErrAuthRequired = errors.New("channel requires authentication")

	// ErrRetryExhausted is the terminal error for an endpoint whose
	// reconnect attempt budget ran out.
	ErrRetryExhausted = errors.New("reconnect attempts exhausted")

	// ErrStaleConnection signals a connection with no ping activity.
	ErrStaleConnection = errors.New("connection stale (no ping)")

	// ErrAlreadyClosed is returned by Connect after Close.
	ErrAlreadyClosed = errors.New("already closed")
)

// TokenProvider mints a short-lived signed credential for authenticated
// channels. A fresh token is requested for every control frame.
type TokenProvider interface {
	SignWS() (string, error)
}

// State is the connection state of one endpoint.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateReconnecting State = "reconnecting"
)

// Frame is one inbound item from an endpoint. Either Data is set, or Err
// carries the endpoint's terminal error (the last frame before the channel
// closes).
type Frame struct {
	Endpoint   channel.Endpoint
	Data       []byte
	ReceivedAt time.Time
	Err        error
}

// Inbound wraps raw socket bytes with the local receive timestamp.
type Inbound struct {
	Data       []byte
	ReceivedAt time.Time
}

// controlMessage is the JSON control frame for subscribe and unsubscribe.
// JWT is set only for authenticated channels, Timestamp only otherwise.
type controlMessage struct {
	Type       string   `json:"type"`
	Channel    string   `json:"channel"`
	ProductIDs []string `json:"product_ids,omitempty"`
	JWT        string   `json:"jwt,omitempty"`
	Timestamp  string   `json:"timestamp,omitempty"`
}

// ClientConfig configures a WebSocket client.
type ClientConfig struct {
	URL              string
	HandshakeTimeout time.Duration
	PingInterval     time.Duration // keepalive ping cadence
	PingTimeout      time.Duration // max silence before the connection is stale
	WriteTimeout     time.Duration
	BufferSize       int // inbound message channel capacity
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		HandshakeTimeout: 10 * time.Second,
		PingInterval:     30 * time.Second,
		PingTimeout:      90 * time.Second,
		WriteTimeout:     5 * time.Second,
		BufferSize:       1000,
	}
}

// ManagerConfig configures a connection Manager.
type ManagerConfig struct {
	URL                  string
	Endpoint             channel.Endpoint
	ReconnectBaseDelay   time.Duration
	ReconnectMaxDelay    time.Duration
	MaxReconnectAttempts int
	BufferSize           int // output frame channel capacity
	Client               ClientConfig
}

// DefaultManagerConfig returns defaults for the given endpoint URL.
func DefaultManagerConfig(url string, ep channel.Endpoint) ManagerConfig {
	return ManagerConfig{
		URL:                  url,
		Endpoint:             ep,
		ReconnectBaseDelay:   1 * time.Second,
		ReconnectMaxDelay:    60 * time.Second,
		MaxReconnectAttempts: 10,
		BufferSize:           1000,
		Client:               DefaultClientConfig(),
	}
}

// backoffDelay returns the wait before reconnect attempt n (1-based):
// base doubled per attempt, capped at max.
func backoffDelay(base, max time.Duration, attempt int) time.Duration {
	d := base
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= max {
			return max
		}
	}
	if d > max {
		return max
	}
	return d
}
