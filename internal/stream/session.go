package stream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dcompoze/coinbase-advanced/internal/channel"
	"github.com/dcompoze/coinbase-advanced/internal/connection"
	"github.com/dcompoze/coinbase-advanced/internal/model"
	"github.com/dcompoze/coinbase-advanced/internal/subscription"
)

// Default WebSocket endpoints.
const (
	DefaultPublicURL = "wss://advanced-trade-ws.coinbase.com"
	DefaultUserURL   = "wss://advanced-trade-ws-user.coinbase.com"
)

var (
	// ErrProtocol marks an inbound frame that could not be decoded. It is
	// delivered as a stream item and never terminates the stream.
	ErrProtocol = errors.New("malformed frame")

	// ErrClosed is returned by Subscribe/Unsubscribe after Close.
	ErrClosed = errors.New("session closed")

	// ErrEndpointNotConfigured marks any use of the user endpoint on a
	// session built without credentials. The condition is permanent and
	// never retried. It wraps connection.ErrAuthRequired, so callers
	// checking for the broader auth failure still match.
	ErrEndpointNotConfigured = fmt.Errorf("user endpoint not configured: %w", connection.ErrAuthRequired)
)

// Item is one element of the multiplexed stream. Exactly one of Message and
// Err is set. Raw holds the undecodable payload when Err is ErrProtocol.
type Item struct {
	Endpoint   channel.Endpoint
	Message    *model.Message
	Raw        []byte
	ReceivedAt time.Time
	Err        error
}

// Config configures a Session.
type Config struct {
	PublicURL string
	UserURL   string

	ReconnectBaseDelay   time.Duration
	ReconnectMaxDelay    time.Duration
	MaxReconnectAttempts int

	// BufferSize is the multiplexed output channel capacity.
	BufferSize int

	Client connection.ClientConfig
}

// DefaultConfig returns production endpoint defaults.
func DefaultConfig() Config {
	return Config{
		PublicURL:            DefaultPublicURL,
		UserURL:              DefaultUserURL,
		ReconnectBaseDelay:   1 * time.Second,
		ReconnectMaxDelay:    60 * time.Second,
		MaxReconnectAttempts: 10,
		BufferSize:           1000,
		Client:               connection.DefaultClientConfig(),
	}
}

func (c Config) applyDefaults() Config {
	def := DefaultConfig()
	if c.PublicURL == "" {
		c.PublicURL = def.PublicURL
	}
	if c.UserURL == "" {
		c.UserURL = def.UserURL
	}
	if c.ReconnectBaseDelay == 0 {
		c.ReconnectBaseDelay = def.ReconnectBaseDelay
	}
	if c.ReconnectMaxDelay == 0 {
		c.ReconnectMaxDelay = def.ReconnectMaxDelay
	}
	if c.MaxReconnectAttempts == 0 {
		c.MaxReconnectAttempts = def.MaxReconnectAttempts
	}
	if c.BufferSize == 0 {
		c.BufferSize = def.BufferSize
	}
	if c.Client.HandshakeTimeout == 0 {
		c.Client = def.Client
	}
	return c
}

// Session owns both endpoint managers and the subscription registry, and
// exposes one multiplexed inbound item stream.
type Session struct {
	cfg      Config
	tokens   connection.TokenProvider
	registry *subscription.Registry
	logger   *slog.Logger

	public *connection.Manager
	user   *connection.Manager // nil without credentials

	out     chan Item
	outOnce sync.Once

	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group

	mu      sync.Mutex
	started bool
	closed  bool
}

// NewSession creates a Session. tokens may be nil: the user endpoint is then
// never opened and subscribing to protected channels fails immediately.
func NewSession(cfg Config, tokens connection.TokenProvider, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.applyDefaults()

	registry := subscription.NewRegistry()

	s := &Session{
		cfg:      cfg,
		tokens:   tokens,
		registry: registry,
		logger:   logger,
		out:      make(chan Item, cfg.BufferSize),
	}

	s.public = connection.NewManager(s.managerConfig(cfg.PublicURL, channel.EndpointPublic), nil, registry, logger)
	if tokens != nil {
		s.user = connection.NewManager(s.managerConfig(cfg.UserURL, channel.EndpointUser), tokens, registry, logger)
	}

	return s
}

func (s *Session) managerConfig(url string, ep channel.Endpoint) connection.ManagerConfig {
	return connection.ManagerConfig{
		URL:                  url,
		Endpoint:             ep,
		ReconnectBaseDelay:   s.cfg.ReconnectBaseDelay,
		ReconnectMaxDelay:    s.cfg.ReconnectMaxDelay,
		MaxReconnectAttempts: s.cfg.MaxReconnectAttempts,
		BufferSize:           s.cfg.BufferSize,
		Client:               s.cfg.Client,
	}
}

// Start connects the public endpoint, and the user endpoint when
// credentials are configured, then begins multiplexing inbound frames.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return fmt.Errorf("session already started")
	}
	s.started = true
	s.mu.Unlock()

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.group, _ = errgroup.WithContext(s.ctx)

	if err := s.public.Start(s.ctx); err != nil {
		s.cancel()
		s.closeOutput()
		return err
	}

	if s.user != nil {
		if err := s.user.Start(s.ctx); err != nil {
			s.public.Stop()
			s.cancel()
			s.closeOutput()
			return err
		}
	}

	s.group.Go(func() error {
		s.forward(s.public)
		return nil
	})
	if s.user != nil {
		s.group.Go(func() error {
			s.forward(s.user)
			return nil
		})
	}

	// The output closes once every endpoint's contribution has stopped.
	go func() {
		s.group.Wait()
		s.closeOutput()
	}()

	s.logger.Info("session started",
		"public_url", s.cfg.PublicURL,
		"user_endpoint", s.user != nil,
	)

	return nil
}

// Messages returns the multiplexed inbound stream. The channel closes when
// every endpoint has stopped, or after Close.
func (s *Session) Messages() <-chan Item {
	return s.out
}

// Subscribe sends subscribe control frames for the given channels, fanning
// each out to its endpoint's manager. The registry is updated only after a
// channel's control frame was accepted, so a failed dispatch is never
// replayed. The first failure stops the fan-out and is returned.
func (s *Session) Subscribe(channels ...channel.Channel) error {
	for _, ch := range channels {
		mgr, err := s.managerFor(ch)
		if err != nil {
			return err
		}
		if err := mgr.Subscribe(ch); err != nil {
			return err
		}
		s.registry.Add(ch)
	}
	return nil
}

// Unsubscribe sends unsubscribe control frames for the given channels.
// Unsubscribing a channel that was never subscribed is a registry no-op,
// though the control frame is still sent.
func (s *Session) Unsubscribe(channels ...channel.Channel) error {
	for _, ch := range channels {
		mgr, err := s.managerFor(ch)
		if err != nil {
			return err
		}
		if err := mgr.Unsubscribe(ch); err != nil {
			return err
		}
		s.registry.Remove(ch)
	}
	return nil
}

func (s *Session) managerFor(ch channel.Channel) (*connection.Manager, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	switch ch.Endpoint() {
	case channel.EndpointUser:
		if s.user == nil {
			// No credentials configured: fail before any network I/O.
			return nil, fmt.Errorf("%s channel: %w", ch.WireName(), ErrEndpointNotConfigured)
		}
		return s.user, nil
	default:
		return s.public, nil
	}
}

// Close tears down both endpoints. Pending backoff waits are cancelled and
// the message channel closes promptly. Close is idempotent.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	started := s.started
	s.mu.Unlock()

	if !started {
		s.closeOutput()
		return nil
	}

	s.cancel()
	s.public.Stop()
	if s.user != nil {
		s.user.Stop()
	}
	s.group.Wait()

	s.logger.Info("session closed")
	return nil
}

// closeOutput closes the message channel exactly once. Start failures,
// teardown before Start, and the end of the forwarding group all funnel
// through here.
func (s *Session) closeOutput() {
	s.outOnce.Do(func() { close(s.out) })
}

// forward decodes one endpoint's frames into stream items. Decode failures
// become ErrProtocol items; the endpoint's terminal error is passed through
// as the final item before its channel closes.
func (s *Session) forward(mgr *connection.Manager) {
	for frame := range mgr.Frames() {
		item := Item{
			Endpoint:   frame.Endpoint,
			ReceivedAt: frame.ReceivedAt,
		}

		switch {
		case frame.Err != nil:
			item.Err = frame.Err
		default:
			msg, err := model.Decode(frame.Data)
			if err != nil {
				item.Err = fmt.Errorf("%w: %v", ErrProtocol, err)
				item.Raw = frame.Data
			} else {
				item.Message = msg
			}
		}

		select {
		case s.out <- item:
		case <-s.ctx.Done():
			return
		}
	}

	s.logger.Debug("endpoint stream ended", "endpoint", mgr.Endpoint())
}
