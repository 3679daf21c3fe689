package connection

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/dcompoze/coinbase-advanced/internal/channel"
	"github.com/dcompoze/coinbase-advanced/internal/subscription"
)

// Manager owns one endpoint's socket: it connects, sends control frames,
// detects failures, reconnects with exponential backoff, and replays the
// registry's snapshot for its endpoint after every reconnect.
type Manager struct {
	cfg      ManagerConfig
	endpoint channel.Endpoint
	tokens   TokenProvider // nil when no credentials are configured
	registry *subscription.Registry
	logger   *slog.Logger

	mu     sync.Mutex
	state  State
	client Client

	out chan Frame

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// Overridable in tests.
	newClient func() Client
}

// NewManager creates a Manager for one endpoint. tokens may be nil for the
// public endpoint; the user endpoint requires a provider to subscribe to
// any of its channels.
func NewManager(cfg ManagerConfig, tokens TokenProvider, registry *subscription.Registry, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("endpoint", cfg.Endpoint)

	clientCfg := cfg.Client
	clientCfg.URL = cfg.URL

	m := &Manager{
		cfg:      cfg,
		endpoint: cfg.Endpoint,
		tokens:   tokens,
		registry: registry,
		logger:   logger,
		state:    StateDisconnected,
		out:      make(chan Frame, cfg.BufferSize),
	}
	m.newClient = func() Client {
		return NewClient(clientCfg, logger)
	}
	return m
}

// Endpoint returns the endpoint this manager owns.
func (m *Manager) Endpoint() channel.Endpoint {
	return m.endpoint
}

// State returns the current connection state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Frames returns the endpoint's inbound frame channel. The channel closes
// when the endpoint stops, either by Stop or terminally after its reconnect
// budget is exhausted; in the latter case the last frame carries the error.
func (m *Manager) Frames() <-chan Frame {
	return m.out
}

// Start connects the endpoint and begins reading. A failed initial connect
// leaves the manager disconnected and is returned to the caller.
func (m *Manager) Start(ctx context.Context) error {
	m.ctx, m.cancel = context.WithCancel(ctx)

	m.setState(StateConnecting)

	cl := m.newClient()
	if err := cl.Connect(m.ctx); err != nil {
		m.setState(StateDisconnected)
		return fmt.Errorf("connect %s endpoint: %w", m.endpoint, err)
	}

	m.mu.Lock()
	m.client = cl
	m.state = StateConnected
	m.mu.Unlock()

	m.wg.Add(1)
	go m.runLoop(cl)

	m.logger.Info("endpoint connected", "url", m.cfg.URL)

	return nil
}

// Stop tears the endpoint down. Any in-flight backoff wait is cancelled and
// the frame channel closes promptly.
func (m *Manager) Stop() {
	if m.cancel != nil {
		m.cancel()
	}

	m.mu.Lock()
	cl := m.client
	m.client = nil
	m.state = StateDisconnected
	m.mu.Unlock()

	if cl != nil {
		cl.Close()
	}

	m.wg.Wait()
}

// Subscribe sends a subscribe control frame for the channel.
func (m *Manager) Subscribe(ch channel.Channel) error {
	return m.sendControl("subscribe", ch)
}

// Unsubscribe sends an unsubscribe control frame for the channel.
func (m *Manager) Unsubscribe(ch channel.Channel) error {
	return m.sendControl("unsubscribe", ch)
}

// sendControl builds and sends one control frame. Authenticated channels
// get a token minted per frame; tokens are short-lived and never cached.
// Unauthenticated frames carry a wall-clock timestamp instead.
func (m *Manager) sendControl(action string, ch channel.Channel) error {
	if ch.RequiresAuth() && m.tokens == nil {
		return fmt.Errorf("%s channel: %w", ch.WireName(), ErrAuthRequired)
	}

	msg := controlMessage{
		Type:       action,
		Channel:    ch.WireName(),
		ProductIDs: ch.ProductIDs,
	}

	if ch.RequiresAuth() {
		token, err := m.tokens.SignWS()
		if err != nil {
			return fmt.Errorf("sign %s control frame: %w", ch.WireName(), err)
		}
		msg.JWT = token
	} else {
		msg.Timestamp = strconv.FormatInt(time.Now().Unix(), 10)
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode control frame: %w", err)
	}

	// The write happens under the state lock so it can never race a
	// reconnect swapping the client out underneath it.
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateConnected || m.client == nil {
		return fmt.Errorf("%s endpoint: %w", m.endpoint, ErrNotConnected)
	}

	if err := m.client.Send(data); err != nil {
		return fmt.Errorf("send %s %s: %w", action, ch.WireName(), err)
	}

	m.logger.Debug("control frame sent",
		"action", action,
		"channel", ch.WireName(),
		"product_ids", len(ch.ProductIDs),
	)

	return nil
}

// runLoop reads frames from the current client, reconnecting on failure.
// It is the sole closer of the output channel.
func (m *Manager) runLoop(cl Client) {
	defer m.wg.Done()
	defer close(m.out)
	// Whichever client is current when the loop exits must be closed here:
	// a cancelled context would otherwise leave the socket open and its
	// read loop running. Also covers a client installed by a reconnect that
	// Stop did not observe.
	defer func() {
		cl.Close()
		m.mu.Lock()
		if m.client == cl {
			m.client = nil
		}
		m.state = StateDisconnected
		m.mu.Unlock()
	}()

	for {
		select {
		case <-m.ctx.Done():
			return

		case err := <-cl.Errors():
			m.logger.Warn("connection lost", "error", err)
			cl.Close()

			next, rerr := m.reconnect()
			if rerr != nil {
				if m.ctx.Err() != nil {
					return
				}
				m.emit(Frame{Endpoint: m.endpoint, Err: rerr})
				return
			}
			cl = next

		case msg, ok := <-cl.Messages():
			if !ok {
				return
			}
			m.emit(Frame{
				Endpoint:   m.endpoint,
				Data:       msg.Data,
				ReceivedAt: msg.ReceivedAt,
			})
		}
	}
}

func (m *Manager) emit(f Frame) {
	select {
	case m.out <- f:
	case <-m.ctx.Done():
	}
}

// reconnect runs the backoff loop until a connect succeeds or the attempt
// budget is exhausted. On success the registry snapshot for this endpoint
// is replayed as subscribe frames.
func (m *Manager) reconnect() (Client, error) {
	m.setState(StateReconnecting)

	for attempt := 1; attempt <= m.cfg.MaxReconnectAttempts; attempt++ {
		delay := backoffDelay(m.cfg.ReconnectBaseDelay, m.cfg.ReconnectMaxDelay, attempt)
		m.logger.Info("reconnecting", "attempt", attempt, "delay", delay)

		select {
		case <-m.ctx.Done():
			m.setState(StateDisconnected)
			return nil, m.ctx.Err()
		case <-time.After(delay):
		}

		cl := m.newClient()
		if err := cl.Connect(m.ctx); err != nil {
			m.logger.Warn("reconnect failed", "attempt", attempt, "error", err)
			continue
		}

		m.mu.Lock()
		m.client = cl
		m.state = StateConnected
		m.mu.Unlock()

		m.logger.Info("reconnected", "attempt", attempt)
		m.replaySubscriptions()

		return cl, nil
	}

	m.setState(StateDisconnected)
	return nil, fmt.Errorf("%s endpoint: %w after %d attempts",
		m.endpoint, ErrRetryExhausted, m.cfg.MaxReconnectAttempts)
}

// replaySubscriptions re-sends the registry's current snapshot for this
// endpoint. The snapshot is set-based; no ordering is preserved.
func (m *Manager) replaySubscriptions() {
	snapshot := m.registry.Snapshot(m.endpoint)
	for _, entry := range snapshot {
		if err := m.Subscribe(entry.Channel()); err != nil {
			m.logger.Warn("resubscribe failed",
				"channel", entry.Kind,
				"error", err,
			)
		}
	}

	if len(snapshot) > 0 {
		m.logger.Info("subscriptions replayed", "count", len(snapshot))
	}
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}
