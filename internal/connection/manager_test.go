package connection

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dcompoze/coinbase-advanced/internal/channel"
	"github.com/dcompoze/coinbase-advanced/internal/subscription"
)

type stubTokens struct {
	mu    sync.Mutex
	token string
	err   error
	calls int
}

func (s *stubTokens) SignWS() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.token, s.err
}

func testManagerConfig(url string, ep channel.Endpoint) ManagerConfig {
	cfg := DefaultManagerConfig(url, ep)
	cfg.ReconnectBaseDelay = 5 * time.Millisecond
	cfg.ReconnectMaxDelay = 50 * time.Millisecond
	cfg.MaxReconnectAttempts = 3
	cfg.Client.BufferSize = 100
	return cfg
}

func TestBackoffDelay(t *testing.T) {
	base, max := 1*time.Second, 60*time.Second

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 1 * time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 8 * time.Second},
		{7, 60 * time.Second},  // 64s capped
		{20, 60 * time.Second}, // stays capped
	}

	for _, tt := range tests {
		if got := backoffDelay(base, max, tt.attempt); got != tt.want {
			t.Errorf("backoffDelay(attempt=%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestManager_SubscribeAuthRequired_NoNetwork(t *testing.T) {
	dials := 0

	m := NewManager(testManagerConfig("ws://example.invalid", channel.EndpointUser), nil, subscription.NewRegistry(), nil)
	m.newClient = func() Client {
		dials++
		return nil
	}

	err := m.Subscribe(channel.New(channel.User))
	if !errors.Is(err, ErrAuthRequired) {
		t.Errorf("Subscribe = %v, want ErrAuthRequired", err)
	}
	if dials != 0 {
		t.Errorf("dials = %d, want 0 (no network I/O)", dials)
	}
}

func TestManager_SubscribeNotConnected(t *testing.T) {
	m := NewManager(testManagerConfig("ws://example.invalid", channel.EndpointPublic), nil, subscription.NewRegistry(), nil)

	err := m.Subscribe(channel.New(channel.Ticker, "BTC-USD"))
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("Subscribe = %v, want ErrNotConnected", err)
	}
}

// frameRecorder collects control frames received by a mock server across
// all connections.
type frameRecorder struct {
	mu     sync.Mutex
	frames []controlMessage
}

func (r *frameRecorder) add(data []byte) {
	var msg controlMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	r.mu.Lock()
	r.frames = append(r.frames, msg)
	r.mu.Unlock()
}

func (r *frameRecorder) snapshot() []controlMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]controlMessage(nil), r.frames...)
}

func (r *frameRecorder) waitFor(t *testing.T, n int) []controlMessage {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		if frames := r.snapshot(); len(frames) >= n {
			return frames
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %d control frames, have %d", n, len(r.snapshot()))
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestManager_SubscribePublicFrameShape(t *testing.T) {
	rec := &frameRecorder{}
	server := mockWSServer(t, func(conn *websocket.Conn) {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			rec.add(data)
		}
	})
	defer server.Close()

	m := NewManager(testManagerConfig(wsURL(server), channel.EndpointPublic), nil, subscription.NewRegistry(), nil)
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer m.Stop()

	if err := m.Subscribe(channel.New(channel.Ticker, "BTC-USD")); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	frames := rec.waitFor(t, 1)
	frame := frames[0]

	if frame.Type != "subscribe" {
		t.Errorf("type = %q, want subscribe", frame.Type)
	}
	if frame.Channel != "ticker" {
		t.Errorf("channel = %q, want ticker", frame.Channel)
	}
	if len(frame.ProductIDs) != 1 || frame.ProductIDs[0] != "BTC-USD" {
		t.Errorf("product_ids = %v, want [BTC-USD]", frame.ProductIDs)
	}
	if frame.Timestamp == "" {
		t.Error("timestamp missing on unauthenticated frame")
	}
	if frame.JWT != "" {
		t.Error("jwt present on unauthenticated frame")
	}
}

func TestManager_SubscribeAuthenticatedFrameShape(t *testing.T) {
	rec := &frameRecorder{}
	server := mockWSServer(t, func(conn *websocket.Conn) {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			rec.add(data)
		}
	})
	defer server.Close()

	tokens := &stubTokens{token: "test-jwt"}
	m := NewManager(testManagerConfig(wsURL(server), channel.EndpointUser), tokens, subscription.NewRegistry(), nil)
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer m.Stop()

	if err := m.Subscribe(channel.New(channel.User)); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if err := m.Unsubscribe(channel.New(channel.User)); err != nil {
		t.Fatalf("Unsubscribe failed: %v", err)
	}

	frames := rec.waitFor(t, 2)

	for _, frame := range frames[:2] {
		if frame.JWT != "test-jwt" {
			t.Errorf("jwt = %q, want test-jwt", frame.JWT)
		}
		if frame.Timestamp != "" {
			t.Error("timestamp present on authenticated frame")
		}
	}
	if frames[1].Type != "unsubscribe" {
		t.Errorf("second frame type = %q, want unsubscribe", frames[1].Type)
	}

	// A fresh token is minted for every control frame.
	if tokens.calls != 2 {
		t.Errorf("token provider calls = %d, want 2", tokens.calls)
	}
}

func TestManager_ReplaysSnapshotOnReconnect(t *testing.T) {
	rec := &frameRecorder{}
	var mu sync.Mutex
	conns := 0

	server := mockWSServer(t, func(conn *websocket.Conn) {
		mu.Lock()
		conns++
		first := conns == 1
		mu.Unlock()

		if first {
			// Drop the first connection to force a reconnect.
			conn.Close()
			return
		}
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			rec.add(data)
		}
	})
	defer server.Close()

	registry := subscription.NewRegistry()
	registry.Add(channel.New(channel.Ticker, "BTC-USD"))
	registry.Add(channel.New(channel.Ticker, "ETH-USD"))
	registry.Add(channel.New(channel.Heartbeats))

	m := NewManager(testManagerConfig(wsURL(server), channel.EndpointPublic), nil, registry, nil)
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer m.Stop()

	frames := rec.waitFor(t, 2)

	var channels []string
	for _, f := range frames {
		if f.Type != "subscribe" {
			t.Errorf("replay frame type = %q, want subscribe", f.Type)
		}
		channels = append(channels, f.Channel)
	}
	sort.Strings(channels)

	want := []string{"heartbeats", "ticker"}
	if len(channels) != 2 || channels[0] != want[0] || channels[1] != want[1] {
		t.Errorf("replayed channels = %v, want %v (set equality)", channels, want)
	}

	for _, f := range frames {
		if f.Channel == "ticker" {
			ids := append([]string(nil), f.ProductIDs...)
			sort.Strings(ids)
			if len(ids) != 2 || ids[0] != "BTC-USD" || ids[1] != "ETH-USD" {
				t.Errorf("ticker replay product_ids = %v, want union of both", f.ProductIDs)
			}
		}
	}
}

func TestManager_RetryExhaustedIsTerminal(t *testing.T) {
	server := mockWSServer(t, func(conn *websocket.Conn) {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	m := NewManager(testManagerConfig(wsURL(server), channel.EndpointPublic), nil, subscription.NewRegistry(), nil)
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer m.Stop()

	// Kill the server so the connection drops and every reconnect fails.
	server.CloseClientConnections()
	server.Close()

	var terminal error
	deadline := time.After(5 * time.Second)
	for {
		select {
		case f, ok := <-m.Frames():
			if !ok {
				if terminal == nil {
					t.Fatal("frame channel closed without a terminal error")
				}
				if !errors.Is(terminal, ErrRetryExhausted) {
					t.Errorf("terminal error = %v, want ErrRetryExhausted", terminal)
				}
				if got := m.State(); got != StateDisconnected {
					t.Errorf("State = %q, want disconnected", got)
				}
				return
			}
			if f.Err != nil {
				terminal = f.Err
			}
		case <-deadline:
			t.Fatal("timed out waiting for terminal frame")
		}
	}
}

func TestManager_ContextCancelClosesConnection(t *testing.T) {
	serverClosed := make(chan struct{})
	server := mockWSServer(t, func(conn *websocket.Conn) {
		// ReadMessage returns an error once the client side closes the
		// socket; a leaked client would keep this read blocked.
		if _, _, err := conn.ReadMessage(); err != nil {
			close(serverClosed)
		}
	})
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	m := NewManager(testManagerConfig(wsURL(server), channel.EndpointPublic), nil, subscription.NewRegistry(), nil)
	if err := m.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	cancel()

	// The frame channel must close.
	deadline := time.After(2 * time.Second)
	for open := true; open; {
		select {
		case _, ok := <-m.Frames():
			open = ok
		case <-deadline:
			t.Fatal("frame channel not closed after context cancellation")
		}
	}

	// The socket must be torn down, not left behind with its read loop.
	select {
	case <-serverClosed:
	case <-time.After(2 * time.Second):
		t.Fatal("server connection still open after context cancellation")
	}

	if got := m.State(); got != StateDisconnected {
		t.Errorf("State = %q, want disconnected", got)
	}
}

func TestManager_StopDuringBackoffTerminatesPromptly(t *testing.T) {
	server := mockWSServer(t, func(conn *websocket.Conn) {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	cfg := testManagerConfig(wsURL(server), channel.EndpointPublic)
	cfg.ReconnectBaseDelay = 30 * time.Second // long pending backoff
	cfg.ReconnectMaxDelay = 60 * time.Second

	m := NewManager(cfg, nil, subscription.NewRegistry(), nil)
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Force the manager into its backoff wait.
	server.CloseClientConnections()
	server.Close()
	time.Sleep(50 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		m.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return while backoff was pending")
	}

	// The frame channel must be closed.
	select {
	case _, ok := <-m.Frames():
		if ok {
			// Drain remaining frames; the channel must close eventually.
			for range m.Frames() {
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("frame channel not closed after Stop")
	}
}
