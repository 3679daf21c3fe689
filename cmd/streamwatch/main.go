// streamwatch connects to the Coinbase Advanced Trade WebSocket feeds and
// streams decoded messages to the console.
//
// Usage: go run ./cmd/streamwatch --config configs/client.example.yaml
//
// Credentials come from the config file, or from the environment:
//
//	COINBASE_API_KEY     - CDP API key name
//	COINBASE_PRIVATE_KEY - EC private key PEM
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dcompoze/coinbase-advanced/internal/auth"
	"github.com/dcompoze/coinbase-advanced/internal/channel"
	"github.com/dcompoze/coinbase-advanced/internal/config"
	"github.com/dcompoze/coinbase-advanced/internal/connection"
	"github.com/dcompoze/coinbase-advanced/internal/stream"
	"github.com/dcompoze/coinbase-advanced/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/client.example.yaml", "path to config file")
	verbose := flag.Bool("verbose", false, "print full message JSON")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("streamwatch", version.String())
		return
	}

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal")
		cancel()
	}()

	creds := loadCredentials(cfg, logger)

	streamCfg := stream.Config{
		PublicURL:            cfg.WebSocket.PublicURL,
		UserURL:              cfg.WebSocket.UserURL,
		ReconnectBaseDelay:   cfg.WebSocket.ReconnectBaseDelay,
		ReconnectMaxDelay:    cfg.WebSocket.ReconnectMaxDelay,
		MaxReconnectAttempts: cfg.WebSocket.MaxReconnectAttempts,
		BufferSize:           cfg.WebSocket.BufferSize,
		Client: connection.ClientConfig{
			HandshakeTimeout: 10 * time.Second,
			PingInterval:     cfg.WebSocket.PingInterval,
			PingTimeout:      cfg.WebSocket.ReadTimeout,
			WriteTimeout:     5 * time.Second,
			BufferSize:       cfg.WebSocket.BufferSize,
		},
	}

	var tokens connection.TokenProvider
	if creds != nil {
		tokens = creds
	}

	session := stream.NewSession(streamCfg, tokens, logger)
	if err := session.Start(ctx); err != nil {
		logger.Error("failed to start session", "error", err)
		os.Exit(1)
	}

	for _, ch := range cfg.Stream.Channels {
		kind := channel.Kind(ch.Name).Canonical()
		if err := session.Subscribe(channel.New(kind, ch.ProductIDs...)); err != nil {
			logger.Error("subscribe failed", "channel", ch.Name, "error", err)
			session.Close()
			os.Exit(1)
		}
		logger.Info("subscribed", "channel", kind, "products", ch.ProductIDs)
	}

	logger.Info("streaming started - press Ctrl+C to stop")

	var received, decodeErrors uint64
	statsTicker := time.NewTicker(10 * time.Second)
	defer statsTicker.Stop()

	for {
		select {
		case <-statsTicker.C:
			logger.Info("stats", "received", received, "decode_errors", decodeErrors)

		case item, ok := <-session.Messages():
			if !ok {
				logger.Info("stream terminated")
				session.Close()
				return
			}
			switch {
			case errors.Is(item.Err, stream.ErrProtocol):
				decodeErrors++
				logger.Warn("undecodable frame", "endpoint", item.Endpoint, "error", item.Err)
			case item.Err != nil:
				logger.Error("endpoint failed", "endpoint", item.Endpoint, "error", item.Err)
			default:
				received++
				printItem(item, *verbose)
			}
		}
	}
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// loadCredentials tries the config file first, then the environment.
// Returns nil when neither is configured.
func loadCredentials(cfg *config.Config, logger *slog.Logger) *auth.Credentials {
	if cfg.Authenticated() {
		creds, err := auth.LoadCredentials(cfg.Credentials.APIKey, cfg.Credentials.PrivateKeyPath)
		if err != nil {
			logger.Error("failed to load credentials", "error", err)
			os.Exit(1)
		}
		return creds
	}

	creds, err := auth.FromEnv()
	if err != nil {
		logger.Info("no credentials configured - public channels only")
		return nil
	}
	return creds
}

func printItem(item stream.Item, verbose bool) {
	if verbose {
		data, _ := json.MarshalIndent(item.Message, "", "  ")
		fmt.Printf("[%s] %s\n", item.Endpoint, data)
		return
	}
	fmt.Printf("[%s] channel=%s seq=%d events=%d\n",
		item.Endpoint, item.Message.Channel, item.Message.SequenceNum, countEvents(item.Message.Events))
}

func countEvents(events json.RawMessage) int {
	var raw []json.RawMessage
	if json.Unmarshal(events, &raw) != nil {
		return 0
	}
	return len(raw)
}
