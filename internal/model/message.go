package model

import (
	"encoding/json"
	"fmt"

	"github.com/dcompoze/coinbase-advanced/internal/channel"
)

// Message is one inbound frame from either WebSocket endpoint.
//
// The envelope is decoded on receipt; Events stays raw until a typed
// accessor is called, because the payload shape depends on the channel.
type Message struct {
	Channel     channel.Kind    `json:"channel"`
	ClientID    string          `json:"client_id"`
	Timestamp   string          `json:"timestamp"`
	SequenceNum uint64          `json:"sequence_num"`
	Events      json.RawMessage `json:"events"`
}

// Decode parses a raw frame into a Message.
func Decode(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	if msg.Channel == "" {
		return nil, fmt.Errorf("decode frame: missing channel")
	}
	msg.Channel = msg.Channel.Canonical()
	return &msg, nil
}

func (m *Message) decodeEvents(v any) error {
	if err := json.Unmarshal(m.Events, v); err != nil {
		return fmt.Errorf("decode %s events: %w", m.Channel, err)
	}
	return nil
}

// TickerEvents decodes the events of a ticker or ticker_batch frame.
func (m *Message) TickerEvents() ([]TickerEvent, error) {
	var events []TickerEvent
	return events, m.decodeEvents(&events)
}

// Level2Events decodes the events of a level2 frame.
func (m *Message) Level2Events() ([]Level2Event, error) {
	var events []Level2Event
	return events, m.decodeEvents(&events)
}

// CandlesEvents decodes the events of a candles frame.
func (m *Message) CandlesEvents() ([]CandlesEvent, error) {
	var events []CandlesEvent
	return events, m.decodeEvents(&events)
}

// MarketTradesEvents decodes the events of a market_trades frame.
func (m *Message) MarketTradesEvents() ([]MarketTradesEvent, error) {
	var events []MarketTradesEvent
	return events, m.decodeEvents(&events)
}

// StatusEvents decodes the events of a status frame.
func (m *Message) StatusEvents() ([]StatusEvent, error) {
	var events []StatusEvent
	return events, m.decodeEvents(&events)
}

// HeartbeatEvents decodes the events of a heartbeats frame.
func (m *Message) HeartbeatEvents() ([]HeartbeatEvent, error) {
	var events []HeartbeatEvent
	return events, m.decodeEvents(&events)
}

// UserEvents decodes the events of a user frame.
func (m *Message) UserEvents() ([]UserEvent, error) {
	var events []UserEvent
	return events, m.decodeEvents(&events)
}

// FuturesBalanceSummaryEvents decodes the events of a
// futures_balance_summary frame.
func (m *Message) FuturesBalanceSummaryEvents() ([]FuturesBalanceSummaryEvent, error) {
	var events []FuturesBalanceSummaryEvent
	return events, m.decodeEvents(&events)
}

// SubscriptionsEvents decodes the events of a subscriptions ack frame.
func (m *Message) SubscriptionsEvents() ([]SubscriptionsEvent, error) {
	var events []SubscriptionsEvent
	return events, m.decodeEvents(&events)
}
