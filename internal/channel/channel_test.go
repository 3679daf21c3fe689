package channel

import "testing"

func TestKind_Endpoint(t *testing.T) {
	tests := []struct {
		kind Kind
		want Endpoint
	}{
		{Heartbeats, EndpointPublic},
		{Status, EndpointPublic},
		{Ticker, EndpointPublic},
		{TickerBatch, EndpointPublic},
		{Level2, EndpointPublic},
		{Candles, EndpointPublic},
		{MarketTrades, EndpointPublic},
		{User, EndpointUser},
		{FuturesBalanceSummary, EndpointUser},
	}

	for _, tt := range tests {
		if got := tt.kind.Endpoint(); got != tt.want {
			t.Errorf("%s.Endpoint() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKind_RequiresAuth(t *testing.T) {
	for _, kind := range []Kind{User, FuturesBalanceSummary} {
		if !kind.RequiresAuth() {
			t.Errorf("%s.RequiresAuth() = false, want true", kind)
		}
	}
	for _, kind := range []Kind{Heartbeats, Status, Ticker, TickerBatch, Level2, Candles, MarketTrades} {
		if kind.RequiresAuth() {
			t.Errorf("%s.RequiresAuth() = true, want false", kind)
		}
	}
}

func TestKind_IsValid(t *testing.T) {
	if !Ticker.IsValid() {
		t.Error("ticker should be valid")
	}
	if Subscriptions.IsValid() {
		t.Error("subscriptions is receive-only, must not be subscribable")
	}
	if Kind("orderbook").IsValid() {
		t.Error("unknown kind should be invalid")
	}
}

func TestNew_DropsProductsForUnscopedKinds(t *testing.T) {
	ch := New(Heartbeats, "BTC-USD")
	if len(ch.ProductIDs) != 0 {
		t.Errorf("ProductIDs = %v, want empty for unscoped kind", ch.ProductIDs)
	}

	ch = New(Level2, "BTC-USD", "ETH-USD")
	if len(ch.ProductIDs) != 2 {
		t.Errorf("ProductIDs = %v, want 2 ids", ch.ProductIDs)
	}
}

func TestKind_Canonical(t *testing.T) {
	if got := L2Data.Canonical(); got != Level2 {
		t.Errorf("l2_data.Canonical() = %q, want level2", got)
	}
	if got := Ticker.Canonical(); got != Ticker {
		t.Errorf("ticker.Canonical() = %q, want ticker", got)
	}
}

func TestChannel_WireName(t *testing.T) {
	if got := New(TickerBatch).WireName(); got != "ticker_batch" {
		t.Errorf("WireName() = %q, want %q", got, "ticker_batch")
	}
}
