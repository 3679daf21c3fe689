package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMarketBuyQuoteShape(t *testing.T) {
	req := MarketBuyQuote("BTC-USD", "100")

	if req.ClientOrderID == "" {
		t.Error("ClientOrderID not generated")
	}
	if req.Side != Buy {
		t.Errorf("Side = %q, want BUY", req.Side)
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)
	if !strings.Contains(body, `"market_market_ioc":{"quote_size":"100"}`) {
		t.Errorf("body = %s, want market_market_ioc with quote_size only", body)
	}
	if strings.Contains(body, "limit_limit_gtc") {
		t.Errorf("body = %s, must not carry a limit configuration", body)
	}
}

func TestLimitOrderGTCShape(t *testing.T) {
	req := LimitOrderGTC("ETH-USD", Sell, "0.5", "3500.00", true)

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)
	for _, want := range []string{`"base_size":"0.5"`, `"limit_price":"3500.00"`, `"post_only":true`, `"side":"SELL"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body = %s, missing %s", body, want)
		}
	}
}

func TestCreateOrderValidation(t *testing.T) {
	c := NewClient(testCredentials(t), WithBaseURL("http://example.invalid"))
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateOrderRequest
	}{
		{"missing product", CreateOrderRequest{ClientOrderID: "x", Side: Buy, OrderConfiguration: OrderConfiguration{MarketIOC: &MarketIOC{QuoteSize: "1"}}}},
		{"missing configuration", CreateOrderRequest{ClientOrderID: "x", ProductID: "BTC-USD", Side: Buy}},
		{"both sizes set", CreateOrderRequest{ClientOrderID: "x", ProductID: "BTC-USD", Side: Buy, OrderConfiguration: OrderConfiguration{MarketIOC: &MarketIOC{QuoteSize: "1", BaseSize: "1"}}}},
		{"bad side", CreateOrderRequest{ClientOrderID: "x", ProductID: "BTC-USD", Side: "HOLD", OrderConfiguration: OrderConfiguration{MarketIOC: &MarketIOC{QuoteSize: "1"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.CreateOrder(ctx, tt.req); err == nil {
				t.Error("CreateOrder accepted an invalid request")
			}
		})
	}
}

func TestCreateOrderRejectionIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/brokerage/orders" {
			t.Errorf("path = %q, want /api/v3/brokerage/orders", r.URL.Path)
		}
		json.NewEncoder(w).Encode(CreateOrderResponse{
			Success:       false,
			FailureReason: "INSUFFICIENT_FUND",
		})
	}))
	defer srv.Close()

	c := NewClient(testCredentials(t), WithBaseURL(srv.URL))
	resp, err := c.CreateOrder(context.Background(), MarketBuyQuote("BTC-USD", "1000000"))
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if resp.Success {
		t.Error("Success = true, want rejection")
	}
	if resp.FailureReason != "INSUFFICIENT_FUND" {
		t.Errorf("FailureReason = %q, want INSUFFICIENT_FUND", resp.FailureReason)
	}
}

func TestCancelOrders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req CancelOrdersRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.OrderIDs) != 2 {
			t.Errorf("len(OrderIDs) = %d, want 2", len(req.OrderIDs))
		}
		json.NewEncoder(w).Encode(CancelOrdersResponse{
			Results: []CancelOrderResult{
				{Success: true, OrderID: req.OrderIDs[0]},
				{Success: true, OrderID: req.OrderIDs[1]},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(testCredentials(t), WithBaseURL(srv.URL))
	resp, err := c.CancelOrders(context.Background(), "o1", "o2")
	if err != nil {
		t.Fatalf("CancelOrders failed: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Errorf("len(Results) = %d, want 2", len(resp.Results))
	}

	if _, err := c.CancelOrders(context.Background()); err == nil {
		t.Error("CancelOrders with no ids should fail")
	}
}
