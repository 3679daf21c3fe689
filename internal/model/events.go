package model

// EventType distinguishes an initial snapshot from an incremental update.
type EventType string

const (
	EventSnapshot EventType = "snapshot"
	EventUpdate   EventType = "update"
)

// TickerEvent carries ticker or ticker_batch updates.
type TickerEvent struct {
	Type    EventType      `json:"type"`
	Tickers []TickerUpdate `json:"tickers"`
}

// TickerUpdate is one product's ticker state. Prices are decimal strings as
// sent by the exchange.
type TickerUpdate struct {
	Type                string `json:"type"`
	ProductID           string `json:"product_id"`
	Price               string `json:"price"`
	Volume24H           string `json:"volume_24_h"`
	Low24H              string `json:"low_24_h"`
	High24H             string `json:"high_24_h"`
	Low52W              string `json:"low_52_w"`
	High52W             string `json:"high_52_w"`
	PricePercentChg24H  string `json:"price_percent_chg_24_h"`
	BestBid             string `json:"best_bid"`
	BestAsk             string `json:"best_ask"`
}

// Level2Side is the side of an order book level.
type Level2Side string

const (
	Level2Bid Level2Side = "bid"
	// The exchange uses "offer" for the ask side in level2 updates.
	Level2Offer Level2Side = "offer"
)

// Level2Event carries order book updates for one product.
type Level2Event struct {
	Type      EventType      `json:"type"`
	ProductID string         `json:"product_id"`
	Updates   []Level2Update `json:"updates"`
}

// Level2Update sets the quantity at one price level.
type Level2Update struct {
	Side        Level2Side `json:"side"`
	EventTime   string     `json:"event_time"`
	PriceLevel  string     `json:"price_level"`
	NewQuantity string     `json:"new_quantity"`
}

// CandlesEvent carries OHLCV candle updates.
type CandlesEvent struct {
	Type    EventType `json:"type"`
	Candles []Candle  `json:"candles"`
}

// Candle is one OHLCV bar.
type Candle struct {
	ProductID string `json:"product_id"`
	Start     string `json:"start"`
	Open      string `json:"open"`
	High      string `json:"high"`
	Low       string `json:"low"`
	Close     string `json:"close"`
	Volume    string `json:"volume"`
}

// MarketTradesEvent carries executed trade updates.
type MarketTradesEvent struct {
	Type   EventType `json:"type"`
	Trades []Trade   `json:"trades"`
}

// Trade is one executed trade.
type Trade struct {
	TradeID   string `json:"trade_id"`
	ProductID string `json:"product_id"`
	Price     string `json:"price"`
	Size      string `json:"size"`
	Side      string `json:"side"`
	Time      string `json:"time"`
}

// StatusEvent carries product status updates.
type StatusEvent struct {
	Type     EventType       `json:"type"`
	Products []ProductStatus `json:"products"`
}

// ProductStatus describes one product's tradability.
type ProductStatus struct {
	ProductType    string `json:"product_type"`
	ID             string `json:"id"`
	BaseCurrency   string `json:"base_currency"`
	QuoteCurrency  string `json:"quote_currency"`
	BaseIncrement  string `json:"base_increment"`
	QuoteIncrement string `json:"quote_increment"`
	DisplayName    string `json:"display_name"`
	Status         string `json:"status"`
	StatusMessage  string `json:"status_message"`
	MinMarketFunds string `json:"min_market_funds"`
}

// HeartbeatEvent is a keepalive from the server.
type HeartbeatEvent struct {
	CurrentTime      string `json:"current_time"`
	HeartbeatCounter uint64 `json:"heartbeat_counter"`
}

// UserEvent carries order updates for the authenticated user.
type UserEvent struct {
	Type   EventType     `json:"type"`
	Orders []OrderUpdate `json:"orders"`
}

// OrderUpdate is one order's state on the user channel.
type OrderUpdate struct {
	AvgPrice            string `json:"avg_price"`
	CancelReason        string `json:"cancel_reason"`
	ClientOrderID       string `json:"client_order_id"`
	CompletionPct       string `json:"completion_percentage"`
	CumulativeQuantity  string `json:"cumulative_quantity"`
	FilledValue         string `json:"filled_value"`
	LeavesQuantity      string `json:"leaves_quantity"`
	LimitPrice          string `json:"limit_price"`
	NumberOfFills       string `json:"number_of_fills"`
	OrderID             string `json:"order_id"`
	OrderSide           string `json:"order_side"`
	OrderType           string `json:"order_type"`
	OutstandingHold     string `json:"outstanding_hold_amount"`
	PostOnly            bool   `json:"post_only"`
	ProductID           string `json:"product_id"`
	ProductType         string `json:"product_type"`
	RejectReason        string `json:"reject_reason"`
	RetailPortfolioID   string `json:"retail_portfolio_id"`
	Status              string `json:"status"`
	StopPrice           string `json:"stop_price"`
	TimeInForce         string `json:"time_in_force"`
	TotalFees           string `json:"total_fees"`
	TotalValueAfterFees string `json:"total_value_after_fees"`
	TriggerStatus       string `json:"trigger_status"`
	CreationTime        string `json:"creation_time"`
	EndTime             string `json:"end_time"`
	StartTime           string `json:"start_time"`
}

// FuturesBalanceSummaryEvent carries the user's futures balance summary.
type FuturesBalanceSummaryEvent struct {
	Type              EventType             `json:"type"`
	FCMBalanceSummary FuturesBalanceSummary `json:"fcm_balance_summary"`
}

// FuturesBalanceSummary is the futures account balance breakdown.
type FuturesBalanceSummary struct {
	FuturesBuyingPower        string `json:"futures_buying_power"`
	TotalUSDBalance           string `json:"total_usd_balance"`
	CBIUSDBalance             string `json:"cbi_usd_balance"`
	CFMUSDBalance             string `json:"cfm_usd_balance"`
	TotalOpenOrdersHoldAmount string `json:"total_open_orders_hold_amount"`
	UnrealizedPNL             string `json:"unrealized_pnl"`
	DailyRealizedPNL          string `json:"daily_realized_pnl"`
	InitialMargin             string `json:"initial_margin"`
	AvailableMargin           string `json:"available_margin"`
	LiquidationThreshold      string `json:"liquidation_threshold"`
	LiquidationBufferAmount   string `json:"liquidation_buffer_amount"`
	LiquidationBufferPct      string `json:"liquidation_buffer_percentage"`
}

// SubscriptionsEvent is the server's acknowledgement of the current
// subscription set after a subscribe or unsubscribe.
type SubscriptionsEvent struct {
	Subscriptions map[string][]string `json:"subscriptions"`
}
