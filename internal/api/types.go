package api

import "encoding/json"

// Product describes a trading pair.
type Product struct {
	ProductID       string `json:"product_id"`
	Price           string `json:"price"`
	BaseIncrement   string `json:"base_increment"`
	QuoteIncrement  string `json:"quote_increment"`
	QuoteMinSize    string `json:"quote_min_size"`
	QuoteMaxSize    string `json:"quote_max_size"`
	BaseMinSize     string `json:"base_min_size"`
	BaseMaxSize     string `json:"base_max_size"`
	BaseName        string `json:"base_name"`
	QuoteName       string `json:"quote_name"`
	Status          string `json:"status"`
	IsDisabled      bool   `json:"is_disabled"`
	New             bool   `json:"new"`
	CancelOnly      bool   `json:"cancel_only"`
	LimitOnly       bool   `json:"limit_only"`
	PostOnly        bool   `json:"post_only"`
	TradingDisabled bool   `json:"trading_disabled"`
	AuctionMode     bool   `json:"auction_mode"`
	ProductType     string `json:"product_type"`
	BaseCurrencyID  string `json:"base_currency_id"`
	QuoteCurrencyID string `json:"quote_currency_id"`
}

// ListProductsResponse is a page of products.
type ListProductsResponse struct {
	Products    []Product `json:"products"`
	NumProducts int       `json:"num_products"`
}

// BookLevel is a single price level of an order book.
type BookLevel struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}

// ProductBook holds the order book for one product.
type ProductBook struct {
	ProductID string      `json:"product_id"`
	Bids      []BookLevel `json:"bids"`
	Asks      []BookLevel `json:"asks"`
	Time      string      `json:"time"`
}

// ProductBookResponse wraps the /product_book payload.
type ProductBookResponse struct {
	PriceBook ProductBook `json:"pricebook"`
}

// Candle is one OHLCV bucket of REST candle history.
type Candle struct {
	Start  string `json:"start"`
	Low    string `json:"low"`
	High   string `json:"high"`
	Open   string `json:"open"`
	Close  string `json:"close"`
	Volume string `json:"volume"`
}

// CandlesResponse is the /products/{id}/candles payload.
type CandlesResponse struct {
	Candles []Candle `json:"candles"`
}

// Balance is an amount of a single currency.
type Balance struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// Account is a wallet holding one currency.
type Account struct {
	UUID             string  `json:"uuid"`
	Name             string  `json:"name"`
	Currency         string  `json:"currency"`
	AvailableBalance Balance `json:"available_balance"`
	Default          bool    `json:"default"`
	Active           bool    `json:"active"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
	Type             string  `json:"type"`
	Ready            bool    `json:"ready"`
	Hold             Balance `json:"hold"`
}

// ListAccountsResponse is a page of accounts.
type ListAccountsResponse struct {
	Accounts []Account `json:"accounts"`
	HasNext  bool      `json:"has_next"`
	Cursor   string    `json:"cursor"`
	Size     int       `json:"size"`
}

// getAccountResponse wraps the single-account payload.
type getAccountResponse struct {
	Account Account `json:"account"`
}

// OrderSide is the direction of an order.
type OrderSide string

// Order sides.
const (
	Buy  OrderSide = "BUY"
	Sell OrderSide = "SELL"
)

// MarketIOC configures a market immediate-or-cancel order. Exactly one of
// QuoteSize and BaseSize must be set.
type MarketIOC struct {
	QuoteSize string `json:"quote_size,omitempty"`
	BaseSize  string `json:"base_size,omitempty"`
}

// LimitGTC configures a good-til-cancelled limit order.
type LimitGTC struct {
	BaseSize   string `json:"base_size"`
	LimitPrice string `json:"limit_price"`
	PostOnly   bool   `json:"post_only,omitempty"`
}

// OrderConfiguration selects the order type. Exactly one field is set; the
// wire format keys the configuration object by type name.
type OrderConfiguration struct {
	MarketIOC *MarketIOC `json:"market_market_ioc,omitempty"`
	LimitGTC  *LimitGTC  `json:"limit_limit_gtc,omitempty"`
}

// CreateOrderRequest is the payload for order submission.
type CreateOrderRequest struct {
	ClientOrderID      string             `json:"client_order_id"`
	ProductID          string             `json:"product_id"`
	Side               OrderSide          `json:"side"`
	OrderConfiguration OrderConfiguration `json:"order_configuration"`
}

// OrderSuccess carries the identifiers of an accepted order.
type OrderSuccess struct {
	OrderID       string `json:"order_id"`
	ProductID     string `json:"product_id"`
	Side          string `json:"side"`
	ClientOrderID string `json:"client_order_id"`
}

// CreateOrderResponse is the order submission result. Success false means
// the order was rejected, not that the request failed.
type CreateOrderResponse struct {
	Success         bool            `json:"success"`
	FailureReason   string          `json:"failure_reason"`
	OrderID         string          `json:"order_id"`
	SuccessResponse *OrderSuccess   `json:"success_response"`
	ErrorResponse   json.RawMessage `json:"error_response"`
}

// CancelOrdersRequest names the orders to cancel.
type CancelOrdersRequest struct {
	OrderIDs []string `json:"order_ids"`
}

// CancelOrderResult is the outcome for one cancelled order.
type CancelOrderResult struct {
	Success       bool   `json:"success"`
	FailureReason string `json:"failure_reason"`
	OrderID       string `json:"order_id"`
}

// CancelOrdersResponse carries per-order cancellation results.
type CancelOrdersResponse struct {
	Results []CancelOrderResult `json:"results"`
}

// Order is a historical order record.
type Order struct {
	OrderID              string          `json:"order_id"`
	ProductID            string          `json:"product_id"`
	ClientOrderID        string          `json:"client_order_id"`
	Side                 string          `json:"side"`
	Status               string          `json:"status"`
	TimeInForce          string          `json:"time_in_force"`
	CreatedTime          string          `json:"created_time"`
	CompletionPercentage string          `json:"completion_percentage"`
	FilledSize           string          `json:"filled_size"`
	AverageFilledPrice   string          `json:"average_filled_price"`
	FilledValue          string          `json:"filled_value"`
	TotalFees            string          `json:"total_fees"`
	OrderType            string          `json:"order_type"`
	RejectReason         string          `json:"reject_reason"`
	Settled              bool            `json:"settled"`
	OrderConfiguration   json.RawMessage `json:"order_configuration"`
}

// ListOrdersResponse is a page of historical orders.
type ListOrdersResponse struct {
	Orders  []Order `json:"orders"`
	HasNext bool    `json:"has_next"`
	Cursor  string  `json:"cursor"`
}

// getOrderResponse wraps the single-order payload.
type getOrderResponse struct {
	Order Order `json:"order"`
}
