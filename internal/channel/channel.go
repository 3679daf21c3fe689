package channel

// Endpoint identifies one of the two logical WebSocket connections.
type Endpoint string

const (
	// EndpointPublic is the unauthenticated market data endpoint.
	EndpointPublic Endpoint = "public"
	// EndpointUser is the authenticated user data endpoint.
	EndpointUser Endpoint = "user"
)

// Kind is the name of a subscribable channel as it appears on the wire.
type Kind string

// Channel kinds supported by the Advanced Trade WebSocket API.
const (
	Heartbeats            Kind = "heartbeats"
	Status                Kind = "status"
	Ticker                Kind = "ticker"
	TickerBatch           Kind = "ticker_batch"
	Level2                Kind = "level2"
	Candles               Kind = "candles"
	MarketTrades          Kind = "market_trades"
	User                  Kind = "user"
	FuturesBalanceSummary Kind = "futures_balance_summary"

	// Subscriptions is only ever received, never subscribed to. The server
	// sends it as an acknowledgement after subscribe/unsubscribe.
	Subscriptions Kind = "subscriptions"

	// L2Data is the wire name inbound level2 frames arrive under. It is
	// normalized to Level2 on decode; subscriptions always use "level2".
	L2Data Kind = "l2_data"
)

// Canonical maps inbound wire aliases to their catalog kind.
func (k Kind) Canonical() Kind {
	if k == L2Data {
		return Level2
	}
	return k
}

// String returns the wire name of the channel kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid returns true if k is a channel kind that can be subscribed to.
func (k Kind) IsValid() bool {
	switch k {
	case Heartbeats, Status, Ticker, TickerBatch, Level2, Candles,
		MarketTrades, User, FuturesBalanceSummary:
		return true
	default:
		return false
	}
}

// Endpoint returns the endpoint the channel kind belongs to.
func (k Kind) Endpoint() Endpoint {
	switch k {
	case User, FuturesBalanceSummary:
		return EndpointUser
	default:
		return EndpointPublic
	}
}

// RequiresAuth returns true if subscribing to the channel kind requires a
// signed token.
func (k Kind) RequiresAuth() bool {
	switch k {
	case User, FuturesBalanceSummary:
		return true
	default:
		return false
	}
}

// ProductScoped returns true if subscriptions to the channel kind are scoped
// to a set of product ids.
func (k Kind) ProductScoped() bool {
	switch k {
	case Ticker, TickerBatch, Level2, Candles, MarketTrades:
		return true
	default:
		return false
	}
}

// Channel is a subscription target: a channel kind plus the product ids it
// is scoped to. ProductIDs is empty for unscoped kinds.
type Channel struct {
	Kind       Kind
	ProductIDs []string
}

// New returns a channel for the given kind scoped to the given products.
// Product ids are ignored for unscoped kinds.
func New(kind Kind, productIDs ...string) Channel {
	if !kind.ProductScoped() {
		return Channel{Kind: kind}
	}
	return Channel{Kind: kind, ProductIDs: productIDs}
}

// WireName returns the channel name sent in control frames.
func (c Channel) WireName() string {
	return string(c.Kind)
}

// Endpoint returns the endpoint the channel belongs to.
func (c Channel) Endpoint() Endpoint {
	return c.Kind.Endpoint()
}

// RequiresAuth returns true if the channel requires a signed token.
func (c Channel) RequiresAuth() bool {
	return c.Kind.RequiresAuth()
}
