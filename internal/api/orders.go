package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// MarketBuyQuote builds a market buy spending quoteSize of the quote
// currency (e.g. "100" USD of BTC-USD). A fresh client order id is
// generated.
func MarketBuyQuote(productID, quoteSize string) CreateOrderRequest {
	return CreateOrderRequest{
		ClientOrderID: uuid.NewString(),
		ProductID:     productID,
		Side:          Buy,
		OrderConfiguration: OrderConfiguration{
			MarketIOC: &MarketIOC{QuoteSize: quoteSize},
		},
	}
}

// MarketSellBase builds a market sell of baseSize of the base currency.
func MarketSellBase(productID, baseSize string) CreateOrderRequest {
	return CreateOrderRequest{
		ClientOrderID: uuid.NewString(),
		ProductID:     productID,
		Side:          Sell,
		OrderConfiguration: OrderConfiguration{
			MarketIOC: &MarketIOC{BaseSize: baseSize},
		},
	}
}

// LimitOrderGTC builds a good-til-cancelled limit order.
func LimitOrderGTC(productID string, side OrderSide, baseSize, limitPrice string, postOnly bool) CreateOrderRequest {
	return CreateOrderRequest{
		ClientOrderID: uuid.NewString(),
		ProductID:     productID,
		Side:          side,
		OrderConfiguration: OrderConfiguration{
			LimitGTC: &LimitGTC{
				BaseSize:   baseSize,
				LimitPrice: limitPrice,
				PostOnly:   postOnly,
			},
		},
	}
}

// validate rejects requests that the API would refuse anyway, before they
// consume a rate limit token.
func (r CreateOrderRequest) validate() error {
	if r.ClientOrderID == "" {
		return errors.New("client_order_id is required")
	}
	if r.ProductID == "" {
		return errors.New("product_id is required")
	}
	if r.Side != Buy && r.Side != Sell {
		return fmt.Errorf("invalid side %q", r.Side)
	}

	cfg := r.OrderConfiguration
	switch {
	case cfg.MarketIOC != nil:
		if (cfg.MarketIOC.QuoteSize == "") == (cfg.MarketIOC.BaseSize == "") {
			return errors.New("market order needs exactly one of quote_size and base_size")
		}
	case cfg.LimitGTC != nil:
		if cfg.LimitGTC.BaseSize == "" || cfg.LimitGTC.LimitPrice == "" {
			return errors.New("limit order needs base_size and limit_price")
		}
	default:
		return errors.New("order configuration is required")
	}

	return nil
}

// CreateOrder submits an order. A response with Success false is returned
// without error; the rejection reason is in FailureReason.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	if err := c.requireCredentials(); err != nil {
		return nil, err
	}
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	var resp CreateOrderResponse
	if err := c.post(ctx, "/orders", req, &resp); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	return &resp, nil
}

// CancelOrders cancels one or more orders by id.
func (c *Client) CancelOrders(ctx context.Context, orderIDs ...string) (*CancelOrdersResponse, error) {
	if err := c.requireCredentials(); err != nil {
		return nil, err
	}
	if len(orderIDs) == 0 {
		return nil, errors.New("cancel orders: no order ids")
	}

	var resp CancelOrdersResponse
	if err := c.post(ctx, "/orders/batch_cancel", CancelOrdersRequest{OrderIDs: orderIDs}, &resp); err != nil {
		return nil, fmt.Errorf("cancel orders: %w", err)
	}

	return &resp, nil
}

// GetOrdersOptions filters a historical order listing.
type GetOrdersOptions struct {
	ProductIDs  []string
	OrderStatus []string
	Limit       int
	Cursor      string
}

// GetOrders fetches a page of historical orders.
func (c *Client) GetOrders(ctx context.Context, opts GetOrdersOptions) (*ListOrdersResponse, error) {
	if err := c.requireCredentials(); err != nil {
		return nil, err
	}

	query := url.Values{}
	if len(opts.ProductIDs) > 0 {
		query.Set("product_ids", strings.Join(opts.ProductIDs, ","))
	}
	if len(opts.OrderStatus) > 0 {
		query.Set("order_status", strings.Join(opts.OrderStatus, ","))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Cursor != "" {
		query.Set("cursor", opts.Cursor)
	}

	var resp ListOrdersResponse
	if err := c.get(ctx, "/orders/historical/batch", query, &resp); err != nil {
		return nil, fmt.Errorf("get orders: %w", err)
	}

	return &resp, nil
}

// GetOrder fetches a single order by id.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	if err := c.requireCredentials(); err != nil {
		return nil, err
	}

	var resp getOrderResponse
	if err := c.get(ctx, "/orders/historical/"+orderID, nil, &resp); err != nil {
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}

	return &resp.Order, nil
}
