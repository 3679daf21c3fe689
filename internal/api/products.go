package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// GetProductsOptions filters a product listing.
type GetProductsOptions struct {
	Limit       int
	Offset      int
	ProductType string
	ProductIDs  []string
}

// GetProducts fetches a page of trading pairs.
func (c *Client) GetProducts(ctx context.Context, opts GetProductsOptions) (*ListProductsResponse, error) {
	query := url.Values{}

	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}
	if opts.ProductType != "" {
		query.Set("product_type", opts.ProductType)
	}
	if len(opts.ProductIDs) > 0 {
		query.Set("product_ids", strings.Join(opts.ProductIDs, ","))
	}

	var resp ListProductsResponse
	if err := c.get(ctx, "/products", query, &resp); err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}

	return &resp, nil
}

// GetProduct fetches a single trading pair by product id.
func (c *Client) GetProduct(ctx context.Context, productID string) (*Product, error) {
	var resp Product
	if err := c.get(ctx, "/products/"+productID, nil, &resp); err != nil {
		return nil, fmt.Errorf("get product %s: %w", productID, err)
	}
	return &resp, nil
}

// GetProductBook fetches the order book for a product. limit 0 uses the
// server default depth.
func (c *Client) GetProductBook(ctx context.Context, productID string, limit int) (*ProductBook, error) {
	query := url.Values{}
	query.Set("product_id", productID)
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var resp ProductBookResponse
	if err := c.get(ctx, "/product_book", query, &resp); err != nil {
		return nil, fmt.Errorf("get product book %s: %w", productID, err)
	}

	return &resp.PriceBook, nil
}

// GetCandles fetches OHLCV history for a product. start and end are Unix
// timestamps; granularity is one of the API's bucket names, e.g.
// "ONE_MINUTE" or "ONE_HOUR".
func (c *Client) GetCandles(ctx context.Context, productID string, start, end int64, granularity string) ([]Candle, error) {
	query := url.Values{}
	query.Set("start", strconv.FormatInt(start, 10))
	query.Set("end", strconv.FormatInt(end, 10))
	query.Set("granularity", granularity)

	var resp CandlesResponse
	if err := c.get(ctx, "/products/"+productID+"/candles", query, &resp); err != nil {
		return nil, fmt.Errorf("get candles %s: %w", productID, err)
	}

	return resp.Candles, nil
}
