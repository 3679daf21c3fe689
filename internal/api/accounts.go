package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GetAccountsOptions controls account listing pagination.
type GetAccountsOptions struct {
	Limit  int
	Cursor string
}

// GetAccounts fetches a page of accounts.
func (c *Client) GetAccounts(ctx context.Context, opts GetAccountsOptions) (*ListAccountsResponse, error) {
	if err := c.requireCredentials(); err != nil {
		return nil, err
	}

	query := url.Values{}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Cursor != "" {
		query.Set("cursor", opts.Cursor)
	}

	var resp ListAccountsResponse
	if err := c.get(ctx, "/accounts", query, &resp); err != nil {
		return nil, fmt.Errorf("get accounts: %w", err)
	}

	return &resp, nil
}

// GetAllAccounts fetches every account by paginating through results.
func (c *Client) GetAllAccounts(ctx context.Context) ([]Account, error) {
	var all []Account
	opts := GetAccountsOptions{Limit: 250}

	for {
		resp, err := c.GetAccounts(ctx, opts)
		if err != nil {
			return nil, err
		}

		all = append(all, resp.Accounts...)

		if !resp.HasNext || resp.Cursor == "" {
			break
		}
		opts.Cursor = resp.Cursor
	}

	return all, nil
}

// GetAccount fetches a single account by UUID.
func (c *Client) GetAccount(ctx context.Context, accountUUID string) (*Account, error) {
	if err := c.requireCredentials(); err != nil {
		return nil, err
	}

	var resp getAccountResponse
	if err := c.get(ctx, "/accounts/"+accountUUID, nil, &resp); err != nil {
		return nil, fmt.Errorf("get account %s: %w", accountUUID, err)
	}

	return &resp.Account, nil
}
