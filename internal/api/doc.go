// Package api provides the Coinbase Advanced Trade REST client.
//
// REST base URL:
//   - Production: https://api.coinbase.com/api/v3/brokerage
//
// Public market data endpoints work without credentials. Account and order
// endpoints require an API key; each request is signed with a short-lived
// ES256 JWT bound to the request method and path.
package api
