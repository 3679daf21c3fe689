// Package model defines the typed inbound WebSocket frame and its
// per-channel event payloads.
package model
