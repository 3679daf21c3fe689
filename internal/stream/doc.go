// Package stream implements the real-time subscription session.
//
// A Session composes up to two connection managers (the public market data
// endpoint and the authenticated user endpoint) over one shared
// subscription registry, and multiplexes both endpoints' inbound frames
// into a single item channel. Frame order is preserved within one endpoint;
// no ordering exists across endpoints.
package stream
