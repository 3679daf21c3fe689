// Package connection owns the lifecycle of one WebSocket endpoint.
//
// A Manager wraps a single socket with a state machine
// (disconnected, connecting, connected, reconnecting), sends subscribe and
// unsubscribe control frames, detects connection loss, reconnects with
// exponential backoff, and replays the subscription registry's snapshot for
// its endpoint after every successful reconnect. Exhausting the reconnect
// budget is terminal for the endpoint; the other endpoint is unaffected.
package connection
