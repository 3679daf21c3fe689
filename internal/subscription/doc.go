// Package subscription tracks the set of wanted channel subscriptions per
// endpoint, independent of connection state.
//
// The registry is the source of truth for resubscription after a reconnect:
// its contents always equal the subscribe calls issued minus matching
// unsubscribe calls, whatever the sockets are doing.
package subscription
