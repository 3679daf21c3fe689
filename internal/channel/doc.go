// Package channel defines the catalog of subscribable WebSocket channels.
//
// Every channel kind maps to exactly one endpoint (public or user) and
// carries a fixed auth requirement. The catalog is a closed set: adding a
// channel kind means extending every switch in this package.
package channel
