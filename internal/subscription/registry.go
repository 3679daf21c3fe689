package subscription

import (
	"sort"
	"sync"

	"github.com/dcompoze/coinbase-advanced/internal/channel"
)

// Entry is one replayable subscription: a channel kind and the union of
// product ids currently wanted for it. ProductIDs is nil for unscoped kinds.
type Entry struct {
	Kind       channel.Kind
	ProductIDs []string
}

// Channel converts the entry back into a subscribable channel.
func (e Entry) Channel() channel.Channel {
	return channel.New(e.Kind, e.ProductIDs...)
}

// Registry records active subscriptions per endpoint. All methods are safe
// for concurrent use; mutations are serialized so a snapshot reflects every
// add/remove that completed before it.
type Registry struct {
	mu      sync.Mutex
	entries map[channel.Endpoint]map[channel.Kind]map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: map[channel.Endpoint]map[channel.Kind]map[string]struct{}{
			channel.EndpointPublic: {},
			channel.EndpointUser:   {},
		},
	}
}

// Add unions the channel's product ids into the entry for its kind,
// creating the entry if absent. Adding the same channel twice is a no-op.
func (r *Registry) Add(ch channel.Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kinds := r.entries[ch.Endpoint()]
	ids, ok := kinds[ch.Kind]
	if !ok {
		ids = make(map[string]struct{})
		kinds[ch.Kind] = ids
	}
	for _, id := range ch.ProductIDs {
		ids[id] = struct{}{}
	}
}

// Remove subtracts the channel's product ids from the matching entry. The
// entry is deleted when no product ids remain; unscoped kinds are deleted
// outright. Removing a channel that was never added is a no-op.
func (r *Registry) Remove(ch channel.Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kinds := r.entries[ch.Endpoint()]
	ids, ok := kinds[ch.Kind]
	if !ok {
		return
	}

	if !ch.Kind.ProductScoped() {
		delete(kinds, ch.Kind)
		return
	}

	for _, id := range ch.ProductIDs {
		delete(ids, id)
	}
	if len(ids) == 0 {
		delete(kinds, ch.Kind)
	}
}

// Snapshot returns the replay set for one endpoint. Product ids are sorted
// for deterministic output; entry order is unspecified.
func (r *Registry) Snapshot(ep channel.Endpoint) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	kinds := r.entries[ep]
	out := make([]Entry, 0, len(kinds))
	for kind, ids := range kinds {
		e := Entry{Kind: kind}
		if len(ids) > 0 {
			e.ProductIDs = make([]string, 0, len(ids))
			for id := range ids {
				e.ProductIDs = append(e.ProductIDs, id)
			}
			sort.Strings(e.ProductIDs)
		}
		out = append(out, e)
	}
	return out
}

// Len returns the number of entries currently held for the endpoint.
func (r *Registry) Len(ep channel.Endpoint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries[ep])
}
