// Package cache carries the named-tag invalidation signal between the write
// path (cart mutations, revalidation webhooks) and cached readers.
package cache

import "sync"

// Invalidation tags understood by the read path.
const (
	TagCart        = "cart"
	TagCollections = "collections"
	TagProducts    = "products"
)

// Invalidator broadcasts tag invalidations to subscribers. The broadcast is
// fire-and-forget and ordering-insensitive: a subscriber may observe the
// signal just before or just after the write it describes becomes visible.
type Invalidator struct {
	mu   sync.RWMutex
	subs []func(tag string)
}

func NewInvalidator() *Invalidator {
	return &Invalidator{}
}

// Subscribe registers a callback invoked synchronously for every
// invalidated tag.
func (inv *Invalidator) Subscribe(fn func(tag string)) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.subs = append(inv.subs, fn)
}

// Invalidate notifies every subscriber that the named resource is stale.
func (inv *Invalidator) Invalidate(tag string) {
	inv.mu.RLock()
	subs := inv.subs
	inv.mu.RUnlock()
	for _, fn := range subs {
		fn(tag)
	}
}
