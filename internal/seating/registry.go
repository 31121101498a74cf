package seating

import "container/list"

// registry is the ordered hold map behind the service: keyed
// lookup by identifier, plus iteration in insertion order so the expiration
// sweep can always start at the oldest (soonest-to-expire) end and stop at
// the first non-expired entry. Because expiration instants are derived as
// creation instant + a fixed duration, and creation instants are
// monotonically non-decreasing, insertion order coincides with
// non-decreasing expiration order — this is what makes the sweep
// amortized O(#expired) instead of a full scan.
type registry struct {
	order *list.List // list.Element.Value is *Hold, oldest-first
	index map[int32]*list.Element
}

func newRegistry() *registry {
	return &registry{
		order: list.New(),
		index: make(map[int32]*list.Element),
	}
}

// put inserts a fresh hold at the back of insertion order. The caller must
// ensure id is not already present.
func (r *registry) put(h *Hold) {
	el := r.order.PushBack(h)
	r.index[h.id] = el
}

// get looks up a hold by identifier.
func (r *registry) get(id int32) (*Hold, bool) {
	el, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return el.Value.(*Hold), true
}

// has reports whether id is a live hold.
func (r *registry) has(id int32) bool {
	_, ok := r.index[id]
	return ok
}

// remove deletes a hold by identifier, returning it if present.
func (r *registry) remove(id int32) (*Hold, bool) {
	el, ok := r.index[id]
	if !ok {
		return nil, false
	}
	r.order.Remove(el)
	delete(r.index, id)
	return el.Value.(*Hold), true
}

// popExpiredPrefix removes and returns every hold at the front of insertion
// order whose expiration instant is <= now, stopping at the first
// non-expired entry (or an empty registry). O(#expired) amortized.
func (r *registry) popExpiredPrefix(now func(*Hold) bool) []*Hold {
	var expired []*Hold
	for {
		front := r.order.Front()
		if front == nil {
			break
		}
		h := front.Value.(*Hold)
		if !now(h) {
			break
		}
		r.order.Remove(front)
		delete(r.index, h.id)
		expired = append(expired, h)
	}
	return expired
}

func (r *registry) len() int { return len(r.index) }
