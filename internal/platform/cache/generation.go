package cache

import "sync"

// Generation orders read-through fills against invalidations. A reader takes
// a token with Begin before it loads from the backing store and hands it to
// Fill afterwards; the fill is dropped if any Invalidate ran in between, so a
// value read before a write can never outlive that write's invalidation.
// The zero value is ready to use.
type Generation struct {
	mu  sync.Mutex
	gen uint64
}

// Begin returns the token for a fill that is about to read the backing store.
func (g *Generation) Begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gen
}

// Fill runs add unless an invalidation happened since token was taken. It
// reports whether add ran.
func (g *Generation) Fill(token uint64, add func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gen != token {
		return false
	}
	add()
	return true
}

// Invalidate runs drop and makes every outstanding token stale.
func (g *Generation) Invalidate(drop func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gen++
	drop()
}
