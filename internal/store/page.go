package store

import "math"

// DefaultPageSize is the page size used when a request names none.
const DefaultPageSize = 10

// Page is a zero-based page request over the full ordered result set.
type Page struct {
	Number int
	Size   int
}

// Empty reports whether the request can only produce an empty result: a
// negative page number, a non-positive size, or an offset that would
// overflow.
func (p Page) Empty() bool {
	if p.Number < 0 || p.Size <= 0 {
		return true
	}
	return p.Number > math.MaxInt32/p.Size
}

// Limit is the requested page size.
func (p Page) Limit() int {
	return p.Size
}

// Offset is the index of the first row on the page.
func (p Page) Offset() int {
	return p.Number * p.Size
}

// Slice applies p to an already ordered result set.
func Slice[T any](items []T, p Page) []T {
	if p.Empty() {
		return []T{}
	}
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := len(items)
	if p.Size < end-start {
		end = start + p.Size
	}
	return items[start:end]
}
