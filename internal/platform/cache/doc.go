// Package cache provides a small in-process, size-bounded cache with
// per-entry expiry. A disabled cache accepts every call and stores nothing,
// so callers never branch on whether caching is configured.
package cache
