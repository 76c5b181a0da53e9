package ratelimit

import (
	"sync"
	"time"
)

// Window enforces a minimum interval between calls without blocking:
// Allow reports whether a call may proceed right now. With per-key mode
// enabled each key gets its own window; otherwise a single window is
// shared across all keys.
type Window struct {
	interval time.Duration
	perKey   bool
	now      func() time.Time

	mu   sync.Mutex
	last map[string]time.Time
}

// globalKey is the map key used when the window is shared.
const globalKey = ""

// maxTrackedKeys bounds the per-key timestamp map. Past the bound,
// elapsed entries are dropped; an absent entry and an elapsed one both
// allow the next call, so eviction never loosens the guard.
const maxTrackedKeys = 10000

// NewWindow creates a window guard. A non-positive interval permits
// every call.
func NewWindow(interval time.Duration, perKey bool) *Window {
	return &Window{
		interval: interval,
		perKey:   perKey,
		now:      time.Now,
		last:     make(map[string]time.Time),
	}
}

// Allow reports whether a call for key may proceed, and records the call
// time when it may. Denied calls do not advance the window.
func (w *Window) Allow(key string) bool {
	if w.interval <= 0 {
		return true
	}
	if !w.perKey {
		key = globalKey
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	if last, ok := w.last[key]; ok && now.Sub(last) < w.interval {
		return false
	}
	if len(w.last) >= maxTrackedKeys {
		w.evictElapsedLocked(now)
	}
	w.last[key] = now
	return true
}

// evictElapsedLocked drops entries whose window has already passed,
// keeping the map bounded in per-key scope. Entries still inside their
// interval are never dropped.
func (w *Window) evictElapsedLocked(now time.Time) {
	for k, last := range w.last {
		if now.Sub(last) >= w.interval {
			delete(w.last, k)
		}
	}
}
