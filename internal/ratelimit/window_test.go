package ratelimit

import (
	"fmt"
	"testing"
	"time"
)

func TestWindow_Global(t *testing.T) {
	now := time.Now()
	w := NewWindow(3*time.Second, false)
	w.now = func() time.Time { return now }

	if !w.Allow("RELIANCE") {
		t.Fatal("Expected the first call to pass")
	}

	t.Run("denies any ticker inside the interval", func(t *testing.T) {
		now = now.Add(time.Second)
		if w.Allow("RELIANCE") {
			t.Error("Expected the same ticker to be denied")
		}
		if w.Allow("TCS") {
			t.Error("Expected a different ticker to share the global window")
		}
	})

	t.Run("denied calls do not advance the window", func(t *testing.T) {
		// 3s after the first allowed call, despite the denials at 1s.
		now = now.Add(2 * time.Second)
		if !w.Allow("TCS") {
			t.Error("Expected the window to open relative to the last allowed call")
		}
	})
}

func TestWindow_PerKey(t *testing.T) {
	now := time.Now()
	w := NewWindow(3*time.Second, true)
	w.now = func() time.Time { return now }

	if !w.Allow("RELIANCE") {
		t.Fatal("Expected the first call to pass")
	}
	if !w.Allow("TCS") {
		t.Error("Expected a different ticker to have its own window")
	}

	now = now.Add(time.Second)
	if w.Allow("RELIANCE") {
		t.Error("Expected a repeat inside the per-ticker interval to be denied")
	}

	now = now.Add(2 * time.Second)
	if !w.Allow("RELIANCE") {
		t.Error("Expected the per-ticker window to reopen after the interval")
	}
}

func TestWindow_PerKeyMapStaysBounded(t *testing.T) {
	now := time.Now()
	w := NewWindow(3*time.Second, true)
	w.now = func() time.Time { return now }

	for i := 0; i < maxTrackedKeys; i++ {
		if !w.Allow(fmt.Sprintf("T%d", i)) {
			t.Fatalf("Expected a fresh ticker to pass, key T%d", i)
		}
	}
	if len(w.last) != maxTrackedKeys {
		t.Fatalf("Expected %d tracked keys, got %d", maxTrackedKeys, len(w.last))
	}

	// Once every window has elapsed, the next call evicts the stale
	// entries instead of growing the map.
	now = now.Add(4 * time.Second)
	if !w.Allow("FRESH") {
		t.Fatal("Expected the new ticker to pass")
	}
	if len(w.last) != 1 {
		t.Errorf("Expected only the fresh key tracked, got %d entries", len(w.last))
	}

	// Eviction never drops an entry still inside its interval.
	now = now.Add(time.Second)
	if w.Allow("FRESH") {
		t.Error("Expected the fresh key to still be denied inside its window")
	}
}

func TestWindow_DisabledInterval(t *testing.T) {
	w := NewWindow(0, false)
	for i := 0; i < 5; i++ {
		if !w.Allow("X") {
			t.Fatal("Expected a non-positive interval to permit every call")
		}
	}
}
