// Package inflight rejects a second identical request while the first one is
// still running (double-click on Save or Apply).
package inflight

import (
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"
)

type Guard struct {
	mu    sync.Mutex
	slots map[string]*semaphore.Weighted
}

func NewGuard() *Guard {
	return &Guard{slots: make(map[string]*semaphore.Weighted)}
}

// TryAcquire never waits. ok is false while another holder of key is active;
// release must be called exactly once when ok is true.
func (g *Guard) TryAcquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	sem, exists := g.slots[key]
	if !exists {
		sem = semaphore.NewWeighted(1)
		g.slots[key] = sem
	}
	if !sem.TryAcquire(1) {
		return func() {}, false
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			sem.Release(1)
			delete(g.slots, key)
		})
	}, true
}

// Pending reports how many keys are currently held.
func (g *Guard) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.slots)
}

func Key(parts ...string) string {
	return strings.Join(parts, "|")
}
