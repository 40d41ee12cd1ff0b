package broker

import (
	"context"
	"sync"
)

// Listener receives auth-state changes.
type Listener func(ctx context.Context, change AuthStateChange)

type listeners struct {
	mu     sync.RWMutex
	nextID int
	byID   map[int]Listener
}

func newListeners() *listeners {
	return &listeners{byID: make(map[int]Listener)}
}

// add registers l and returns a function that removes it. The returned
// function is safe to call more than once.
func (ls *listeners) add(l Listener) func() {
	ls.mu.Lock()
	id := ls.nextID
	ls.nextID++
	ls.byID[id] = l
	ls.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			ls.mu.Lock()
			delete(ls.byID, id)
			ls.mu.Unlock()
		})
	}
}

// emit calls every registered listener synchronously. Listeners run outside
// the lock so they may unsubscribe themselves.
func (ls *listeners) emit(ctx context.Context, change AuthStateChange) {
	ls.mu.RLock()
	snapshot := make([]Listener, 0, len(ls.byID))
	for _, l := range ls.byID {
		snapshot = append(snapshot, l)
	}
	ls.mu.RUnlock()

	for _, l := range snapshot {
		l(ctx, change)
	}
}

func (ls *listeners) len() int {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return len(ls.byID)
}
