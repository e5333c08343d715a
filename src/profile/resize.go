package profile

import (
	"sort"
	"sync"
)

// ResizeNotifier fans viewport changes out to any number of subscribers. Each subscriber
// owns its own slot, so subscribing never displaces another listener.
type ResizeNotifier struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Viewport)
	last *Viewport
}

// Subscribe registers fn and returns the function that removes it again.
// The unsubscribe function may be called more than once.
func (n *ResizeNotifier) Subscribe(fn func(Viewport)) (unsubscribe func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[int]func(Viewport))
	}
	id := n.next
	n.next++
	n.subs[id] = fn
	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, id)
			n.mu.Unlock()
		})
	}
}

// Notify delivers vp to every subscriber in subscription order. Callbacks run on the
// caller's goroutine, outside the lock.
func (n *ResizeNotifier) Notify(vp Viewport) {
	n.mu.Lock()
	ids := make([]int, 0, len(n.subs))
	for id := range n.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(Viewport), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, n.subs[id])
	}
	v := vp
	n.last = &v
	n.mu.Unlock()
	for _, fn := range fns {
		fn(vp)
	}
}

// Last returns the most recently notified viewport.
func (n *ResizeNotifier) Last() (Viewport, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.last == nil {
		return Viewport{}, false
	}
	return *n.last, true
}

// Len reports the number of live subscriptions.
func (n *ResizeNotifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}
