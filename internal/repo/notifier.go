package repo

import "sync"

// Notifier is a pull-based invalidation signal. Every mutation bumps a
// monotonic counter and wakes subscribers; a subscriber re-reads whatever it
// depends on when it observes a new counter value. Channels are buffered and
// coalescing: a slow subscriber sees only the latest counter, never a
// backlog, and a superseded read's result is simply discarded by the caller.
type Notifier struct {
	mu      sync.Mutex
	counter uint64
	subs    map[int]chan uint64
	nextID  int
}

func NewNotifier() *Notifier {
	return &Notifier{
		subs: make(map[int]chan uint64),
	}
}

// Counter returns the current refresh counter value.
func (n *Notifier) Counter() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.counter
}

// Broadcast increments the counter and notifies all subscribers.
func (n *Notifier) Broadcast() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.counter++
	for _, ch := range n.subs {
		// Replace any pending value with the newest counter
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- n.counter:
		default:
		}
	}
}

// Subscribe registers a refresh listener. The returned cancel func must be
// called when the subscriber goes away.
func (n *Notifier) Subscribe() (<-chan uint64, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	ch := make(chan uint64, 1)
	n.subs[id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
	return ch, cancel
}
