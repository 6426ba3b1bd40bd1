package server

import (
	"sync"

	"github.com/eapache/queue"
)

// handoff is the single structure shared between the acceptor goroutine and
// the tick goroutine. The acceptor pushes established connections with a
// blocking lock acquire; the tick side pops with TryLock so a contended lock
// costs a tick of intake latency, never a stall.
type handoff struct {
	mu sync.Mutex
	q  *queue.Queue
}

func newHandoff() *handoff {
	return &handoff{q: queue.New()}
}

// push appends a connection, FIFO. Acceptor side only.
func (h *handoff) push(c *conn) {
	h.mu.Lock()
	h.q.Add(c)
	h.mu.Unlock()
}

// tryPop removes the oldest pending connection. Returns false when the queue
// is empty or the lock is currently held by the acceptor.
func (h *handoff) tryPop() (*conn, bool) {
	if !h.mu.TryLock() {
		return nil, false
	}
	defer h.mu.Unlock()
	if h.q.Length() == 0 {
		return nil, false
	}
	return h.q.Remove().(*conn), true
}

// drain empties the queue, handing every pending connection to fn.
// Used only during teardown.
func (h *handoff) drain(fn func(*conn)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for h.q.Length() > 0 {
		fn(h.q.Remove().(*conn))
	}
}
