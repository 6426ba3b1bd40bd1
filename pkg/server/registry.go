package server

// registry is the ordered peer→connection map owned by the tick goroutine.
// Insertion order is kept in a slice so the round-robin cursor has a stable
// iteration order; removal swaps the last entry into the vacated slot. The
// cursor is reduced modulo the current length on every advance, so shrinking
// the registry can never leave it out of range.
type registry struct {
	order  []Peer
	conns  map[Peer]*conn
	cursor int
}

func newRegistry() *registry {
	return &registry{conns: make(map[Peer]*conn)}
}

func (r *registry) len() int {
	return len(r.order)
}

func (r *registry) get(p Peer) (*conn, bool) {
	c, ok := r.conns[p]
	return c, ok
}

func (r *registry) insert(c *conn) {
	if _, exists := r.conns[c.peer]; !exists {
		r.order = append(r.order, c.peer)
	}
	r.conns[c.peer] = c
}

func (r *registry) remove(p Peer) bool {
	if _, ok := r.conns[p]; !ok {
		return false
	}
	delete(r.conns, p)
	for i, q := range r.order {
		if q == p {
			last := len(r.order) - 1
			r.order[i] = r.order[last]
			r.order = r.order[:last]
			break
		}
	}
	if n := len(r.order); n > 0 {
		r.cursor %= n
	} else {
		r.cursor = 0
	}
	return true
}

// advance moves the cursor one position and returns the connection there.
// Returns false when the registry is empty.
func (r *registry) advance() (*conn, bool) {
	if len(r.order) == 0 {
		return nil, false
	}
	r.cursor = (r.cursor + 1) % len(r.order)
	return r.conns[r.order[r.cursor]], true
}

// peers returns the registered peers in iteration order.
func (r *registry) peers() []Peer {
	out := make([]Peer, len(r.order))
	copy(out, r.order)
	return out
}

// each calls fn for every registered connection. Teardown helper.
func (r *registry) each(fn func(*conn)) {
	for _, p := range r.order {
		fn(r.conns[p])
	}
}
