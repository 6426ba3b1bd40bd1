package server

import "testing"

func fakeConn(p Peer) *conn {
	return &conn{peer: p}
}

func TestRegistryInsertGetRemove(t *testing.T) {
	r := newRegistry()

	if _, ok := r.get("a"); ok {
		t.Fatal("empty registry should not resolve peers")
	}
	if r.remove("a") {
		t.Fatal("removing an unknown peer should report false")
	}

	r.insert(fakeConn("a"))
	r.insert(fakeConn("b"))
	if r.len() != 2 {
		t.Fatalf("len = %d, want 2", r.len())
	}
	if c, ok := r.get("a"); !ok || c.peer != "a" {
		t.Fatal("lookup failed for registered peer")
	}

	if !r.remove("a") {
		t.Fatal("remove should report true for a registered peer")
	}
	if _, ok := r.get("a"); ok {
		t.Fatal("removed peer still resolvable")
	}
	if r.len() != 1 {
		t.Fatalf("len = %d, want 1", r.len())
	}
}

func TestRegistryAdvanceEmpty(t *testing.T) {
	r := newRegistry()
	if _, ok := r.advance(); ok {
		t.Fatal("advance on empty registry should yield nothing")
	}
}

func TestRegistryRoundRobinFairness(t *testing.T) {
	r := newRegistry()
	peers := []Peer{"a", "b", "c"}
	for _, p := range peers {
		r.insert(fakeConn(p))
	}

	// Over K advances at constant size S, every peer gets between
	// floor(K/S) and ceil(K/S) turns.
	const k = 10
	turns := make(map[Peer]int)
	for i := 0; i < k; i++ {
		c, ok := r.advance()
		if !ok {
			t.Fatal("advance failed on non-empty registry")
		}
		turns[c.peer]++
	}

	s := len(peers)
	lo, hi := k/s, (k+s-1)/s
	for _, p := range peers {
		if turns[p] < lo || turns[p] > hi {
			t.Errorf("peer %s advanced %d times, want between %d and %d", p, turns[p], lo, hi)
		}
	}
}

func TestRegistryCursorSurvivesRemoval(t *testing.T) {
	r := newRegistry()
	for _, p := range []Peer{"a", "b", "c", "d"} {
		r.insert(fakeConn(p))
	}

	// Park the cursor on the last slot, then shrink the registry under it.
	for i := 0; i < 3; i++ {
		r.advance()
	}
	r.remove("d")
	r.remove("b")

	seen := make(map[Peer]bool)
	for i := 0; i < 4; i++ {
		c, ok := r.advance()
		if !ok {
			t.Fatal("advance failed after removals")
		}
		if _, registered := r.get(c.peer); !registered {
			t.Fatalf("advance yielded removed peer %s", c.peer)
		}
		seen[c.peer] = true
	}
	if !seen["a"] || !seen["c"] {
		t.Errorf("surviving peers not all visited: %v", seen)
	}
}

func TestRegistryRemoveLastResetsCursor(t *testing.T) {
	r := newRegistry()
	r.insert(fakeConn("a"))
	r.advance()
	r.remove("a")

	if _, ok := r.advance(); ok {
		t.Fatal("advance should yield nothing after the registry empties")
	}

	// Registry remains usable after emptying out.
	r.insert(fakeConn("b"))
	c, ok := r.advance()
	if !ok || c.peer != "b" {
		t.Fatal("advance broken after empty/refill cycle")
	}
}

func TestRegistryPeersOrder(t *testing.T) {
	r := newRegistry()
	for _, p := range []Peer{"a", "b", "c"} {
		r.insert(fakeConn(p))
	}
	peers := r.peers()
	if len(peers) != 3 {
		t.Fatalf("peers = %v", peers)
	}
	if peers[0] != "a" || peers[1] != "b" || peers[2] != "c" {
		t.Errorf("insertion order not preserved: %v", peers)
	}
}
