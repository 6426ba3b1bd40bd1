// Package server implements a WebSocket server core for tick-driven hosts.
//
// The server never runs a loop of its own on the host's behalf. A dedicated
// acceptor goroutine owns the TCP listener and the HTTP upgrade handshake;
// established connections cross into the host's world through a mutex-guarded
// hand-off queue. Everything else — the connection registry, socket reads,
// event production and all writes — happens synchronously inside Poll, which
// the host calls exactly once per tick:
//
//	srv := server.New(cfg, server.WithLogger(logger))
//	if err := srv.Start(); err != nil {
//	    return err
//	}
//	for range ticker.C {
//	    for _, ev := range srv.Poll() {
//	        switch ev := ev.(type) {
//	        case server.MessageEvent:
//	            srv.SendText(ev.Peer, ev.Data)
//	        }
//	    }
//	}
//
// Poll drains at most one newly accepted connection per tick and services at
// most one registered connection per tick, round-robin, with a single
// non-blocking read. Per-tick cost is therefore bounded, at the price of each
// of N connections getting a read attempt only once every N ticks.
//
// A connection operates in one of two modes, chosen at handshake time by
// WebSocket subprotocol: Parsed mode decodes frames into semantic events
// (Message, Binary, Pong, Close) and answers Pings itself; Raw mode surfaces
// every frame verbatim and leaves all protocol semantics to the host. The
// mode can be switched later with SetMode without a new handshake.
//
// Poll and all write methods must be called from a single goroutine, the
// host's tick goroutine. The package uses github.com/gobwas/ws for the wire
// protocol; its stateless frame codec is what allows decoding to resume
// across ticks when a frame arrives split.
package server
