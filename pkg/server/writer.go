package server

import "github.com/gobwas/ws"

// The writer methods look a peer up in the registry and write on its socket.
// They share the tick goroutine with Poll; an unknown peer returns
// ErrPeerNotFound with no side effects, and a write failure is returned to
// the caller without removing the connection — only a remote Close frame or
// an explicit ClosePeer does that.

// SendText sends a text message to the peer.
func (s *Server) SendText(p Peer, data string) error {
	c, ok := s.reg.get(p)
	if !ok {
		return ErrPeerNotFound
	}
	return c.writeFrame(ws.NewTextFrame([]byte(data)))
}

// SendBinary sends a binary message to the peer.
func (s *Server) SendBinary(p Peer, data []byte) error {
	c, ok := s.reg.get(p)
	if !ok {
		return ErrPeerNotFound
	}
	return c.writeFrame(ws.NewBinaryFrame(data))
}

// Ping sends a Ping frame with the given payload to the peer.
func (s *Server) Ping(p Peer, data []byte) error {
	c, ok := s.reg.get(p)
	if !ok {
		return ErrPeerNotFound
	}
	return c.writeFrame(ws.NewPingFrame(data))
}

// SendFrame writes a single frame verbatim. This is the raw-mode counterpart
// of SendText/SendBinary, though it works for any registered peer.
func (s *Server) SendFrame(p Peer, f Frame) error {
	c, ok := s.reg.get(p)
	if !ok {
		return ErrPeerNotFound
	}
	return c.writeFrame(f.wire())
}

// SetMode replaces the decoding mode of a live connection. No re-handshake
// happens; the new mode takes effect on the connection's next turn.
func (s *Server) SetMode(p Peer, m Mode) error {
	c, ok := s.reg.get(p)
	if !ok {
		return ErrPeerNotFound
	}
	c.mode = m
	return nil
}

// ClosePeer closes a connection from the server side: a best-effort Close
// frame, local socket shutdown, and registry removal. No CloseEvent is
// emitted for host-initiated closes. A nil status sends an empty Close
// frame.
func (s *Server) ClosePeer(p Peer, status *CloseStatus) error {
	c, ok := s.reg.get(p)
	if !ok {
		return ErrPeerNotFound
	}

	var body []byte
	if status != nil {
		body = ws.NewCloseFrameBody(ws.StatusCode(status.Code), status.Reason)
	}
	if err := c.writeFrame(ws.NewCloseFrame(body)); err != nil {
		s.log.Debug("close frame write failed", "conn", c.id, "peer", c.peer, "error", err)
	}

	err := c.close()
	s.reg.remove(p)
	s.log.Info("connection closed", "conn", c.id, "peer", c.peer)
	return err
}
