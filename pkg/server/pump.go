package server

import "github.com/gobwas/ws"

// Poll runs one tick of the pump and returns the events it produced: at most
// one OpenEvent (draining one pending handshake) plus at most one
// read-derived event (advancing the round-robin cursor one position and
// giving that connection a single non-blocking read).
//
// Poll never blocks. If the hand-off queue's lock is held by the acceptor,
// the drain is simply skipped this tick. Poll must only be called from the
// host's tick goroutine.
func (s *Server) Poll() []Event {
	var events []Event

	if c, ok := s.pending.tryPop(); ok {
		s.reg.insert(c)
		events = append(events, OpenEvent{Peer: c.peer, Mode: c.mode, Subprotocol: c.subprotocol})
	}

	if c, ok := s.reg.advance(); ok {
		if ev := s.service(c); ev != nil {
			events = append(events, ev)
		}
	}

	return events
}

// service gives one connection its turn: one read, one decode attempt, zero
// or one event. Read and protocol errors are logged and leave the connection
// registered; a persistently broken socket just keeps failing on its turn.
// A failed read never skips decoding: a peer that sent a burst of frames and
// hung up leaves complete frames in the buffer, and its Close frame must
// still surface.
func (s *Server) service(c *conn) Event {
	if err := c.fill(); err != nil {
		s.log.Debug("read failed", "conn", c.id, "peer", c.peer, "error", err)
	}

	f, ok, err := c.nextFrame()
	if err != nil {
		s.log.Warn("frame decode failed", "conn", c.id, "peer", c.peer, "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	if c.mode == ModeRaw {
		return RawFrameEvent{Peer: c.peer, Frame: frameFromWire(f)}
	}
	return s.dispatchParsed(c, f)
}

func (s *Server) dispatchParsed(c *conn, f ws.Frame) Event {
	switch f.Header.OpCode {
	case ws.OpText:
		return MessageEvent{Peer: c.peer, Data: string(f.Payload)}
	case ws.OpBinary:
		return BinaryEvent{Peer: c.peer, Data: f.Payload}
	case ws.OpPing:
		// Reply on the spot with the identical payload. A failed reply
		// is not fatal; the connection stays registered.
		if err := c.writeFrame(ws.NewPongFrame(f.Payload)); err != nil {
			s.log.Error("pong reply failed", "conn", c.id, "peer", c.peer, "error", err)
		}
		return nil
	case ws.OpPong:
		return PongEvent{Peer: c.peer, Data: f.Payload}
	case ws.OpClose:
		s.reg.remove(c.peer)
		c.close()
		s.log.Info("connection closed by peer", "conn", c.id, "peer", c.peer)
		return CloseEvent{Peer: c.peer, Status: parseCloseStatus(f.Payload)}
	default:
		return nil
	}
}
