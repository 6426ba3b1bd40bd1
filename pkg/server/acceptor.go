package server

import (
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gobwas/ws"
)

// acceptLoop runs on the dedicated acceptor goroutine for the server's
// lifetime. Accept waits are bounded by the configured backoff so the loop
// notices teardown; a failed accept or handshake is logged and never
// terminates the loop.
func (s *Server) acceptLoop() {
	defer s.wg.Done()

	backoff := s.cfg.AcceptBackoffDuration()
	for {
		select {
		case <-s.done:
			return
		default:
		}

		if err := s.ln.SetDeadline(time.Now().Add(backoff)); err != nil {
			return
		}
		nc, err := s.ln.Accept()
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.log.Error("accept failed", "error", err)
			continue
		}

		// Handshakes run synchronously here: at most one in flight,
		// and accepted order is merged order.
		c, err := s.upgrade(nc)
		if err != nil {
			s.log.Warn("handshake failed", "remote", nc.RemoteAddr(), "error", err)
			nc.Close()
			continue
		}

		s.log.Info("connection established",
			"conn", c.id, "peer", c.peer, "mode", c.mode, "subprotocol", c.subprotocol)
		s.pending.push(c)
	}
}

// upgrade performs the HTTP upgrade handshake on the accepted socket and
// negotiates the connection's mode from the offered subprotocols. Offering
// neither configured token rejects the handshake with a bodyless 400.
func (s *Server) upgrade(nc net.Conn) (*conn, error) {
	if err := nc.SetDeadline(time.Now().Add(s.cfg.HandshakeTimeoutDuration())); err != nil {
		return nil, err
	}

	var (
		offered []string
		mode    Mode
		proto   string
	)
	u := ws.Upgrader{
		ProtocolCustom: func(value []byte) (string, bool) {
			offered = append(offered, splitProtocols(string(value))...)
			// Selection happens in OnBeforeUpgrade, once every
			// header line has been seen; the echoed token is
			// emitted there too.
			return "", true
		},
		OnBeforeUpgrade: func() (ws.HandshakeHeader, error) {
			var ok bool
			mode, proto, ok = selectProtocol(offered, s.cfg.ParsedProtocol, s.cfg.RawProtocol)
			if !ok {
				return nil, ws.RejectConnectionError(
					ws.RejectionStatus(http.StatusBadRequest),
				)
			}
			return ws.HandshakeHeaderHTTP(http.Header{
				"Sec-WebSocket-Protocol": []string{proto},
			}), nil
		},
	}

	if _, err := u.Upgrade(nc); err != nil {
		return nil, err
	}
	if err := nc.SetDeadline(time.Time{}); err != nil {
		return nil, err
	}

	return newConn(nc, mode, proto,
		s.cfg.ReadChunkSize, s.cfg.MaxFrameSize, s.cfg.WriteTimeoutDuration()), nil
}
