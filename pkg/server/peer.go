package server

import "net"

// Peer identifies a connection for its whole lifetime. It is the remote
// socket address, but callers should treat it as an opaque key: a value is
// unique among live connections and may be reused only after the connection
// that carried it is fully removed.
type Peer string

// String returns the peer's remote address.
func (p Peer) String() string { return string(p) }

func peerOf(nc net.Conn) Peer {
	return Peer(nc.RemoteAddr().String())
}
