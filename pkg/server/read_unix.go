//go:build unix

package server

import (
	"io"
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// readNonblock pulls at most len(buf) bytes off the socket without waiting.
// Returns (0, nil) when no data is available. The runtime keeps sockets in
// non-blocking mode, so a raw read either returns data, EAGAIN, or 0 for a
// closed peer.
func readNonblock(nc net.Conn, buf []byte) (int, error) {
	sc, ok := nc.(syscall.Conn)
	if !ok {
		return readNonblockDeadline(nc, buf)
	}
	rc, err := sc.SyscallConn()
	if err != nil {
		return 0, err
	}

	var (
		n    int
		rerr error
	)
	cerr := rc.Read(func(fd uintptr) bool {
		n, rerr = unix.Read(int(fd), buf)
		return true // never park waiting for readiness
	})
	if cerr != nil {
		return 0, cerr
	}
	switch {
	case rerr == unix.EAGAIN || rerr == unix.EWOULDBLOCK || rerr == unix.EINTR:
		return 0, nil
	case rerr != nil:
		return 0, rerr
	case n == 0:
		return 0, io.EOF
	}
	return n, nil
}
