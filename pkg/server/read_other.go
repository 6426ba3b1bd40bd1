//go:build !unix

package server

import "net"

func readNonblock(nc net.Conn, buf []byte) (int, error) {
	return readNonblockDeadline(nc, buf)
}
