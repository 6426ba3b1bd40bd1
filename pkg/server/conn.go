package server

import (
	"bytes"
	"errors"
	"io"
	"net"
	"time"

	"github.com/gobwas/ws"
	"github.com/google/uuid"
)

// conn is the per-connection state. It exclusively owns its socket: created
// on the acceptor goroutine, moved into the registry through the hand-off
// queue, and from then on touched only by the tick goroutine. Inbound bytes
// accumulate in rbuf because a frame can arrive split across ticks; partial
// bytes stay buffered until the rest shows up.
type conn struct {
	id          string // log correlation only
	peer        Peer
	nc          net.Conn
	mode        Mode
	subprotocol string

	rbuf  []byte // inbound bytes not yet decoded
	chunk []byte // scratch for the tick's single read

	maxFrame     int64
	writeTimeout time.Duration
}

func newConn(nc net.Conn, mode Mode, subprotocol string, chunkSize int, maxFrame int64, writeTimeout time.Duration) *conn {
	return &conn{
		id:           uuid.NewString(),
		peer:         peerOf(nc),
		nc:           nc,
		mode:         mode,
		subprotocol:  subprotocol,
		chunk:        make([]byte, chunkSize),
		maxFrame:     maxFrame,
		writeTimeout: writeTimeout,
	}
}

// fill performs the tick's single non-blocking read, appending whatever
// arrived to the decode buffer. No data available is not an error.
func (c *conn) fill() error {
	n, err := readNonblock(c.nc, c.chunk)
	if n > 0 {
		c.rbuf = append(c.rbuf, c.chunk[:n]...)
	}
	return err
}

// nextFrame decodes at most one complete frame from the buffer. ok is false
// while the buffer holds only a partial frame; those bytes stay put and
// decoding resumes on a later tick. On a protocol error the buffer is
// dropped so the same bytes cannot fail again every tick.
func (c *conn) nextFrame() (ws.Frame, bool, error) {
	if len(c.rbuf) == 0 {
		return ws.Frame{}, false, nil
	}

	br := bytes.NewReader(c.rbuf)
	h, err := ws.ReadHeader(br)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return ws.Frame{}, false, nil // header not complete yet
		}
		c.rbuf = nil
		return ws.Frame{}, false, err
	}
	if h.Length > c.maxFrame {
		c.rbuf = nil
		return ws.Frame{}, false, ErrFrameTooLarge
	}
	if int64(br.Len()) < h.Length {
		return ws.Frame{}, false, nil // payload not complete yet
	}

	payload := make([]byte, h.Length)
	if _, err := io.ReadFull(br, payload); err != nil {
		c.rbuf = nil
		return ws.Frame{}, false, err
	}
	consumed := len(c.rbuf) - br.Len()
	kept := copy(c.rbuf, c.rbuf[consumed:])
	c.rbuf = c.rbuf[:kept]

	if h.Masked {
		ws.Cipher(payload, h.Mask, 0)
		h.Masked = false
	}
	return ws.Frame{Header: h, Payload: payload}, true, nil
}

func (c *conn) writeFrame(f ws.Frame) error {
	if c.writeTimeout > 0 {
		if err := c.nc.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return err
		}
	}
	return ws.WriteFrame(c.nc, f)
}

func (c *conn) close() error {
	return c.nc.Close()
}

// readNonblockDeadline approximates a non-blocking read with a short read
// deadline. Fallback for connections without raw file descriptor access
// (pipes in tests, non-unix platforms).
func readNonblockDeadline(nc net.Conn, buf []byte) (int, error) {
	if err := nc.SetReadDeadline(time.Now().Add(pollWindow)); err != nil {
		return 0, err
	}
	n, err := nc.Read(buf)
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return n, nil
		}
		return n, err
	}
	return n, nil
}

// pollWindow bounds how long the deadline-based fallback may wait for data.
const pollWindow = time.Millisecond
