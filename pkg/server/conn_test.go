package server

import (
	"bytes"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/gobwas/ws"
)

func testConn() *conn {
	return &conn{
		peer:     "test",
		chunk:    make([]byte, 64),
		maxFrame: 1 << 20,
	}
}

func frameBytes(t *testing.T, f ws.Frame) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := ws.WriteFrame(&buf, f); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func maskedText(t *testing.T, data string) []byte {
	t.Helper()
	return frameBytes(t, ws.MaskFrameInPlace(ws.NewTextFrame([]byte(data))))
}

func TestNextFrameEmptyBuffer(t *testing.T) {
	c := testConn()
	_, ok, err := c.nextFrame()
	if err != nil || ok {
		t.Fatalf("empty buffer: ok=%v err=%v", ok, err)
	}
}

func TestNextFrameReassembly(t *testing.T) {
	c := testConn()
	wire := maskedText(t, "hello")

	// One header byte is not enough.
	c.rbuf = append(c.rbuf, wire[0])
	if _, ok, err := c.nextFrame(); ok || err != nil {
		t.Fatalf("partial header: ok=%v err=%v", ok, err)
	}

	// Everything except the final payload byte: still incomplete, and the
	// buffered bytes must survive.
	c.rbuf = append(c.rbuf, wire[1:len(wire)-1]...)
	if _, ok, err := c.nextFrame(); ok || err != nil {
		t.Fatalf("partial payload: ok=%v err=%v", ok, err)
	}
	if len(c.rbuf) != len(wire)-1 {
		t.Fatalf("partial bytes not preserved: %d", len(c.rbuf))
	}

	c.rbuf = append(c.rbuf, wire[len(wire)-1])
	f, ok, err := c.nextFrame()
	if err != nil || !ok {
		t.Fatalf("complete frame: ok=%v err=%v", ok, err)
	}
	if f.Header.OpCode != ws.OpText || string(f.Payload) != "hello" {
		t.Errorf("decoded %v %q", f.Header.OpCode, f.Payload)
	}
	if f.Header.Masked {
		t.Error("payload should be unmasked after decode")
	}
	if len(c.rbuf) != 0 {
		t.Errorf("buffer not consumed: %d bytes left", len(c.rbuf))
	}
}

func TestNextFrameOnePerCall(t *testing.T) {
	c := testConn()
	c.rbuf = append(maskedText(t, "one"), maskedText(t, "two")...)

	f, ok, err := c.nextFrame()
	if err != nil || !ok || string(f.Payload) != "one" {
		t.Fatalf("first decode: ok=%v err=%v payload=%q", ok, err, f.Payload)
	}

	f, ok, err = c.nextFrame()
	if err != nil || !ok || string(f.Payload) != "two" {
		t.Fatalf("second decode: ok=%v err=%v payload=%q", ok, err, f.Payload)
	}

	if _, ok, _ := c.nextFrame(); ok {
		t.Fatal("no third frame expected")
	}
}

func TestNextFrameTooLarge(t *testing.T) {
	c := testConn()
	c.maxFrame = 4
	c.rbuf = maskedText(t, "hello") // 5 byte payload

	_, ok, err := c.nextFrame()
	if ok || !errors.Is(err, ErrFrameTooLarge) {
		t.Fatalf("ok=%v err=%v, want ErrFrameTooLarge", ok, err)
	}
	if len(c.rbuf) != 0 {
		t.Error("poisoned buffer should be dropped")
	}
}

func TestFillWouldBlock(t *testing.T) {
	p1, p2 := net.Pipe()
	defer p1.Close()
	defer p2.Close()

	c := testConn()
	c.nc = p1

	// Nothing written: the read must come back quickly and empty-handed.
	start := time.Now()
	if err := c.fill(); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if len(c.rbuf) != 0 {
		t.Errorf("rbuf = %d bytes, want 0", len(c.rbuf))
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("fill blocked for %v", elapsed)
	}
}

func TestFillAppends(t *testing.T) {
	p1, p2 := net.Pipe()
	defer p1.Close()
	defer p2.Close()

	c := testConn()
	c.nc = p1

	wire := maskedText(t, "hi")
	go p2.Write(wire)

	deadline := time.Now().Add(2 * time.Second)
	for len(c.rbuf) < len(wire) {
		if time.Now().After(deadline) {
			t.Fatalf("rbuf = %d of %d bytes", len(c.rbuf), len(wire))
		}
		if err := c.fill(); err != nil {
			t.Fatalf("fill: %v", err)
		}
	}

	f, ok, err := c.nextFrame()
	if err != nil || !ok || string(f.Payload) != "hi" {
		t.Fatalf("decode after fill: ok=%v err=%v payload=%q", ok, err, f.Payload)
	}
}
