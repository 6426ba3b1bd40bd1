package server

import (
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/tickws/tickws/pkg/config"
	"github.com/tickws/tickws/pkg/logging"
)

// Server is the WebSocket server core. Two goroutines ever touch it: the
// acceptor goroutine it spawns in Start, and the host's tick goroutine,
// which owns the registry and calls Poll and the writer methods. The
// hand-off queue is the only state shared between the two.
type Server struct {
	cfg *config.Config
	log *slog.Logger

	ln      *net.TCPListener
	pending *handoff
	reg     *registry

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Defaults to logging.Nop().
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a Server. A nil config means config.Default().
func New(cfg *config.Config, opts ...Option) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Server{
		cfg:     cfg,
		log:     logging.Nop(),
		pending: newHandoff(),
		reg:     newRegistry(),
		done:    make(chan struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Start binds the TCP listener and spawns the acceptor goroutine. A bind
// failure is fatal: it is returned once and the server never runs.
func (s *Server) Start() error {
	select {
	case <-s.done:
		return ErrServerClosed
	default:
	}
	if s.ln != nil {
		return ErrAlreadyRunning
	}

	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("bind %s: %w", s.cfg.Listen, err)
	}
	tl, ok := ln.(*net.TCPListener)
	if !ok {
		ln.Close()
		return fmt.Errorf("bind %s: not a TCP listener", s.cfg.Listen)
	}
	s.ln = tl
	s.log.Info("listening", "addr", tl.Addr(),
		"parsedProtocol", s.cfg.ParsedProtocol, "rawProtocol", s.cfg.RawProtocol)

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

// Addr returns the listener's address, or nil before Start. With a ":0"
// listen config this is how the host learns the bound port.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Peers returns the registered peers in registry order.
func (s *Server) Peers() []Peer {
	return s.reg.peers()
}

// Count returns the number of registered connections.
func (s *Server) Count() int {
	return s.reg.len()
}

// Close stops the acceptor, closes the listener, and closes every pending
// and registered connection. Safe to call more than once. Must be called
// from the tick goroutine, like Poll.
func (s *Server) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		if s.ln != nil {
			err = s.ln.Close()
			s.wg.Wait()
		}
		s.pending.drain(func(c *conn) { c.close() })
		s.reg.each(func(c *conn) { c.close() })
		s.reg = newRegistry()
		s.log.Info("server closed")
	})
	return err
}
