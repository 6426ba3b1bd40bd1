package server

import "errors"

// Common errors for the server package.
var (
	// ErrPeerNotFound indicates a write or mode change against a peer
	// that is not registered.
	ErrPeerNotFound = errors.New("peer not found")
	// ErrAlreadyRunning indicates Start was called twice.
	ErrAlreadyRunning = errors.New("server already running")
	// ErrServerClosed indicates the server has been closed.
	ErrServerClosed = errors.New("server closed")
	// ErrFrameTooLarge indicates an inbound frame exceeded the configured
	// maximum payload size.
	ErrFrameTooLarge = errors.New("frame exceeds maximum size")
)
