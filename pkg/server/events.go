package server

// Event is a protocol event produced by Poll. Events carry only the peer
// identity, never the connection itself; replies go through the writer
// methods on Server. Concrete types: OpenEvent, MessageEvent, BinaryEvent,
// PongEvent, RawFrameEvent, CloseEvent.
type Event interface {
	// Source returns the peer the event originated from.
	Source() Peer
}

// OpenEvent signals a connection completed its handshake and is now
// registered.
type OpenEvent struct {
	Peer        Peer
	Mode        Mode
	Subprotocol string
}

// MessageEvent carries a text message from a Parsed-mode connection.
type MessageEvent struct {
	Peer Peer
	Data string
}

// BinaryEvent carries a binary message from a Parsed-mode connection.
type BinaryEvent struct {
	Peer Peer
	Data []byte
}

// PongEvent carries a Pong payload from a Parsed-mode connection.
type PongEvent struct {
	Peer Peer
	Data []byte
}

// RawFrameEvent carries one undecoded frame from a Raw-mode connection.
type RawFrameEvent struct {
	Peer  Peer
	Frame Frame
}

// CloseEvent signals the remote sent a Close frame and the connection has
// been removed. Status is nil when the Close frame carried no payload.
type CloseEvent struct {
	Peer   Peer
	Status *CloseStatus
}

func (e OpenEvent) Source() Peer     { return e.Peer }
func (e MessageEvent) Source() Peer  { return e.Peer }
func (e BinaryEvent) Source() Peer   { return e.Peer }
func (e PongEvent) Source() Peer     { return e.Peer }
func (e RawFrameEvent) Source() Peer { return e.Peer }
func (e CloseEvent) Source() Peer    { return e.Peer }
