package server

// Mode is the per-connection decoding policy. It is selected by subprotocol
// at handshake time and can be replaced at runtime with SetMode; a connection
// has exactly one Mode at any instant.
type Mode int

const (
	// ModeParsed decodes frames into semantic events and replies to Pings
	// automatically.
	ModeParsed Mode = iota
	// ModeRaw surfaces one frame per event with no interpretation; the
	// host owns all framing semantics, including Ping and Close handling.
	ModeRaw
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeParsed:
		return "parsed"
	case ModeRaw:
		return "raw"
	default:
		return "unknown"
	}
}
