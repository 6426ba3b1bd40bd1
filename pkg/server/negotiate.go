package server

import "strings"

// splitProtocols parses one Sec-WebSocket-Protocol header value into its
// offered tokens.
func splitProtocols(value string) []string {
	parts := strings.Split(value, ",")
	offered := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			offered = append(offered, p)
		}
	}
	return offered
}

// selectProtocol picks the operating mode for a connection from the
// subprotocols the client offered. Parsed wins when both tokens are offered,
// regardless of the order the client listed them in. ok is false when
// neither token was offered; such a handshake is rejected.
func selectProtocol(offered []string, parsedProtocol, rawProtocol string) (mode Mode, protocol string, ok bool) {
	for _, p := range offered {
		if p == parsedProtocol {
			return ModeParsed, parsedProtocol, true
		}
	}
	for _, p := range offered {
		if p == rawProtocol {
			return ModeRaw, rawProtocol, true
		}
	}
	return 0, "", false
}
