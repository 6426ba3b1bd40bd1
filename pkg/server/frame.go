package server

import "github.com/gobwas/ws"

// Opcode is a WebSocket frame opcode per RFC 6455.
type Opcode byte

const (
	OpcodeContinuation Opcode = 0x0
	OpcodeText         Opcode = 0x1
	OpcodeBinary       Opcode = 0x2
	OpcodeClose        Opcode = 0x8
	OpcodePing         Opcode = 0x9
	OpcodePong         Opcode = 0xA
)

// String returns the string representation of the opcode.
func (o Opcode) String() string {
	switch o {
	case OpcodeContinuation:
		return "continuation"
	case OpcodeText:
		return "text"
	case OpcodeBinary:
		return "binary"
	case OpcodeClose:
		return "close"
	case OpcodePing:
		return "ping"
	case OpcodePong:
		return "pong"
	default:
		return "unknown"
	}
}

// Frame is a single WebSocket frame with the payload already unmasked.
// Raw-mode events carry frames in, SendFrame carries them out.
type Frame struct {
	Fin     bool
	Opcode  Opcode
	Payload []byte
}

func frameFromWire(f ws.Frame) Frame {
	return Frame{
		Fin:     f.Header.Fin,
		Opcode:  Opcode(f.Header.OpCode),
		Payload: f.Payload,
	}
}

func (f Frame) wire() ws.Frame {
	return ws.Frame{
		Header: ws.Header{
			Fin:    f.Fin,
			OpCode: ws.OpCode(f.Opcode),
			Length: int64(len(f.Payload)),
		},
		Payload: f.Payload,
	}
}

// CloseCode is a WebSocket close status code per RFC 6455.
type CloseCode uint16

const (
	// CloseNormalClosure indicates a normal closure (1000).
	CloseNormalClosure CloseCode = 1000
	// CloseGoingAway indicates the endpoint is going away (1001).
	CloseGoingAway CloseCode = 1001
	// CloseProtocolError indicates a protocol error (1002).
	CloseProtocolError CloseCode = 1002
	// CloseUnsupportedData indicates unsupported data type (1003).
	CloseUnsupportedData CloseCode = 1003
	// CloseNoStatusReceived indicates no status code was received (1005).
	CloseNoStatusReceived CloseCode = 1005
	// CloseAbnormalClosure indicates abnormal closure (1006).
	CloseAbnormalClosure CloseCode = 1006
	// CloseInvalidPayload indicates invalid UTF-8 in a text message (1007).
	CloseInvalidPayload CloseCode = 1007
	// ClosePolicyViolation indicates a policy violation (1008).
	ClosePolicyViolation CloseCode = 1008
	// CloseMessageTooBig indicates the message is too large (1009).
	CloseMessageTooBig CloseCode = 1009
	// CloseInternalError indicates an internal server error (1011).
	CloseInternalError CloseCode = 1011
)

// String returns a human-readable description of the close code.
func (c CloseCode) String() string {
	switch c {
	case CloseNormalClosure:
		return "normal closure"
	case CloseGoingAway:
		return "going away"
	case CloseProtocolError:
		return "protocol error"
	case CloseUnsupportedData:
		return "unsupported data"
	case CloseNoStatusReceived:
		return "no status received"
	case CloseAbnormalClosure:
		return "abnormal closure"
	case CloseInvalidPayload:
		return "invalid payload"
	case ClosePolicyViolation:
		return "policy violation"
	case CloseMessageTooBig:
		return "message too big"
	case CloseInternalError:
		return "internal error"
	default:
		return "unknown"
	}
}

// CloseStatus is the payload of a Close frame.
type CloseStatus struct {
	Code   CloseCode
	Reason string
}

// parseCloseStatus decodes a Close frame payload. An empty payload is legal
// and yields nil.
func parseCloseStatus(payload []byte) *CloseStatus {
	if len(payload) < 2 {
		return nil
	}
	code, reason := ws.ParseCloseFrameData(payload)
	return &CloseStatus{Code: CloseCode(code), Reason: reason}
}
