package protocol

import "encoding/json"

type FrameKind int

const (
	// FrameNonConforming marks bytes that are not a valid server frame.
	// A misbehaving peer must never crash the client, so decoding
	// always succeeds and yields this sentinel instead of an error.
	FrameNonConforming FrameKind = iota
	FrameState
	FrameError
)

type WireFrame struct {
	Kind  FrameKind
	State *RoomState
	Error string
	// Disconnect signals the server is about to terminate the
	// connection. Treated identically to a transport close.
	Disconnect bool
	// Raw holds the original bytes of a non-conforming frame, for logs.
	Raw []byte
}

type rawFrame struct {
	Success      *bool      `json:"success"`
	CurrentState *RoomState `json:"currentState,omitempty"`
	Error        string     `json:"error,omitempty"`
	Disconnect   bool       `json:"disconnect,omitempty"`
}

// DecodeFrame turns inbound bytes into a typed frame. Malformed input,
// a missing success discriminator, or a success frame without a state
// snapshot all decode to a non-conforming frame.
func DecodeFrame(payload []byte) *WireFrame {
	var raw rawFrame
	if err := json.Unmarshal(payload, &raw); err != nil || raw.Success == nil {
		return &WireFrame{Kind: FrameNonConforming, Raw: payload}
	}

	if !*raw.Success {
		return &WireFrame{
			Kind:       FrameError,
			Error:      raw.Error,
			Disconnect: raw.Disconnect,
		}
	}

	if raw.CurrentState == nil {
		return &WireFrame{Kind: FrameNonConforming, Raw: payload}
	}

	return &WireFrame{
		Kind:  FrameState,
		State: raw.CurrentState,
	}
}

// EncodeStateFrame builds a success frame around a snapshot. The real
// server does this, the client only needs it for tests and tooling.
func EncodeStateFrame(state *RoomState) ([]byte, error) {
	success := true
	return json.Marshal(rawFrame{
		Success:      &success,
		CurrentState: state,
	})
}

// EncodeErrorFrame builds a rejection frame.
func EncodeErrorFrame(message string, disconnect bool) ([]byte, error) {
	success := false
	return json.Marshal(rawFrame{
		Success:    &success,
		Error:      message,
		Disconnect: disconnect,
	})
}
