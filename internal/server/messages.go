package server

import (
	"encoding/json"

	"github.com/innabyinna/ad-labs/internal/webdemo"
)

const (
	messageTypeFrame = "frame"
	messageTypeError = "error"
)

// Message is the outbound envelope: {"type":"frame","frame":{...}} or
// {"type":"error","error":"..."}.
type Message struct {
	Type  string         `json:"type"`
	Frame *webdemo.Frame `json:"frame,omitempty"`
	Error string         `json:"error,omitempty"`
}

func encodeFrame(f webdemo.Frame) ([]byte, error) {
	return json.Marshal(Message{Type: messageTypeFrame, Frame: &f})
}

func encodeError(err error) []byte {
	// A string-only envelope cannot fail to marshal.
	b, _ := json.Marshal(Message{Type: messageTypeError, Error: err.Error()})
	return b
}

func decodeEvent(payload []byte) (webdemo.Event, error) {
	var ev webdemo.Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return webdemo.Event{}, err
	}
	return ev, nil
}
