package webdemo

import "fmt"

// EventType names a controller input.
type EventType string

const (
	// EventUpdate replaces the settings with Event.Settings.
	EventUpdate EventType = eventTypeUpdate
	// EventReset restores defaults and draws a new noise buffer. The filter
	// kind and the ShowFiltered toggle are kept.
	EventReset EventType = eventTypeReset
)

// Event is one user interaction. It decodes directly from the inbound
// WebSocket message {"type":"update","settings":{...}}.
type Event struct {
	Type     EventType `json:"type"`
	Settings *Settings `json:"settings,omitempty"`
}

// UpdateEvent returns an update event carrying s.
func UpdateEvent(s Settings) Event {
	return Event{Type: EventUpdate, Settings: &s}
}

// ResetEvent returns a reset event.
func ResetEvent() Event {
	return Event{Type: EventReset}
}

func (ev Event) validate() error {
	switch ev.Type {
	case EventUpdate:
		if ev.Settings == nil {
			return fmt.Errorf("update event without settings")
		}
		return nil
	case EventReset:
		return nil
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
}
