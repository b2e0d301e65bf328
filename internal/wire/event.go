package wire

import (
	"encoding/json"
	"fmt"
	"time"
)

// Level is the severity attached to an event.
type Level string

const (
	LevelDebug    Level = "DEBUG"
	LevelInfo     Level = "INFO"
	LevelWarning  Level = "WARNING"
	LevelError    Level = "ERROR"
	LevelCritical Level = "CRITICAL"
	LevelFatal    Level = "FATAL"
)

// EventType identifies the kind of telemetry event.
type EventType string

const (
	ToolInvoked        EventType = "tool_invoked"
	ToolSucceeded      EventType = "tool_succeeded"
	ToolFailed         EventType = "tool_failed"
	ExceptionUnhandled EventType = "exception_unhandled"
	ValidationFailed   EventType = "validation_failed"
)

// DefaultLevel returns the severity convention for each event kind.
func DefaultLevel(t EventType) Level {
	switch t {
	case ToolFailed:
		return LevelError
	case ExceptionUnhandled:
		return LevelFatal
	case ValidationFailed:
		return LevelWarning
	default:
		return LevelInfo
	}
}

// Context rides on every event and identifies the sending installation.
type Context struct {
	InstallationID string `json:"installation_id,omitempty"`
	ToolVersion    string `json:"tool_version"`
	Runtime        string `json:"runtime,omitempty"`
	OS             string `json:"os,omitempty"`
	Arch           string `json:"arch,omitempty"`
}

// Event is one wire record sent to the daemon. Kind-specific fields are
// omitted when empty; the daemon tolerates partial records.
type Event struct {
	Level      Level     `json:"level"`
	Type       EventType `json:"event_type"`
	Tool       string    `json:"tool"`
	Command    string    `json:"command,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	DurationMS int64     `json:"duration_ms,omitempty"`
	ErrorType  string    `json:"error_type,omitempty"`
	Traceback  string    `json:"traceback,omitempty"`
	Details    string    `json:"details,omitempty"`
	Context    Context   `json:"context"`
}

// Validate checks the identity invariants: tool is always required, and
// command is required for everything except exception_unhandled.
func (e Event) Validate() error {
	if e.Tool == "" {
		return fmt.Errorf("event %s: missing tool", e.Type)
	}
	if e.Command == "" && e.Type != ExceptionUnhandled {
		return fmt.Errorf("event %s: missing command", e.Type)
	}
	switch e.Type {
	case ToolInvoked, ToolSucceeded, ToolFailed, ExceptionUnhandled, ValidationFailed:
		return nil
	default:
		return fmt.Errorf("unknown event type %q", e.Type)
	}
}

// Encode renders the event as one newline-terminated JSON record.
func Encode(e Event) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode %s event: %w", e.Type, err)
	}
	return append(data, '\n'), nil
}

// Decode parses one wire record. Used by sinks and tests; the client
// itself only encodes.
func Decode(line []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(line, &e); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	return e, nil
}
