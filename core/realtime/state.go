package realtime

import (
	"fmt"
)

// State is the lifecycle position of a Connection.
type State int

const (
	// Disconnected is the initial state; no transport has been attempted.
	Disconnected State = iota
	// Connecting means a dial is in flight.
	Connecting
	// Open means the handshake completed and frames flow both ways.
	Open
	// Closed means the last transport ended; Status.Reason says why.
	Closed
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// CloseReason is whatever close information the transport supplied.
type CloseReason struct {
	Code int
	Text string
}

func (r CloseReason) String() string {
	switch {
	case r.Code == 0 && r.Text == "":
		return ""
	case r.Text == "":
		return fmt.Sprintf("code %d", r.Code)
	default:
		return fmt.Sprintf("code %d: %s", r.Code, r.Text)
	}
}

// Status is a snapshot of the connection state machine.
type Status struct {
	State State
	// Reason is set only when State is Closed.
	Reason CloseReason
	// ConnectionID identifies the transport instance the status refers to.
	ConnectionID string
}

// IsConnected reports whether State is Open.
func (s Status) IsConnected() bool {
	return s.State == Open
}
