package realtime

import "errors"

var (
	// ErrDial wraps handshake failures reported by the dialer.
	ErrDial = errors.New("realtime dial failed")
	// ErrEncode is logged when a value passed to Send cannot be serialized.
	ErrEncode = errors.New("realtime message encode failed")
	// ErrWrite is logged when writing an outbound frame fails.
	ErrWrite = errors.New("realtime write failed")
)
