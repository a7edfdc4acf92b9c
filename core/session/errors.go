package session

import "errors"

var (
	// ErrIncompleteSession is returned when a token arrives without a role or vice versa.
	ErrIncompleteSession = errors.New("session token and role must be set together")
	// ErrLoadSession is returned when durable storage cannot be read.
	ErrLoadSession = errors.New("failed to load session")
	// ErrSaveSession is returned when saving a session to durable storage fails.
	ErrSaveSession = errors.New("failed to save session")
	// ErrClearSession is returned when deleting the durable copy fails.
	ErrClearSession = errors.New("failed to clear session")
	// ErrInvalidToken is returned when a token cannot be decoded as a JWT.
	ErrInvalidToken = errors.New("invalid session token")
)
