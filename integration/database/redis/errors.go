package redis

import "errors"

var (
	ErrEmptyConnectionURL   = errors.New("empty redis connection URL")
	ErrInvalidConnectionURL = errors.New("invalid redis connection URL")
	ErrNotReady             = errors.New("redis did not answer before attempts ran out")
	ErrHealthcheckFailed    = errors.New("redis healthcheck failed")
)
