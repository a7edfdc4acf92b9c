package logger

import (
	"log/slog"
	"time"
)

// Helpers that take a string or error return an empty Attr for empty input,
// so log.Info("msg", logger.Error(err)) needs no nil check. slog drops empty attrs.

// Error creates an attribute for a single error under the key "error".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Elapsed records the time since start.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}

// Delay records a scheduled wait such as a reconnect backoff.
func Delay(d time.Duration) slog.Attr {
	return slog.Duration("delay", d)
}

// RetryCount records which attempt is being made.
func RetryCount(count int) slog.Attr {
	return slog.Int("retry_count", count)
}

// URL records a remote endpoint address.
func URL(u string) slog.Attr {
	if u == "" {
		return slog.Attr{}
	}
	return slog.String("url", u)
}

// StatusCode records an HTTP response status.
func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}

// Role records a session role.
func Role(role string) slog.Attr {
	if role == "" {
		return slog.Attr{}
	}
	return slog.String("role", role)
}

// State records a state machine position.
func State(state string) slog.Attr {
	return slog.String("state", state)
}

// ConnectionID identifies one transport instance.
func ConnectionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("connection_id", id)
}

// Route records a navigation path.
func Route(path string) slog.Attr {
	return slog.String("route", path)
}

// Reason records why something ended.
func Reason(reason string) slog.Attr {
	if reason == "" {
		return slog.Attr{}
	}
	return slog.String("reason", reason)
}

// ID records an identifier under key. A nil value yields an empty Attr.
func ID(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Action(action string) slog.Attr {
	return slog.String("action", action)
}

// Result records an operation outcome such as "success" or "failure".
func Result(result string) slog.Attr {
	return slog.String("result", result)
}
