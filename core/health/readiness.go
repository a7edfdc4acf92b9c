package health

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shiftkerja/shiftclient/core/logger"
)

// ErrNotReady is returned by Readiness when any check fails.
var ErrNotReady = errors.New("dependency not ready")

// Check reports whether a single dependency is usable.
type Check func(context.Context) error

// Readiness runs every check and reports all failures at once.
//
// Example:
//
//	err := health.Readiness(ctx, log, redis.Healthcheck(client))
func Readiness(ctx context.Context, log *slog.Logger, checks ...Check) error {
	var errs []error
	for i, check := range checks {
		if err := check(ctx); err != nil {
			log.ErrorContext(ctx, "readiness check failed",
				logger.Component("health"),
				slog.Int("check", i),
				logger.Error(err),
			)
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrNotReady}, errs...)...)
	}
	return nil
}
