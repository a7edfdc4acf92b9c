// Package health aggregates dependency checks such as a Redis ping into a
// single readiness result.
//
//	if err := health.Readiness(ctx, log, redis.Healthcheck(client)); err != nil {
//		// errors.Is(err, health.ErrNotReady)
//	}
package health
