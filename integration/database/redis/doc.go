// Package redis provides Redis client initialization, health checking, and a
// Redis-backed session.Storage for deployments where the client runs as a
// long-lived agent and keeps its session outside the local filesystem.
//
// Connect validates the URL scheme (redis:// or rediss://), then pings with
// exponential backoff:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	storage := redis.NewSessionStorage(client, cfg.KeyPrefix)
//	mgr := session.NewManager(storage, authclient.New(authCfg))
//
// # Configuration
//
//	REDIS_URL              (default: redis://localhost:6379/0)
//	REDIS_RETRY_ATTEMPTS   (default: 3)
//	REDIS_RETRY_INTERVAL   (default: 5s)
//	REDIS_CONNECT_TIMEOUT  (default: 30s)
//	REDIS_KEY_PREFIX       (default: shiftclient:session:)
//
// # Storage Layout
//
// The session is stored as two plain string keys, <prefix>token and
// <prefix>role, written with a single MSET and read with a single MGET so a
// reader never sees half of a pair. A missing key means unauthenticated.
//
// # Error Handling
//
//   - ErrInvalidConnectionURL: the connection URL is malformed
//   - ErrNotReady: Redis did not answer before the retry attempts ran out
//   - ErrEmptyConnectionURL: no connection URL was provided
//   - ErrHealthcheckFailed: a health check ping failed
package redis
