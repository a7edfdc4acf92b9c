// Package session owns the authenticated identity of the client: an opaque
// token plus the role the backend assigned at login.
//
// The durable copy held by a Storage is the source of truth across restarts.
// A Manager is constructed once, hydrated from storage, and handed to every
// consumer by reference:
//
//	mgr := session.NewManager(
//		session.NewFileStorage(".shiftclient/session.json"),
//		authclient.New(authCfg),
//		session.WithLogger(log),
//		session.WithNavigator(router),
//	)
//	if err := mgr.Hydrate(ctx); err != nil {
//		log.Warn("starting logged out", logger.Error(err))
//	}
//
// # Login and Logout
//
// Login reports success as a bool. Network errors, rejected credentials,
// malformed responses and storage write failures all yield false and leave
// the session unchanged; the detail goes to the logger only.
//
//	if !mgr.Login(ctx, session.Credentials{Email: "u@x.com", Password: "pw"}) {
//		// stay on the login surface
//	}
//
// Logout always clears memory and storage, then asks the Navigator to go to
// the login route. It is safe to call repeatedly.
//
// # Storage
//
// Storage implementations keep two string entries, "token" and "role", and
// must read them together. Absence of either one means unauthenticated.
// MemoryStorage and FileStorage live here; a Redis implementation is in
// integration/storage/redis.
//
// # Claims
//
// ParseClaims decodes the backend JWT without verifying it. Use the result
// for display and diagnostics only.
package session
