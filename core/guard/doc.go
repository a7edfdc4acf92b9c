// Package guard decides whether a route transition may happen.
//
// Decide is a pure, total function of a route's Access and the current
// session. The checks run in a fixed order:
//
//  1. RequiresAuth with an empty token redirects to the login route.
//  2. A RequiredRole different from the session role redirects to the fallback
//     (the authenticated home).
//  3. Anything else proceeds.
//
// Router holds the route table and applies Decide before each navigation.
// It also implements session.Navigator so Logout can send the user back to
// the login route.
package guard
