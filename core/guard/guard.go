package guard

import (
	"fmt"

	"github.com/shiftkerja/shiftclient/core/session"
)

// Access is the per-route requirement. The zero value places no restriction.
type Access struct {
	RequiresAuth bool
	// RequiredRole is checked only when non-empty.
	RequiredRole session.Role
}

// Decision is the outcome of evaluating a route transition.
type Decision int

const (
	// Proceed lets the transition happen.
	Proceed Decision = iota
	// RedirectToLogin sends an unauthenticated user to the login route.
	RedirectToLogin
	// RedirectToFallback sends an authenticated user with the wrong role to the authenticated home.
	RedirectToFallback
)

func (d Decision) String() string {
	switch d {
	case Proceed:
		return "proceed"
	case RedirectToLogin:
		return "redirect_login"
	case RedirectToFallback:
		return "redirect_fallback"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// Decide evaluates access against s. Authentication is checked before role
// so an unauthenticated user never learns which routes are role-gated.
func Decide(access Access, s session.Session) Decision {
	if access.RequiresAuth && s.Token == "" {
		return RedirectToLogin
	}
	if access.RequiredRole != "" && access.RequiredRole != s.Role {
		return RedirectToFallback
	}
	return Proceed
}
