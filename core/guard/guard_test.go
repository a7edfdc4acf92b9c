package guard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shiftkerja/shiftclient/core/guard"
	"github.com/shiftkerja/shiftclient/core/session"
)

var (
	anonymous = session.Session{}
	worker    = session.Session{Token: "abc123", Role: session.RoleWorker}
	business  = session.Session{Token: "def456", Role: session.RoleBusiness}
)

func TestDecide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		access  guard.Access
		session session.Session
		want    guard.Decision
	}{
		{"public route anonymous", guard.Access{}, anonymous, guard.Proceed},
		{"public route authenticated", guard.Access{}, worker, guard.Proceed},
		{"auth route anonymous", guard.Access{RequiresAuth: true}, anonymous, guard.RedirectToLogin},
		{"auth route authenticated", guard.Access{RequiresAuth: true}, worker, guard.Proceed},
		{"role route anonymous redirects to login first", guard.Access{RequiresAuth: true, RequiredRole: session.RoleBusiness}, anonymous, guard.RedirectToLogin},
		{"role mismatch", guard.Access{RequiresAuth: true, RequiredRole: session.RoleBusiness}, worker, guard.RedirectToFallback},
		{"role match", guard.Access{RequiresAuth: true, RequiredRole: session.RoleWorker}, worker, guard.Proceed},
		{"role without auth flag anonymous", guard.Access{RequiredRole: session.RoleWorker}, anonymous, guard.RedirectToFallback},
		{"role without auth flag matching", guard.Access{RequiredRole: session.RoleBusiness}, business, guard.Proceed},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, guard.Decide(tt.access, tt.session))
		})
	}
}

func TestDecide_UnauthenticatedAlwaysLogin(t *testing.T) {
	t.Parallel()

	roles := []session.Role{"", session.RoleWorker, session.RoleBusiness, session.RoleAdmin, "unknown"}
	for _, required := range roles {
		for _, held := range roles {
			s := session.Session{Role: held}
			got := guard.Decide(guard.Access{RequiresAuth: true, RequiredRole: required}, s)
			assert.Equal(t, guard.RedirectToLogin, got, "required=%q held=%q", required, held)
		}
	}
}

func TestDecide_RoleProperty(t *testing.T) {
	t.Parallel()

	roles := []session.Role{session.RoleWorker, session.RoleBusiness, session.RoleAdmin}
	for _, held := range roles {
		for _, required := range roles {
			s := session.Session{Token: "tok", Role: held}
			got := guard.Decide(guard.Access{RequiresAuth: true, RequiredRole: required}, s)
			if held == required {
				assert.Equal(t, guard.Proceed, got)
			} else {
				assert.Equal(t, guard.RedirectToFallback, got)
			}
		}
	}
}

func TestDecision_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "proceed", guard.Proceed.String())
	assert.Equal(t, "redirect_login", guard.RedirectToLogin.String())
	assert.Equal(t, "redirect_fallback", guard.RedirectToFallback.String())
	assert.Equal(t, "decision(9)", guard.Decision(9).String())
}
