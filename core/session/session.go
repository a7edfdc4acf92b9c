package session

// Role is the account type assigned by the backend at login.
type Role string

// Roles issued by the backend.
const (
	RoleWorker   Role = "worker"
	RoleBusiness Role = "business"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string { return string(r) }

// Session is the current user's authentication state.
// The zero value is the unauthenticated session.
type Session struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
}

// IsAuthenticated reports whether the session carries a token.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// IsZero reports whether both token and role are empty.
func (s Session) IsZero() bool {
	return s.Token == "" && s.Role == ""
}

// valid reports whether s is a complete pair: both fields set or both empty.
func (s Session) valid() bool {
	return (s.Token == "") == (s.Role == "")
}

// Credentials are sent to the login endpoint.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
