package types

// Session is the authenticated caller's identity, populated by the auth
// middleware from the Authorizer session cookie and passed explicitly to
// the service layer. Read-only to all consumers.
type Session struct {
	UserID string
	Email  string
	Roles  []string
}

// HasRole reports whether the session was validated for the given role.
func (s *Session) HasRole(role string) bool {
	if s == nil {
		return false
	}
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}
