package models

// Role identifies which side of the platform a session belongs to.
type Role string

const (
	RoleOwner    Role = "owner"
	RoleProvider Role = "provider"
)

// Identity holds the user attributes tied to a session token.
type Identity struct {
	ID    string                 `json:"_id,omitempty"`
	Name  string                 `json:"name,omitempty"`
	Phone string                 `json:"phone,omitempty"`
	Attrs map[string]interface{} `json:"-"`
}

// Session is the authenticated state for one role.
// Invariant: Identity is non-nil exactly when Token is non-empty and
// structurally valid; an invalid token forces both to absent.
type Session struct {
	Role     Role
	Token    string
	Identity *Identity
}

// Active reports whether the session carries a usable credential.
func (s *Session) Active() bool {
	return s != nil && s.Token != "" && s.Identity != nil
}
