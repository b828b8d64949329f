package domain

// Decision is the outcome of an authorization check.
type Decision int

const (
	Allow Decision = iota
	DenyUnauthenticated
	DenyForbidden
)

// Authorize gates an operation on the caller's role. A nil user is
// unauthenticated. ADMIN satisfies any required set, so every guarded
// operation admits admins without per-route special cases. required must be
// non-empty; an empty set is a wiring bug, not a runtime deny (the HTTP
// middleware enforces this at construction).
func Authorize(user *User, required ...Role) Decision {
	if user == nil {
		return DenyUnauthenticated
	}
	if user.Role == RoleAdmin {
		return Allow
	}
	for _, r := range required {
		if user.Role == r {
			return Allow
		}
	}
	return DenyForbidden
}
