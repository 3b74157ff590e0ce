// Package authz holds the pure permission checks used by handlers and
// middleware. All functions are total and side-effect-free.
package authz

import "bhashaconnect/internal/domain"

// HasRole reports whether role is one of the allowed roles.
func HasRole(role string, allowed ...string) bool {
	for _, a := range allowed {
		if role == a {
			return true // Role is allowed
		}
	}
	return false // Role is not in the allowed set
}

// CanModify reports whether the caller may mutate a row owned by ownerID.
// The caller must be the owner, or hold the admin role.
func CanModify(userID uint, role string, ownerID uint) bool {
	return userID == ownerID || role == domain.RoleAdmin
}
