// Package authz holds the pure authorization predicates deciding which file
// actions a user may perform. The predicates are total: given any User and
// File they return a boolean and never fail. A nil user is authorized for
// nothing.
package authz

import "github.com/anandk87/filetrack/internal/client/models"

// CanView reports whether u may fetch a file for inline viewing.
// Viewing is unrestricted once authenticated.
func CanView(u *models.User, _ models.File) bool {
	return u != nil
}

// CanComplete reports whether u may mark f as completed. Already completed
// files cannot be completed again, regardless of role.
func CanComplete(u *models.User, f models.File) bool {
	if u == nil || f.Status == models.StatusCompleted {
		return false
	}
	return canMutate(u, f)
}

// CanDelete reports whether u may soft-delete f. Unlike completion, deletion
// is not blocked by status: completed files remain deletable.
func CanDelete(u *models.User, f models.File) bool {
	if u == nil {
		return false
	}
	return canMutate(u, f)
}

// canMutate is the shared role/section rule for mutating actions.
func canMutate(u *models.User, f models.File) bool {
	switch u.Role {
	case models.RoleAdmin, models.RoleCollector:
		return true
	case models.RoleSectionOfficer:
		return u.Section != "" && u.Section == f.Section
	case models.RoleOperator:
		return false
	default:
		// Unknown roles are denied rather than trusted.
		return false
	}
}
