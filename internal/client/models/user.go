// Package models defines the data types the FileTrack client exchanges with
// the server and holds in memory between commands.
package models

// Role enumerates the closed set of user roles the client understands.
// Authorization predicates switch over this type case by case; any value
// outside the known set falls through to "deny".
type Role string

const (
	RoleAdmin          Role = "Admin"
	RoleCollector      Role = "Collector"
	RoleSectionOfficer Role = "Section Officer"
	RoleOperator       Role = "Operator"
)

// User is the authenticated identity for the lifetime of a session.
// It is replaced wholesale on login and never partially updated.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`

	// Section is the organizational unit a Section Officer belongs to.
	// Empty for roles without a section.
	Section string `json:"section"`
}
