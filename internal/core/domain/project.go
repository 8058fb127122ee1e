package domain

import "time"

// Project represents an isolated bookkeeping environment (tenant) containing
// companies, accounts and transactions. Every query and mutation is scoped to
// exactly one project.
type Project struct {
	ProjectID   string `json:"projectID"`   // Primary Key (e.g., UUID)
	Name        string `json:"name"`        // User-defined name for the project
	Description string `json:"description"` // Optional description
	IsActive    bool   `json:"isActive"`    // Indicates whether the project is active or disabled
	AuditFields        // Embed common audit fields
}

// UserProjectRole defines the possible roles a user can have within a project.
type UserProjectRole string

const (
	RoleAdmin    UserProjectRole = "ADMIN"
	RoleMember   UserProjectRole = "MEMBER"
	RoleReadOnly UserProjectRole = "READ_ONLY" // Users with read-only access to project data
	RoleRemoved  UserProjectRole = "REMOVED"  // For users who have been removed from the project
)

// roleRank orders roles so a higher role satisfies a lower requirement.
var roleRank = map[UserProjectRole]int{
	RoleReadOnly: 1,
	RoleMember:   2,
	RoleAdmin:    3,
}

// Satisfies reports whether the role grants at least the required role.
func (r UserProjectRole) Satisfies(required UserProjectRole) bool {
	return roleRank[r] >= roleRank[required] && roleRank[r] > 0
}

// UserProject represents the membership of a User in a Project.
type UserProject struct {
	UserID    string          `json:"userID"`    // FK -> users.user_id
	UserName  string          `json:"userName"`  // Name of the user
	ProjectID string          `json:"projectID"` // FK -> projects.project_id
	Role      UserProjectRole `json:"role"`      // Role of the user in this specific project
	JoinedAt  time.Time       `json:"joinedAt"`  // Timestamp when the user joined the project
}
