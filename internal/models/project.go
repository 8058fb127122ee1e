package models

import "time"

// Project represents a tenant row. Every company, account and transaction
// hangs off exactly one project.
type Project struct {
	ProjectID   string `db:"project_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}

// UserProject represents a user's membership row in a project.
type UserProject struct {
	UserID    string    `db:"user_id"`
	ProjectID string    `db:"project_id"`
	Role      string    `db:"role"`
	JoinedAt  time.Time `db:"joined_at"`
	AuditFields
}
