package models

// Company represents a business unit within a project.
type Company struct {
	CompanyID string `db:"company_id"`
	ProjectID string `db:"project_id"`
	Name      string `db:"name"`
	IsActive  bool   `db:"is_active"`
	AuditFields
}
