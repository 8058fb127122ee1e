package domain

// Company groups accounts inside a project (a small business may keep books
// for more than one legal entity).
type Company struct {
	CompanyID string `json:"companyID"` // Primary Key (e.g., UUID)
	ProjectID string `json:"projectID"` // FK -> projects.project_id (NON-NULL)
	Name      string `json:"name"`      // Legal or trading name
	IsActive  bool   `json:"isActive"`  // Soft delete flag
	AuditFields
}
