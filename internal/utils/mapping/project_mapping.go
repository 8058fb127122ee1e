package mapping

import (
	"github.com/caixadigital/cashbook_app/internal/core/domain"
	"github.com/caixadigital/cashbook_app/internal/models"
)

// ToModelProject converts a domain Project to a model Project
func ToModelProject(d domain.Project) models.Project {
	return models.Project{
		ProjectID:   d.ProjectID,
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProject converts a model Project to a domain Project
func ToDomainProject(m models.Project) domain.Project {
	return domain.Project{
		ProjectID:   m.ProjectID,
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProjectSlice converts a slice of model Projects to domain Projects
func ToDomainProjectSlice(ms []models.Project) []domain.Project {
	ds := make([]domain.Project, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProject(m)
	}
	return ds
}

// ToModelUserProject converts a domain UserProject to a model UserProject
func ToModelUserProject(d domain.UserProject) models.UserProject {
	return models.UserProject{
		UserID:    d.UserID,
		ProjectID: d.ProjectID,
		Role:      string(d.Role),
		JoinedAt:  d.JoinedAt,
	}
}

// ToDomainUserProject converts a model UserProject to a domain UserProject
func ToDomainUserProject(m models.UserProject) domain.UserProject {
	return domain.UserProject{
		UserID:    m.UserID,
		ProjectID: m.ProjectID,
		Role:      domain.UserProjectRole(m.Role),
		JoinedAt:  m.JoinedAt,
	}
}
