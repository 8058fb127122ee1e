package mapping

import (
	"github.com/caixadigital/cashbook_app/internal/core/domain"
	"github.com/caixadigital/cashbook_app/internal/models"
)

// ToModelAPIToken converts a domain APIToken to a model APIToken
func ToModelAPIToken(d domain.APIToken) models.APIToken {
	return models.APIToken{
		TokenID:     d.TokenID,
		UserID:      d.UserID,
		Name:        d.Name,
		TokenHash:   d.TokenHash,
		ExpiresAt:   d.ExpiresAt,
		LastUsedAt:  d.LastUsedAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAPIToken converts a model APIToken to a domain APIToken
func ToDomainAPIToken(m models.APIToken) domain.APIToken {
	return domain.APIToken{
		TokenID:     m.TokenID,
		UserID:      m.UserID,
		Name:        m.Name,
		TokenHash:   m.TokenHash,
		ExpiresAt:   m.ExpiresAt,
		LastUsedAt:  m.LastUsedAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
