package domain_test

import (
	"testing"

	"github.com/caixadigital/cashbook_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestUserProjectRole_Satisfies(t *testing.T) {
	tests := []struct {
		name     string
		role     domain.UserProjectRole
		required domain.UserProjectRole
		want     bool
	}{
		{name: "admin satisfies admin", role: domain.RoleAdmin, required: domain.RoleAdmin, want: true},
		{name: "admin satisfies member", role: domain.RoleAdmin, required: domain.RoleMember, want: true},
		{name: "member satisfies read-only", role: domain.RoleMember, required: domain.RoleReadOnly, want: true},
		{name: "member does not satisfy admin", role: domain.RoleMember, required: domain.RoleAdmin, want: false},
		{name: "read-only satisfies read-only", role: domain.RoleReadOnly, required: domain.RoleReadOnly, want: true},
		{name: "read-only does not satisfy member", role: domain.RoleReadOnly, required: domain.RoleMember, want: false},
		{name: "removed satisfies nothing", role: domain.RoleRemoved, required: domain.RoleReadOnly, want: false},
		{name: "unknown role satisfies nothing", role: domain.UserProjectRole("OWNER"), required: domain.RoleReadOnly, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.Satisfies(tt.required))
		})
	}
}

// The role string persisted by the membership endpoints must grant access when
// read back for authorization.
func TestUserProjectRole_StoredSpellingGrantsAccess(t *testing.T) {
	assert.True(t, domain.UserProjectRole("READ_ONLY").Satisfies(domain.RoleReadOnly))
	assert.True(t, domain.UserProjectRole("MEMBER").Satisfies(domain.RoleMember))
	assert.True(t, domain.UserProjectRole("ADMIN").Satisfies(domain.RoleAdmin))
}
