package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_HasRole(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		role  string
		want  bool
	}{
		{name: "no roles", roles: nil, role: RoleCustomer, want: false},
		{name: "matching role", roles: []string{RoleCustomer}, role: RoleCustomer, want: true},
		{name: "other role", roles: []string{RoleCustomer}, role: RoleAdmin, want: false},
		{name: "several roles", roles: []string{RoleCustomer, RoleAdmin}, role: RoleAdmin, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Roles: tt.roles}
			assert.Equal(t, tt.want, u.HasRole(tt.role))
		})
	}
}

func TestRole_Grants(t *testing.T) {
	role := &Role{Name: RoleCustomer, Permissions: []string{PermQuotesRead, PermQuotesWrite}}

	assert.True(t, role.Grants(PermQuotesRead))
	assert.True(t, role.Grants(PermQuotesWrite))
	assert.False(t, role.Grants(PermCatalogWrite))
	assert.False(t, (&Role{}).Grants(PermQuotesRead))
}
