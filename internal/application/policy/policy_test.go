package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matwana/logistics-api/internal/application/policy"
	"github.com/matwana/logistics-api/internal/domain/entity"
)

func TestAllows_TablaDeRoles(t *testing.T) {
	cases := []struct {
		action  policy.Action
		role    string
		allowed bool
	}{
		{policy.ParcelCreate, entity.RoleCustomerService, true},
		{policy.ParcelCreate, entity.RoleAdmin, true},
		{policy.ParcelCreate, entity.RoleCustomer, false},
		{policy.ParcelReprice, entity.RoleCustomerService, true},
		{policy.ParcelReprice, entity.RoleCustomer, false},
		{policy.AssignmentRead, entity.RoleAdmin, true},
		{policy.AssignmentRead, entity.RoleCustomer, false},
		{policy.AssignmentDelete, entity.RoleAdmin, true},
		{policy.AssignmentDelete, entity.RoleCustomerService, false},
		{policy.AssignmentDelete, entity.RoleCustomer, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, policy.Allows(tc.action, tc.role),
			"Allows(%s, %s)", tc.action, tc.role)
	}
}

func TestAllows_AccionDesconocidaSeNiega(t *testing.T) {
	assert.False(t, policy.Allows(policy.Action("parcel.export"), entity.RoleAdmin))
	assert.False(t, policy.Allows(policy.ParcelCreate, ""))
	assert.False(t, policy.Allows(policy.ParcelCreate, "superuser"))
}

func TestRoles_DevuelveCopia(t *testing.T) {
	roles := policy.Roles(policy.ParcelCreate)
	assert.ElementsMatch(t, []string{entity.RoleCustomerService, entity.RoleAdmin}, roles)

	roles[0] = "mutado"
	assert.ElementsMatch(t, []string{entity.RoleCustomerService, entity.RoleAdmin},
		policy.Roles(policy.ParcelCreate), "mutar la copia no debe afectar la tabla")
}
