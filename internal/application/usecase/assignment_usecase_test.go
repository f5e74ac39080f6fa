package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matwana/logistics-api/internal/domain"
)

func TestAssignments_ListaPaquetesDelStaff(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.parcels.Create(ctx, f.staff.ID, f.staff.Role, validParcelRequest(f))
	require.NoError(t, err)
	second, err := f.parcels.Create(ctx, f.staff.ID, f.staff.Role, validParcelRequest(f))
	require.NoError(t, err)

	out, err := f.assignments.ParcelsForUser(ctx, f.staff.ID)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, first.ID, out[0].ID)
	assert.Equal(t, second.ID, out[1].ID)

	// El admin no tiene asignaciones: lista vacía, no error.
	out, err = f.assignments.ParcelsForUser(ctx, f.admin.ID)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestAssignments_RolDelUsuarioConsultadoImporta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Un customer no recibe asignaciones: la consulta es forbidden.
	_, err := f.assignments.ParcelsForUser(ctx, f.sender.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Usuario inexistente.
	_, err = f.assignments.ParcelsForUser(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAssignments_DeleteSoloParaAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// customer_service no pasa la política de borrado.
	err := f.assignments.DeleteForUser(ctx, f.staff.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// El admin sin asignaciones: not found.
	err = f.assignments.DeleteForUser(ctx, f.admin.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// El admin crea un paquete y su asignación se puede borrar.
	_, err = f.parcels.Create(ctx, f.admin.ID, f.admin.Role, validParcelRequest(f))
	require.NoError(t, err)
	require.NoError(t, f.assignments.DeleteForUser(ctx, f.admin.ID))

	// Segunda vez: ya no queda ninguna.
	err = f.assignments.DeleteForUser(ctx, f.admin.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssignments_OmiteHuerfanas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.parcels.Create(ctx, f.staff.ID, f.staff.Role, validParcelRequest(f))
	require.NoError(t, err)

	// Borrado directo del paquete sin cascada (simula datos históricos).
	require.NoError(t, f.repos.Parcels.Delete(ctx, out.ID))

	parcels, err := f.assignments.ParcelsForUser(ctx, f.staff.ID)
	require.NoError(t, err)
	assert.Empty(t, parcels, "las asignaciones cuyo paquete ya no existe se omiten")
}
