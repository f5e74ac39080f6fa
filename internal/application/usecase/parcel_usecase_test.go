package usecase_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matwana/logistics-api/internal/application/dto"
	"github.com/matwana/logistics-api/internal/application/usecase"
	"github.com/matwana/logistics-api/internal/domain"
	"github.com/matwana/logistics-api/internal/domain/validate"
)

func validParcelRequest(f *fixture) dto.CreateParcelRequest {
	return dto.CreateParcelRequest{
		Description: "Caja de repuestos",
		Weight:      decimal.RequireFromString("4"),
		Origin:      "Nairobi",
		Destination: "Mombasa",
		SenderID:    f.sender.ID,
		RecipientID: f.recipient.ID,
	}
}

func TestParcelCreate_StaffDerivaCostoYAsigna(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.parcels.Create(ctx, f.staff.ID, f.staff.Role, validParcelRequest(f))
	require.NoError(t, err)

	// 50 por kg × 4 kg = 200, exacto
	require.True(t, out.ShippingCost.Valid)
	assert.True(t, out.ShippingCost.Decimal.Equal(decimal.RequireFromString("200")),
		"costo = tarifa × peso; fue %s", out.ShippingCost.Decimal)
	assert.Equal(t, "pending", out.Status, "estado por defecto")
	assert.Equal(t, "Nairobi", out.Origin)
	assert.Equal(t, "Mombasa", out.Destination)
	assert.Equal(t, f.sender.Name, out.SenderName)

	// Exactamente una asignación, ligada al staff creador.
	assignments, err := f.repos.Assignments.ListByUserID(ctx, f.staff.ID)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, out.ID, assignments[0].ParcelID)
}

func TestParcelCreate_TrackingGeneradoSiFalta(t *testing.T) {
	f := newFixture(t)

	out, err := f.parcels.Create(context.Background(), f.staff.ID, f.staff.Role, validParcelRequest(f))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.TrackingNumber, "MTW-"),
		"tracking generado debe llevar el prefijo MTW-, fue %q", out.TrackingNumber)

	in := validParcelRequest(f)
	in.TrackingNumber = "CLIENTE-001"
	out2, err := f.parcels.Create(context.Background(), f.staff.ID, f.staff.Role, in)
	require.NoError(t, err)
	assert.Equal(t, "CLIENTE-001", out2.TrackingNumber, "el tracking del cliente se respeta")
}

func TestParcelCreate_ClienteProhibidoAntesDeValidar(t *testing.T) {
	f := newFixture(t)

	// Cuerpo deliberadamente inválido: la autorización corta primero.
	in := dto.CreateParcelRequest{}
	_, err := f.parcels.Create(context.Background(), f.sender.ID, f.sender.Role, in)
	require.ErrorIs(t, err, domain.ErrForbidden,
		"un customer recibe forbidden aunque el cuerpo sea inválido")

	_, ok := domain.AsValidationError(err)
	assert.False(t, ok, "no debe reportarse validación para un rol no autorizado")
}

func TestParcelCreate_AcumulaTodosLosMensajes(t *testing.T) {
	f := newFixture(t)

	in := dto.CreateParcelRequest{
		Weight:      decimal.RequireFromString("0"),
		Origin:      "Nairobi",
		Destination: "Mombasa",
		SenderID:    9999,
		RecipientID: f.recipient.ID,
	}
	_, err := f.parcels.Create(context.Background(), f.staff.ID, f.staff.Role, in)
	require.Error(t, err)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok, "debe ser un error de validación")
	assert.Contains(t, ve.Messages, validate.MsgDescriptionRequired)
	assert.Contains(t, ve.Messages, validate.MsgWeightInvalid)
	assert.Contains(t, ve.Messages, "el remitente no existe")
	assert.Len(t, ve.Messages, 3, "todas las reglas incumplidas, en una sola respuesta")
}

func TestParcelCreate_RutaSinTarifaFalla(t *testing.T) {
	f := newFixture(t)

	in := validParcelRequest(f)
	in.Origin = "nairobi"
	in.Destination = "kisumu" // sin tarifa sembrada
	_, err := f.parcels.Create(context.Background(), f.staff.ID, f.staff.Role, in)
	require.Error(t, err)

	re, ok := domain.AsRateNotFoundError(err)
	require.True(t, ok, "la falta de tarifa tiene error propio")
	assert.Equal(t, "Nairobi", re.Origin, "el error nombra la pareja canonicalizada")
	assert.Equal(t, "Kisumu", re.Destination)

	// Nada quedó persistido.
	parcels, err := f.repos.Parcels.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, parcels)
}

func TestParcelCreate_RutaInsensibleAMayusculas(t *testing.T) {
	f := newFixture(t)

	in := validParcelRequest(f)
	in.Origin = "NAIROBI"
	in.Destination = "mombasa"
	out, err := f.parcels.Create(context.Background(), f.staff.ID, f.staff.Role, in)
	require.NoError(t, err, "la tarifa se resuelve con nombres canonicalizados")
	assert.True(t, out.ShippingCost.Decimal.Equal(decimal.RequireFromString("200")))
}

func TestParcelPatch_CampoInmutableRechazado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.parcels.Create(ctx, f.staff.ID, f.staff.Role, validParcelRequest(f))
	require.NoError(t, err)

	patch := usecase.Patch{"sender_id": json.RawMessage(`999`)}
	_, err = f.parcels.Patch(ctx, out.ID, patch)
	require.Error(t, err)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Messages, "campo no permitido en actualización: sender_id")

	// El paquete no cambió.
	after, err := f.parcels.GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, f.sender.ID, after.SenderID)
}

func TestParcelPatch_EstadoInvalidoRechazado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.parcels.Create(ctx, f.staff.ID, f.staff.Role, validParcelRequest(f))
	require.NoError(t, err)

	patch := usecase.Patch{"status": json.RawMessage(`"lost"`)}
	_, err = f.parcels.Patch(ctx, out.ID, patch)
	require.Error(t, err)

	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Messages, "el estado debe ser pending, in_transit o delivered")

	patch = usecase.Patch{"status": json.RawMessage(`"in_transit"`)}
	updated, err := f.parcels.Patch(ctx, out.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, "in_transit", updated.Status)
}

func TestParcelPatch_CambiarPesoRecalculaCosto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.parcels.Create(ctx, f.staff.ID, f.staff.Role, validParcelRequest(f))
	require.NoError(t, err)

	patch := usecase.Patch{"weight": json.RawMessage(`"6"`)}
	updated, err := f.parcels.Patch(ctx, out.ID, patch)
	require.NoError(t, err)

	assert.True(t, updated.Weight.Equal(decimal.RequireFromString("6")))
	assert.True(t, updated.ShippingCost.Decimal.Equal(decimal.RequireFromString("300")),
		"50 × 6 = 300; fue %s", updated.ShippingCost.Decimal)
}

func TestParcelReprice_RecalculaConTarifaVigente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.parcels.Create(ctx, f.staff.ID, f.staff.Role, validParcelRequest(f))
	require.NoError(t, err)

	// Reprecio sin cambios: idempotente.
	same, err := f.parcels.Reprice(ctx, f.staff.Role, out.ID)
	require.NoError(t, err)
	assert.True(t, same.ShippingCost.Decimal.Equal(out.ShippingCost.Decimal))

	// Sube la tarifa y el reprecio la refleja.
	patch := usecase.Patch{"cost_per_kg": json.RawMessage(`"75"`)}
	_, err = f.locations.Patch(ctx, *out.LocationID, patch)
	require.NoError(t, err)

	repriced, err := f.parcels.Reprice(ctx, f.staff.Role, out.ID)
	require.NoError(t, err)
	assert.True(t, repriced.ShippingCost.Decimal.Equal(decimal.RequireFromString("300")),
		"75 × 4 = 300; fue %s", repriced.ShippingCost.Decimal)

	// Un customer no puede repreciar.
	_, err = f.parcels.Reprice(ctx, f.sender.Role, out.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestParcelDelete_CascadaDeAsignaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.parcels.Create(ctx, f.staff.ID, f.staff.Role, validParcelRequest(f))
	require.NoError(t, err)

	require.NoError(t, f.parcels.Delete(ctx, out.ID))

	_, err = f.parcels.GetByID(ctx, out.ID)
	assert.ErrorIs(t, err, domain.ErrParcelNotFound)

	assignments, err := f.repos.Assignments.ListByUserID(ctx, f.staff.ID)
	require.NoError(t, err)
	assert.Empty(t, assignments, "borrar el paquete borra sus asignaciones")
}

func TestParcelGetByID_NoExiste(t *testing.T) {
	f := newFixture(t)
	_, err := f.parcels.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrParcelNotFound)
}

func TestParcelPatch_PesoSinTarifaVigenteFalla(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.parcels.Create(ctx, f.staff.ID, f.staff.Role, validParcelRequest(f))
	require.NoError(t, err)

	// Datos históricos: la referencia de tarifa del paquete quedó colgando.
	stored, err := f.repos.Parcels.GetByID(ctx, out.ID)
	require.NoError(t, err)
	dangling := int64(9999)
	stored.LocationID = &dangling
	require.NoError(t, f.repos.Parcels.Update(ctx, stored))

	// Cambiar el peso sin tarifa no puede recalcular: se rechaza.
	_, err = f.parcels.Patch(ctx, out.ID, usecase.Patch{"weight": json.RawMessage(`"8"`)})
	require.Error(t, err)
	_, ok := domain.AsRateNotFoundError(err)
	assert.True(t, ok, "esperaba RateNotFoundError, fue %v", err)

	// El paquete queda intacto: peso y costo originales, nunca inconsistentes.
	after, err := f.parcels.GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.True(t, after.Weight.Equal(decimal.RequireFromString("4")))
	require.True(t, after.ShippingCost.Valid)
	assert.True(t, after.ShippingCost.Decimal.Equal(decimal.RequireFromString("200")))
}

func TestParcelReprice_SinTarifaVigenteFalla(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.parcels.Create(ctx, f.staff.ID, f.staff.Role, validParcelRequest(f))
	require.NoError(t, err)

	stored, err := f.repos.Parcels.GetByID(ctx, out.ID)
	require.NoError(t, err)
	stored.LocationID = nil
	require.NoError(t, f.repos.Parcels.Update(ctx, stored))

	_, err = f.parcels.Reprice(ctx, f.admin.Role, out.ID)
	require.Error(t, err)
	_, ok := domain.AsRateNotFoundError(err)
	assert.True(t, ok, "esperaba RateNotFoundError, fue %v", err)
}
