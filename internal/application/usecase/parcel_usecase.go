package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/matwana/logistics-api/internal/application/dto"
	"github.com/matwana/logistics-api/internal/application/policy"
	"github.com/matwana/logistics-api/internal/domain"
	"github.com/matwana/logistics-api/internal/domain/entity"
	"github.com/matwana/logistics-api/internal/domain/repository"
	"github.com/matwana/logistics-api/internal/domain/shipping"
	"github.com/matwana/logistics-api/internal/domain/validate"
)

// ParcelUseCase casos de uso de paquetes: creación con costo derivado y
// asignación implícita al staff creador, lectura, patch, reprecio y borrado.
type ParcelUseCase struct {
	parcels     repository.ParcelRepository
	users       repository.UserRepository
	vehicles    repository.VehicleRepository
	locations   repository.LocationRepository
	assignments repository.AssignmentRepository
	tx          TxRunner
}

// NewParcelUseCase construye el caso de uso.
func NewParcelUseCase(
	parcels repository.ParcelRepository,
	users repository.UserRepository,
	vehicles repository.VehicleRepository,
	locations repository.LocationRepository,
	assignments repository.AssignmentRepository,
	tx TxRunner,
) *ParcelUseCase {
	return &ParcelUseCase{
		parcels:     parcels,
		users:       users,
		vehicles:    vehicles,
		locations:   locations,
		assignments: assignments,
		tx:          tx,
	}
}

// Create crea un paquete. La autorización corta antes de validar campos:
// solo customer_service o admin pueden crear. El costo se deriva de la
// tarifa (origin, destination) × weight; sin tarifa la creación falla.
// Paquete y asignación al staff creador se insertan en una sola transacción.
func (uc *ParcelUseCase) Create(ctx context.Context, actorID int64, actorRole string, in dto.CreateParcelRequest) (*dto.ParcelResponse, error) {
	if !policy.Allows(policy.ParcelCreate, actorRole) {
		return nil, domain.ErrForbidden
	}

	var msgs []string
	msgs = validate.Required(in.Description, validate.MsgDescriptionRequired, msgs)
	msgs = validate.Weight(in.Weight, msgs)
	msgs = validate.Required(in.Origin, validate.MsgOriginRequired, msgs)
	msgs = validate.Required(in.Destination, validate.MsgDestinationRequired, msgs)

	sender, err := uc.users.GetByID(ctx, in.SenderID)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		msgs = append(msgs, "el remitente no existe")
	}
	recipient, err := uc.users.GetByID(ctx, in.RecipientID)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		msgs = append(msgs, "el destinatario no existe")
	}
	if in.VehicleID != nil {
		vehicle, err := uc.vehicles.GetByID(ctx, *in.VehicleID)
		if err != nil {
			return nil, err
		}
		if vehicle == nil {
			msgs = append(msgs, "el vehículo no existe")
		}
	}
	if err := validate.Finish(msgs); err != nil {
		return nil, err
	}

	origin := shipping.CanonicalPlace(in.Origin)
	destination := shipping.CanonicalPlace(in.Destination)
	rate, err := uc.locations.GetByRoute(ctx, origin, destination)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, &domain.RateNotFoundError{Origin: origin, Destination: destination}
	}
	cost := shipping.Quote(rate.CostPerKg, in.Weight)

	tracking := strings.TrimSpace(in.TrackingNumber)
	if tracking == "" {
		tracking = newTrackingNumber()
	}

	parcel := &entity.Parcel{
		Description:    in.Description,
		TrackingNumber: tracking,
		Weight:         in.Weight,
		Status:         entity.ParcelPending,
		ShippingCost:   decimal.NullDecimal{Decimal: cost, Valid: true},
		SenderID:       in.SenderID,
		RecipientID:    in.RecipientID,
		VehicleID:      in.VehicleID,
		LocationID:     &rate.ID,
		CreatedAt:      time.Now(),
	}

	// Paquete + asignación: una sola escritura durable, sin estados parciales.
	err = uc.tx.Run(ctx, func(r Repos) error {
		if err := r.Parcels.Create(ctx, parcel); err != nil {
			return err
		}
		return r.Assignments.Create(ctx, &entity.Assignment{UserID: actorID, ParcelID: parcel.ID})
	})
	if err != nil {
		return nil, err
	}

	return uc.response(ctx, parcel)
}

// newTrackingNumber genera un número de rastreo cuando el cliente no envía uno.
func newTrackingNumber() string {
	return "MTW-" + strings.ToUpper(uuid.New().String()[:8])
}

// GetByID devuelve la proyección del paquete o ErrParcelNotFound.
func (uc *ParcelUseCase) GetByID(ctx context.Context, id int64) (*dto.ParcelResponse, error) {
	parcel, err := uc.parcels.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if parcel == nil {
		return nil, domain.ErrParcelNotFound
	}
	return uc.response(ctx, parcel)
}

// List devuelve todos los paquetes.
func (uc *ParcelUseCase) List(ctx context.Context) ([]*dto.ParcelResponse, error) {
	parcels, err := uc.parcels.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ParcelResponse, 0, len(parcels))
	for _, p := range parcels {
		resp, err := uc.response(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

var parcelPatchAllowed = map[string]bool{
	"description": true,
	"status":      true,
	"vehicle_id":  true,
	"weight":      true,
}

// Patch actualiza campos mutables del paquete. sender/recipient/tracking son
// inmutables; cambiar el peso recalcula el costo con la misma fila de tarifa.
func (uc *ParcelUseCase) Patch(ctx context.Context, id int64, p Patch) (*dto.ParcelResponse, error) {
	parcel, err := uc.parcels.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if parcel == nil {
		return nil, domain.ErrParcelNotFound
	}

	var msgs []string
	msgs = checkAllowed(p, parcelPatchAllowed, msgs)

	description, status := parcel.Description, parcel.Status
	vehicleID := parcel.VehicleID
	weight := parcel.Weight
	msgs = decodeString(p, "description", &description, msgs)
	msgs = decodeString(p, "status", &status, msgs)
	msgs = decodeInt64Ptr(p, "vehicle_id", &vehicleID, msgs)
	msgs = decodeDecimal(p, "weight", &weight, msgs)

	if _, ok := p["description"]; ok {
		msgs = validate.Required(description, validate.MsgDescriptionRequired, msgs)
	}
	if _, ok := p["status"]; ok {
		if !entity.IsValidParcelStatus(status) {
			msgs = append(msgs, "el estado debe ser pending, in_transit o delivered")
		}
	}
	if _, ok := p["weight"]; ok {
		msgs = validate.Weight(weight, msgs)
	}
	if _, ok := p["vehicle_id"]; ok && vehicleID != nil {
		vehicle, err := uc.vehicles.GetByID(ctx, *vehicleID)
		if err != nil {
			return nil, err
		}
		if vehicle == nil {
			msgs = append(msgs, "el vehículo no existe")
		}
	}
	if err := validate.Finish(msgs); err != nil {
		return nil, err
	}

	parcel.Description, parcel.Status, parcel.VehicleID = description, status, vehicleID

	// Cambiar el peso exige recalcular el costo; sin fila de tarifa vigente
	// el cambio se rechaza en vez de dejar el costo desfasado.
	if _, ok := p["weight"]; ok && !weight.Equal(parcel.Weight) {
		rate, err := uc.currentRate(ctx, parcel)
		if err != nil {
			return nil, err
		}
		parcel.Weight = weight
		parcel.ShippingCost = decimal.NullDecimal{Decimal: shipping.Quote(rate.CostPerKg, weight), Valid: true}
	}

	if err := uc.parcels.Update(ctx, parcel); err != nil {
		return nil, err
	}
	return uc.response(ctx, parcel)
}

// Reprice recalcula el costo con la tarifa vigente de la ruta del paquete.
// Con insumos sin cambios el resultado es idéntico (idempotente).
func (uc *ParcelUseCase) Reprice(ctx context.Context, actorRole string, id int64) (*dto.ParcelResponse, error) {
	if !policy.Allows(policy.ParcelReprice, actorRole) {
		return nil, domain.ErrForbidden
	}
	parcel, err := uc.parcels.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if parcel == nil {
		return nil, domain.ErrParcelNotFound
	}
	rate, err := uc.currentRate(ctx, parcel)
	if err != nil {
		return nil, err
	}
	parcel.ShippingCost = decimal.NullDecimal{Decimal: shipping.Quote(rate.CostPerKg, parcel.Weight), Valid: true}
	if err := uc.parcels.Update(ctx, parcel); err != nil {
		return nil, err
	}
	return uc.response(ctx, parcel)
}

// currentRate resuelve la fila de tarifa del paquete. Si la referencia ya no
// resuelve (datos históricos) el cálculo de costo falla con RateNotFoundError
// en vez de conservar un costo desfasado; con la ruta conocida el error la nombra.
func (uc *ParcelUseCase) currentRate(ctx context.Context, parcel *entity.Parcel) (*entity.Location, error) {
	if parcel.LocationID == nil {
		return nil, &domain.RateNotFoundError{}
	}
	rate, err := uc.locations.GetByID(ctx, *parcel.LocationID)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, &domain.RateNotFoundError{}
	}
	return rate, nil
}

// Delete borra el paquete y, en la misma transacción, sus asignaciones.
func (uc *ParcelUseCase) Delete(ctx context.Context, id int64) error {
	parcel, err := uc.parcels.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if parcel == nil {
		return domain.ErrParcelNotFound
	}
	return uc.tx.Run(ctx, func(r Repos) error {
		if err := r.Assignments.DeleteByParcelID(ctx, id); err != nil {
			return err
		}
		return r.Parcels.Delete(ctx, id)
	})
}

// Entity devuelve el paquete crudo (lo usa la etiqueta PDF).
func (uc *ParcelUseCase) Entity(ctx context.Context, id int64) (*entity.Parcel, *entity.User, *entity.User, *entity.Location, error) {
	parcel, err := uc.parcels.GetByID(ctx, id)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if parcel == nil {
		return nil, nil, nil, nil, domain.ErrParcelNotFound
	}
	sender, err := uc.users.GetByID(ctx, parcel.SenderID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	recipient, err := uc.users.GetByID(ctx, parcel.RecipientID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	var route *entity.Location
	if parcel.LocationID != nil {
		route, err = uc.locations.GetByID(ctx, *parcel.LocationID)
		if err != nil {
			return nil, nil, nil, nil, err
		}
	}
	return parcel, sender, recipient, route, nil
}

// response proyecta el paquete con nombres de sender/recipient y la ruta de
// su fila de tarifa (sustituye la serialización del grafo de relaciones).
func (uc *ParcelUseCase) response(ctx context.Context, p *entity.Parcel) (*dto.ParcelResponse, error) {
	return buildParcelResponse(ctx, p, uc.users, uc.locations)
}

func buildParcelResponse(
	ctx context.Context,
	p *entity.Parcel,
	users repository.UserRepository,
	locations repository.LocationRepository,
) (*dto.ParcelResponse, error) {
	resp := &dto.ParcelResponse{
		ID:             p.ID,
		Description:    p.Description,
		TrackingNumber: p.TrackingNumber,
		Weight:         p.Weight,
		Status:         p.Status,
		ShippingCost:   p.ShippingCost,
		SenderID:       p.SenderID,
		RecipientID:    p.RecipientID,
		VehicleID:      p.VehicleID,
		LocationID:     p.LocationID,
		CreatedAt:      p.CreatedAt,
	}
	if sender, err := users.GetByID(ctx, p.SenderID); err != nil {
		return nil, err
	} else if sender != nil {
		resp.SenderName = sender.Name
	}
	if recipient, err := users.GetByID(ctx, p.RecipientID); err != nil {
		return nil, err
	} else if recipient != nil {
		resp.RecipientName = recipient.Name
	}
	if p.LocationID != nil {
		route, err := locations.GetByID(ctx, *p.LocationID)
		if err != nil {
			return nil, err
		}
		if route != nil {
			resp.Origin = route.Origin
			resp.Destination = route.Destination
		}
	}
	return resp, nil
}
