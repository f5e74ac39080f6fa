package usecase

import (
	"context"

	"github.com/matwana/logistics-api/internal/application/dto"
	"github.com/matwana/logistics-api/internal/domain"
	"github.com/matwana/logistics-api/internal/domain/entity"
	"github.com/matwana/logistics-api/internal/domain/repository"
	"github.com/matwana/logistics-api/internal/domain/shipping"
	"github.com/matwana/logistics-api/internal/domain/validate"
)

// LocationUseCase CRUD de la tabla de tarifas (origen, destino, costo por kg).
type LocationUseCase struct {
	locations repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(locations repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{locations: locations}
}

// Create registra una fila de tarifa. Los nombres de lugar se canonicalizan
// para que la búsqueda por ruta sea estable.
func (uc *LocationUseCase) Create(ctx context.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	var msgs []string
	msgs = validate.Required(in.Origin, validate.MsgOriginRequired, msgs)
	msgs = validate.Required(in.Destination, validate.MsgDestinationRequired, msgs)
	msgs = validate.CostPerKg(in.CostPerKg, msgs)
	if err := validate.Finish(msgs); err != nil {
		return nil, err
	}

	location := &entity.Location{
		Origin:      shipping.CanonicalPlace(in.Origin),
		Destination: shipping.CanonicalPlace(in.Destination),
		CostPerKg:   in.CostPerKg,
	}
	if err := uc.locations.Create(ctx, location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID devuelve la proyección de la tarifa o ErrNotFound.
func (uc *LocationUseCase) GetByID(ctx context.Context, id int64) (*dto.LocationResponse, error) {
	location, err := uc.locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	return toLocationResponse(location), nil
}

// List devuelve todas las tarifas.
func (uc *LocationUseCase) List(ctx context.Context) ([]*dto.LocationResponse, error) {
	locations, err := uc.locations.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LocationResponse, 0, len(locations))
	for _, l := range locations {
		out = append(out, toLocationResponse(l))
	}
	return out, nil
}

var locationPatchAllowed = map[string]bool{
	"origin":      true,
	"destination": true,
	"cost_per_kg": true,
}

// Patch actualización allow-listed de la tarifa.
func (uc *LocationUseCase) Patch(ctx context.Context, id int64, p Patch) (*dto.LocationResponse, error) {
	location, err := uc.locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}

	var msgs []string
	msgs = checkAllowed(p, locationPatchAllowed, msgs)

	origin, destination := location.Origin, location.Destination
	costPerKg := location.CostPerKg
	msgs = decodeString(p, "origin", &origin, msgs)
	msgs = decodeString(p, "destination", &destination, msgs)
	msgs = decodeDecimal(p, "cost_per_kg", &costPerKg, msgs)

	if _, ok := p["origin"]; ok {
		msgs = validate.Required(origin, validate.MsgOriginRequired, msgs)
	}
	if _, ok := p["destination"]; ok {
		msgs = validate.Required(destination, validate.MsgDestinationRequired, msgs)
	}
	if _, ok := p["cost_per_kg"]; ok {
		msgs = validate.CostPerKg(costPerKg, msgs)
	}
	if err := validate.Finish(msgs); err != nil {
		return nil, err
	}

	location.Origin = shipping.CanonicalPlace(origin)
	location.Destination = shipping.CanonicalPlace(destination)
	location.CostPerKg = costPerKg

	if err := uc.locations.Update(ctx, location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// Delete borra una tarifa por id (commit inmediato).
func (uc *LocationUseCase) Delete(ctx context.Context, id int64) error {
	location, err := uc.locations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if location == nil {
		return domain.ErrNotFound
	}
	return uc.locations.Delete(ctx, id)
}

// DeleteAll vacía la tabla de tarifas. ErrNotFound si ya estaba vacía.
func (uc *LocationUseCase) DeleteAll(ctx context.Context) error {
	locations, err := uc.locations.List(ctx)
	if err != nil {
		return err
	}
	if len(locations) == 0 {
		return domain.ErrNotFound
	}
	return uc.locations.DeleteAll(ctx)
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:          l.ID,
		Origin:      l.Origin,
		Destination: l.Destination,
		CostPerKg:   l.CostPerKg,
	}
}
