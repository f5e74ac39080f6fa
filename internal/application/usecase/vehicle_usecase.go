package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/matwana/logistics-api/internal/application/dto"
	"github.com/matwana/logistics-api/internal/domain"
	"github.com/matwana/logistics-api/internal/domain/entity"
	"github.com/matwana/logistics-api/internal/domain/repository"
	"github.com/matwana/logistics-api/internal/domain/validate"
)

// VehicleUseCase CRUD de vehículos de la flota.
type VehicleUseCase struct {
	vehicles  repository.VehicleRepository
	locations repository.LocationRepository
}

// NewVehicleUseCase construye el caso de uso.
func NewVehicleUseCase(vehicles repository.VehicleRepository, locations repository.LocationRepository) *VehicleUseCase {
	return &VehicleUseCase{vehicles: vehicles, locations: locations}
}

// Create registra un vehículo. Placa y capacidad son obligatorias; si se
// referencia una ubicación, debe existir.
func (uc *VehicleUseCase) Create(ctx context.Context, in dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	var msgs []string
	msgs = validate.Required(in.NumberPlate, validate.MsgNumberPlateRequired, msgs)
	if in.Capacity.LessThanOrEqual(decimal.Zero) {
		msgs = append(msgs, validate.MsgCapacityRequired)
	}
	if in.LocationID != nil {
		location, err := uc.locations.GetByID(ctx, *in.LocationID)
		if err != nil {
			return nil, err
		}
		if location == nil {
			msgs = append(msgs, "la ubicación no existe")
		}
	}
	if err := validate.Finish(msgs); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = entity.VehicleStatusEmpty
	}
	vehicle := &entity.Vehicle{
		NumberPlate:         in.NumberPlate,
		Capacity:            in.Capacity,
		DriverName:          in.DriverName,
		DriverPhone:         in.DriverPhone,
		DepartureTime:       in.DepartureTime,
		ExpectedArrivalTime: in.ExpectedArrivalTime,
		Status:              status,
		LocationID:          in.LocationID,
	}
	if err := uc.vehicles.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return toVehicleResponse(vehicle), nil
}

// GetByID devuelve la proyección del vehículo o ErrNotFound.
func (uc *VehicleUseCase) GetByID(ctx context.Context, id int64) (*dto.VehicleResponse, error) {
	vehicle, err := uc.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrNotFound
	}
	return toVehicleResponse(vehicle), nil
}

// List devuelve todos los vehículos.
func (uc *VehicleUseCase) List(ctx context.Context) ([]*dto.VehicleResponse, error) {
	vehicles, err := uc.vehicles.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, toVehicleResponse(v))
	}
	return out, nil
}

var vehiclePatchAllowed = map[string]bool{
	"number_plate":          true,
	"capacity":              true,
	"driver_name":           true,
	"driver_phone":          true,
	"departure_time":        true,
	"expected_arrival_time": true,
	"status":                true,
	"location_id":           true,
}

// Patch actualización allow-listed del vehículo.
func (uc *VehicleUseCase) Patch(ctx context.Context, id int64, p Patch) (*dto.VehicleResponse, error) {
	vehicle, err := uc.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrNotFound
	}

	var msgs []string
	msgs = checkAllowed(p, vehiclePatchAllowed, msgs)

	plate, driverName, driverPhone := vehicle.NumberPlate, vehicle.DriverName, vehicle.DriverPhone
	departure, arrival, status := vehicle.DepartureTime, vehicle.ExpectedArrivalTime, vehicle.Status
	capacity := vehicle.Capacity
	locationID := vehicle.LocationID
	msgs = decodeString(p, "number_plate", &plate, msgs)
	msgs = decodeDecimal(p, "capacity", &capacity, msgs)
	msgs = decodeString(p, "driver_name", &driverName, msgs)
	msgs = decodeString(p, "driver_phone", &driverPhone, msgs)
	msgs = decodeString(p, "departure_time", &departure, msgs)
	msgs = decodeString(p, "expected_arrival_time", &arrival, msgs)
	msgs = decodeString(p, "status", &status, msgs)
	msgs = decodeInt64Ptr(p, "location_id", &locationID, msgs)

	if _, ok := p["number_plate"]; ok {
		msgs = validate.Required(plate, validate.MsgNumberPlateRequired, msgs)
	}
	if _, ok := p["capacity"]; ok && capacity.LessThanOrEqual(decimal.Zero) {
		msgs = append(msgs, validate.MsgCapacityRequired)
	}
	if _, ok := p["location_id"]; ok && locationID != nil {
		location, err := uc.locations.GetByID(ctx, *locationID)
		if err != nil {
			return nil, err
		}
		if location == nil {
			msgs = append(msgs, "la ubicación no existe")
		}
	}
	if err := validate.Finish(msgs); err != nil {
		return nil, err
	}

	vehicle.NumberPlate, vehicle.Capacity = plate, capacity
	vehicle.DriverName, vehicle.DriverPhone = driverName, driverPhone
	vehicle.DepartureTime, vehicle.ExpectedArrivalTime = departure, arrival
	vehicle.Status, vehicle.LocationID = status, locationID

	if err := uc.vehicles.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return toVehicleResponse(vehicle), nil
}

// Delete borra el vehículo (commit inmediato).
func (uc *VehicleUseCase) Delete(ctx context.Context, id int64) error {
	vehicle, err := uc.vehicles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if vehicle == nil {
		return domain.ErrNotFound
	}
	return uc.vehicles.Delete(ctx, id)
}

func toVehicleResponse(v *entity.Vehicle) *dto.VehicleResponse {
	return &dto.VehicleResponse{
		ID:                  v.ID,
		NumberPlate:         v.NumberPlate,
		Capacity:            v.Capacity,
		DriverName:          v.DriverName,
		DriverPhone:         v.DriverPhone,
		DepartureTime:       v.DepartureTime,
		ExpectedArrivalTime: v.ExpectedArrivalTime,
		Status:              v.Status,
		LocationID:          v.LocationID,
	}
}
