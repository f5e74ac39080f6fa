package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/matwana/logistics-api/internal/domain/entity"
	"github.com/matwana/logistics-api/internal/domain/repository"
)

var _ repository.VehicleRepository = (*VehicleRepository)(nil)

// VehicleRepository implementa repository.VehicleRepository sobre PostgreSQL.
type VehicleRepository struct {
	db Queryer
}

// NewVehicleRepository construye el repositorio. Acepta el pool o una tx.
func NewVehicleRepository(db Queryer) *VehicleRepository {
	return &VehicleRepository{db: db}
}

const vehicleColumns = `id, number_plate, capacity, driver_name, driver_phone,
	departure_time, expected_arrival_time, status, location_id`

// Create inserta el vehículo y asigna el ID generado.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (number_plate, capacity, driver_name, driver_phone,
			departure_time, expected_arrival_time, status, location_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		vehicle.NumberPlate, vehicle.Capacity, vehicle.DriverName, vehicle.DriverPhone,
		vehicle.DepartureTime, vehicle.ExpectedArrivalTime, vehicle.Status, vehicle.LocationID,
	).Scan(&vehicle.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return conflict("placa")
		}
		return fmt.Errorf("insertar vehículo: %w", err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// List devuelve todos los vehículos ordenados por ID.
func (r *VehicleRepository) List(ctx context.Context) ([]*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listar vehículos: %w", err)
	}
	defer rows.Close()

	var vehicles []*entity.Vehicle
	for rows.Next() {
		var v entity.Vehicle
		if err := rows.Scan(&v.ID, &v.NumberPlate, &v.Capacity, &v.DriverName,
			&v.DriverPhone, &v.DepartureTime, &v.ExpectedArrivalTime,
			&v.Status, &v.LocationID); err != nil {
			return nil, fmt.Errorf("escanear vehículo: %w", err)
		}
		vehicles = append(vehicles, &v)
	}
	return vehicles, rows.Err()
}

// Update persiste los campos del vehículo.
func (r *VehicleRepository) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	query := `
		UPDATE vehicles
		SET number_plate = $1, capacity = $2, driver_name = $3, driver_phone = $4,
		    departure_time = $5, expected_arrival_time = $6, status = $7, location_id = $8
		WHERE id = $9`

	tag, err := r.db.Exec(ctx, query,
		vehicle.NumberPlate, vehicle.Capacity, vehicle.DriverName, vehicle.DriverPhone,
		vehicle.DepartureTime, vehicle.ExpectedArrivalTime, vehicle.Status,
		vehicle.LocationID, vehicle.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return conflict("placa")
		}
		return fmt.Errorf("actualizar vehículo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("actualizar vehículo %d: fila no encontrada", vehicle.ID)
	}
	return nil
}

// Delete elimina el vehículo por ID.
func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("borrar vehículo: %w", err)
	}
	return nil
}

func (r *VehicleRepository) scanOne(row pgx.Row) (*entity.Vehicle, error) {
	var v entity.Vehicle
	err := row.Scan(&v.ID, &v.NumberPlate, &v.Capacity, &v.DriverName,
		&v.DriverPhone, &v.DepartureTime, &v.ExpectedArrivalTime,
		&v.Status, &v.LocationID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("escanear vehículo: %w", err)
	}
	return &v, nil
}
