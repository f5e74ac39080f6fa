package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/matwana/logistics-api/internal/domain/entity"
	"github.com/matwana/logistics-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepository)(nil)

// LocationRepository implementa repository.LocationRepository sobre PostgreSQL.
type LocationRepository struct {
	db Queryer
}

// NewLocationRepository construye el repositorio. Acepta el pool o una tx.
func NewLocationRepository(db Queryer) *LocationRepository {
	return &LocationRepository{db: db}
}

// Create inserta la fila de tarifa y asigna el ID generado.
func (r *LocationRepository) Create(ctx context.Context, location *entity.Location) error {
	query := `
		INSERT INTO locations (origin, destination, cost_per_kg)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		location.Origin, location.Destination, location.CostPerKg,
	).Scan(&location.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return conflict("ruta")
		}
		return fmt.Errorf("insertar tarifa: %w", err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *LocationRepository) GetByID(ctx context.Context, id int64) (*entity.Location, error) {
	query := `SELECT id, origin, destination, cost_per_kg FROM locations WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// GetByRoute busca por pareja exacta (origin, destination) ya canonicalizada.
// Devuelve (nil, nil) si no hay tarifa para la ruta.
func (r *LocationRepository) GetByRoute(ctx context.Context, origin, destination string) (*entity.Location, error) {
	query := `SELECT id, origin, destination, cost_per_kg FROM locations
		WHERE origin = $1 AND destination = $2`
	return r.scanOne(r.db.QueryRow(ctx, query, origin, destination))
}

// List devuelve todas las tarifas ordenadas por ID.
func (r *LocationRepository) List(ctx context.Context) ([]*entity.Location, error) {
	query := `SELECT id, origin, destination, cost_per_kg FROM locations ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listar tarifas: %w", err)
	}
	defer rows.Close()

	var locations []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Origin, &l.Destination, &l.CostPerKg); err != nil {
			return nil, fmt.Errorf("escanear tarifa: %w", err)
		}
		locations = append(locations, &l)
	}
	return locations, rows.Err()
}

// Update persiste los campos de la tarifa.
func (r *LocationRepository) Update(ctx context.Context, location *entity.Location) error {
	query := `
		UPDATE locations
		SET origin = $1, destination = $2, cost_per_kg = $3
		WHERE id = $4`

	tag, err := r.db.Exec(ctx, query,
		location.Origin, location.Destination, location.CostPerKg, location.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return conflict("ruta")
		}
		return fmt.Errorf("actualizar tarifa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("actualizar tarifa %d: fila no encontrada", location.ID)
	}
	return nil
}

// Delete elimina la tarifa por ID. Una tarifa referenciada por paquetes o
// vehículos no puede borrarse: la violación de FK se reporta como conflicto.
func (r *LocationRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return inUse("tarifa")
		}
		return fmt.Errorf("borrar tarifa: %w", err)
	}
	return nil
}

// DeleteAll vacía la tabla de tarifas completa. Misma regla que Delete: si
// alguna fila sigue referenciada la operación entera falla con conflicto.
func (r *LocationRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM locations`); err != nil {
		if isForeignKeyViolation(err) {
			return inUse("tarifa")
		}
		return fmt.Errorf("vaciar tarifas: %w", err)
	}
	return nil
}

func (r *LocationRepository) scanOne(row pgx.Row) (*entity.Location, error) {
	var l entity.Location
	err := row.Scan(&l.ID, &l.Origin, &l.Destination, &l.CostPerKg)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("escanear tarifa: %w", err)
	}
	return &l, nil
}
