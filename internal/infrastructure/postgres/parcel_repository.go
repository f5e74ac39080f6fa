package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/matwana/logistics-api/internal/domain/entity"
	"github.com/matwana/logistics-api/internal/domain/repository"
)

var _ repository.ParcelRepository = (*ParcelRepository)(nil)

// ParcelRepository implementa repository.ParcelRepository sobre PostgreSQL.
type ParcelRepository struct {
	db Queryer
}

// NewParcelRepository construye el repositorio. Acepta el pool o una tx.
func NewParcelRepository(db Queryer) *ParcelRepository {
	return &ParcelRepository{db: db}
}

const parcelColumns = `id, description, tracking_number, weight, status,
	shipping_cost, sender_id, recipient_id, vehicle_id, location_id, created_at`

// Create inserta el paquete y asigna el ID generado.
func (r *ParcelRepository) Create(ctx context.Context, parcel *entity.Parcel) error {
	query := `
		INSERT INTO parcels (description, tracking_number, weight, status,
			shipping_cost, sender_id, recipient_id, vehicle_id, location_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		parcel.Description, parcel.TrackingNumber, parcel.Weight, parcel.Status,
		parcel.ShippingCost, parcel.SenderID, parcel.RecipientID,
		parcel.VehicleID, parcel.LocationID,
	).Scan(&parcel.ID, &parcel.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return conflict("número de rastreo")
		}
		return fmt.Errorf("insertar paquete: %w", err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ParcelRepository) GetByID(ctx context.Context, id int64) (*entity.Parcel, error) {
	query := `SELECT ` + parcelColumns + ` FROM parcels WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// List devuelve todos los paquetes ordenados por ID.
func (r *ParcelRepository) List(ctx context.Context) ([]*entity.Parcel, error) {
	query := `SELECT ` + parcelColumns + ` FROM parcels ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listar paquetes: %w", err)
	}
	defer rows.Close()

	var parcels []*entity.Parcel
	for rows.Next() {
		var p entity.Parcel
		if err := rows.Scan(&p.ID, &p.Description, &p.TrackingNumber, &p.Weight,
			&p.Status, &p.ShippingCost, &p.SenderID, &p.RecipientID,
			&p.VehicleID, &p.LocationID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("escanear paquete: %w", err)
		}
		parcels = append(parcels, &p)
	}
	return parcels, rows.Err()
}

// Update persiste los campos mutables del paquete. Sender y recipient no
// se tocan: son inmutables desde la creación.
func (r *ParcelRepository) Update(ctx context.Context, parcel *entity.Parcel) error {
	query := `
		UPDATE parcels
		SET description = $1, weight = $2, status = $3, shipping_cost = $4,
		    vehicle_id = $5, location_id = $6
		WHERE id = $7`

	tag, err := r.db.Exec(ctx, query,
		parcel.Description, parcel.Weight, parcel.Status, parcel.ShippingCost,
		parcel.VehicleID, parcel.LocationID, parcel.ID)
	if err != nil {
		return fmt.Errorf("actualizar paquete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("actualizar paquete %d: fila no encontrada", parcel.ID)
	}
	return nil
}

// Delete elimina el paquete por ID.
func (r *ParcelRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM parcels WHERE id = $1`, id); err != nil {
		return fmt.Errorf("borrar paquete: %w", err)
	}
	return nil
}

func (r *ParcelRepository) scanOne(row pgx.Row) (*entity.Parcel, error) {
	var p entity.Parcel
	err := row.Scan(&p.ID, &p.Description, &p.TrackingNumber, &p.Weight,
		&p.Status, &p.ShippingCost, &p.SenderID, &p.RecipientID,
		&p.VehicleID, &p.LocationID, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("escanear paquete: %w", err)
	}
	return &p, nil
}
