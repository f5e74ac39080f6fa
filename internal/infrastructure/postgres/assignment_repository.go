package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/matwana/logistics-api/internal/domain"
	"github.com/matwana/logistics-api/internal/domain/entity"
	"github.com/matwana/logistics-api/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepository)(nil)

// AssignmentRepository implementa repository.AssignmentRepository sobre PostgreSQL.
type AssignmentRepository struct {
	db Queryer
}

// NewAssignmentRepository construye el repositorio. Acepta el pool o una tx.
func NewAssignmentRepository(db Queryer) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Create inserta la asignación y asigna el ID generado.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *entity.Assignment) error {
	query := `
		INSERT INTO user_parcel_assignments (user_id, parcel_id)
		VALUES ($1, $2)
		RETURNING id`

	err := r.db.QueryRow(ctx, query, assignment.UserID, assignment.ParcelID).
		Scan(&assignment.ID)
	if err != nil {
		return fmt.Errorf("insertar asignación: %w", err)
	}
	return nil
}

// ListByUserID devuelve las asignaciones del usuario ordenadas por ID.
func (r *AssignmentRepository) ListByUserID(ctx context.Context, userID int64) ([]*entity.Assignment, error) {
	query := `SELECT id, user_id, parcel_id FROM user_parcel_assignments
		WHERE user_id = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listar asignaciones: %w", err)
	}
	defer rows.Close()

	var assignments []*entity.Assignment
	for rows.Next() {
		var a entity.Assignment
		if err := rows.Scan(&a.ID, &a.UserID, &a.ParcelID); err != nil {
			return nil, fmt.Errorf("escanear asignación: %w", err)
		}
		assignments = append(assignments, &a)
	}
	return assignments, rows.Err()
}

// DeleteFirstByUserID borra la asignación más antigua del usuario y devuelve
// domain.ErrNotFound si el usuario no tiene ninguna.
func (r *AssignmentRepository) DeleteFirstByUserID(ctx context.Context, userID int64) error {
	query := `
		DELETE FROM user_parcel_assignments
		WHERE id = (
			SELECT id FROM user_parcel_assignments
			WHERE user_id = $1 ORDER BY id LIMIT 1
		)
		RETURNING id`

	var deleted int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("borrar asignación: %w", err)
	}
	return nil
}

// DeleteByUserID borra todas las asignaciones del usuario. No es error que
// no haya ninguna: se usa como cascada al borrar el usuario.
func (r *AssignmentRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx,
		`DELETE FROM user_parcel_assignments WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("borrar asignaciones del usuario: %w", err)
	}
	return nil
}

// DeleteByParcelID borra todas las asignaciones del paquete (cascada al
// borrar el paquete).
func (r *AssignmentRepository) DeleteByParcelID(ctx context.Context, parcelID int64) error {
	if _, err := r.db.Exec(ctx,
		`DELETE FROM user_parcel_assignments WHERE parcel_id = $1`, parcelID); err != nil {
		return fmt.Errorf("borrar asignaciones del paquete: %w", err)
	}
	return nil
}
