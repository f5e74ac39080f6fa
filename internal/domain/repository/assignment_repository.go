package repository

import (
	"context"

	"github.com/matwana/logistics-api/internal/domain/entity"
)

// AssignmentRepository define el puerto de persistencia para Assignment
// (vínculo staff ↔ paquete).
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *entity.Assignment) error
	ListByUserID(ctx context.Context, userID int64) ([]*entity.Assignment, error)
	// DeleteFirstByUserID borra la primera asignación del usuario y devuelve
	// domain.ErrNotFound si no tiene ninguna.
	DeleteFirstByUserID(ctx context.Context, userID int64) error
	DeleteByUserID(ctx context.Context, userID int64) error
	DeleteByParcelID(ctx context.Context, parcelID int64) error
}
