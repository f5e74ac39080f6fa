package repository

import (
	"context"

	"github.com/matwana/logistics-api/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para Location (tabla de tarifas).
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id int64) (*entity.Location, error)
	// GetByRoute busca la fila de tarifa por (origin, destination) ya canonicalizados.
	GetByRoute(ctx context.Context, origin, destination string) (*entity.Location, error)
	List(ctx context.Context) ([]*entity.Location, error)
	Update(ctx context.Context, location *entity.Location) error
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}
