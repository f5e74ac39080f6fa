package repository

import (
	"context"

	"github.com/matwana/logistics-api/internal/domain/entity"
)

// ParcelRepository define el puerto de persistencia para Parcel.
type ParcelRepository interface {
	Create(ctx context.Context, parcel *entity.Parcel) error
	GetByID(ctx context.Context, id int64) (*entity.Parcel, error)
	List(ctx context.Context) ([]*entity.Parcel, error)
	Update(ctx context.Context, parcel *entity.Parcel) error
	Delete(ctx context.Context, id int64) error
}
