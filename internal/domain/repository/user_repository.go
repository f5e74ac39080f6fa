package repository

import (
	"context"

	"github.com/matwana/logistics-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
// Los métodos de lectura devuelven (nil, nil) si no existe la fila.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByPhoneNumber(ctx context.Context, phone string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id int64) error
}
