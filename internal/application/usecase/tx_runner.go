package usecase

import (
	"context"

	"github.com/matwana/logistics-api/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Users       repository.UserRepository
	Parcels     repository.ParcelRepository
	Vehicles    repository.VehicleRepository
	Locations   repository.LocationRepository
	Assignments repository.AssignmentRepository
}

// TxRunner ejecuta fn dentro de una transacción: las escrituras multi-fila
// (paquete + asignación, borrados con cascada) se confirman o revierten juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
